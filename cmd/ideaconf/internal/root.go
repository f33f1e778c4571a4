package internal

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/goplus/ideaconf/internal/config"
	"github.com/goplus/ideaconf/internal/workspace"
	"github.com/goplus/ideaconf/project"

	_ "github.com/goplus/ideaconf/x/flexmojos"
	_ "github.com/goplus/ideaconf/x/idea"
)

var (
	flags *config.Flags
	cfg   config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ideaconf",
	Short: "ideaconf generates IDE configuration for Flex modules",
	Long: `ideaconf walks the modules of a workspace, configures the Flex compiler
task of every swc, swf and air module and writes the IDE configuration
derived from it.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	flags = config.BindFlags(rootCmd.PersistentFlags())
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(flags)
	if err != nil {
		return err
	}
	cfg = c
	if cfg.Verbose {
		log.SetOutputLevel(log.Ldebug)
	}
	return nil
}

// loadSession reads the workspace manifest selected by the configuration.
func loadSession() (*project.Session, error) {
	return workspace.Load(cfg.Workspace, cfg.LocalRepository)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
