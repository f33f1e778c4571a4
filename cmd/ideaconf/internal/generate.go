package internal

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/goplus/ideaconf/internal/configure"
	"github.com/goplus/ideaconf/internal/plugin"
	"github.com/goplus/ideaconf/internal/repo"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate IDE configuration for every Flex module",
	Long: `Generate reconciles the artifacts of the workspace, configures the compile
task of every Flex module and runs the selected configuration generators.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	sess, err := loadSession()
	if err != nil {
		return err
	}
	g := configure.New(plugin.NewManager(), repo.New(sess.LocalRepository), cfg.Options())
	rep, err := g.Execute(cmd.Context(), sess)
	if err != nil {
		return err
	}

	data := pterm.TableData{{"Module", "Result"}}
	for _, id := range rep.Generated {
		data = append(data, []string{id, "generated"})
	}
	for _, id := range rep.Skipped {
		data = append(data, []string{id, "skipped"})
	}
	if len(data) > 1 {
		if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render(); err != nil {
			return err
		}
	}
	pterm.Success.Printf("generated flex config for %d module(s)\n", len(rep.Generated))
	return nil
}
