package internal

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/goplus/ideaconf/internal/reconcile"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Show how dependency artifacts are reconciled",
	Long: `Reconcile points every dependency built inside the workspace at the output
of the module producing it and prints what changed. Nothing is written.`,
	Args: cobra.NoArgs,
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	sess, err := loadSession()
	if err != nil {
		return err
	}
	patches := reconcile.Graph(sess)
	if len(patches) == 0 {
		pterm.Info.Println("no in-workspace dependencies")
		return nil
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(patchTable(patches)).Render()
}

func patchTable(patches []reconcile.Patch) pterm.TableData {
	data := pterm.TableData{{"Module", "Dependency", "Action", "File"}}
	for _, p := range patches {
		file := ""
		for _, dep := range p.Module.Artifacts {
			if dep.Key == p.Key {
				file = dep.File
				break
			}
		}
		data = append(data, []string{p.Module.ID(), p.Key.String(), p.Action.String(), file})
	}
	return data
}
