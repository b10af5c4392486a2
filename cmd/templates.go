package cmd

import (
	"fmt"
	"os"

	"github.com/jeeftor/nsiskit/internal/embedded"
	"github.com/jeeftor/nsiskit/internal/logging"
	"github.com/jeeftor/nsiskit/internal/prompt"
	"github.com/jeeftor/nsiskit/internal/ui"
	"github.com/spf13/cobra"
)

var (
	templatesOutput string
	templatesList   bool
	templatesForce  bool
)

// templatesCmd extracts the starter files embedded in the binary
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Extract a starter language file and sample config",
	Long: `Extract the starter files embedded in the binary:

- English.nlf  - a language file with metadata, comments and escapes
- .nsiskit.yaml - a sample configuration with every option

Existing files are left alone unless --force is given.

Examples:
  nsiskit templates                 # extract into the current directory
  nsiskit templates --output lang   # extract into ./lang
  nsiskit templates --list`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if templatesList {
			names, err := embedded.ListTemplates()
			if err != nil {
				return fmt.Errorf("listing embedded templates: %w", err)
			}

			ui.SectionHeader("Embedded templates")
			for _, name := range names {
				ui.BulletPoint(fmt.Sprintf("%s → %s", name, embedded.OutputName(name)))
			}
			fmt.Fprintf(ui.Out, "\nTotal: %d templates\n", len(names))
			return nil
		}

		targetDir := templatesOutput
		if targetDir == "" {
			pwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			targetDir = pwd
		}

		if templatesForce && prompt.IsInteractive() {
			ok, err := prompt.NewTerminal().Confirm(cmd.Context(), "Overwrite templates",
				fmt.Sprintf("Existing starter files in %s will be replaced.", targetDir))
			if err != nil {
				return err
			}
			if !ok {
				logging.UserInfo("Operation cancelled.")
				return nil
			}
		}

		written, err := embedded.ExtractAll(appFs, targetDir, templatesForce)
		if err != nil {
			return fmt.Errorf("extracting templates: %w", err)
		}

		for _, path := range written {
			logging.SaveFile(path, "")
		}
		if len(written) == 0 {
			logging.UserInfo("Nothing extracted; use --force to replace existing files")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)

	templatesCmd.Flags().StringVarP(&templatesOutput, "output", "o", "", "output directory (default: current directory)")
	templatesCmd.Flags().BoolVarP(&templatesList, "list", "l", false, "list embedded templates without extracting")
	templatesCmd.Flags().BoolVarP(&templatesForce, "force", "f", false, "overwrite existing files")
}
