package cmd

import (
	"github.com/jeeftor/nsiskit/internal/constants"
	"github.com/jeeftor/nsiskit/internal/host"
	"github.com/jeeftor/nsiskit/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var buildFileForce bool

// buildFileCmd writes .atom-build.<syntax> next to an NSIS script
var buildFileCmd = &cobra.Command{
	Use:     "build-file <script.nsi>",
	Aliases: []string{"buildfile"},
	Short:   "Create a build file that compiles an NSIS script with makensis",
	Long: `Create a task-runner build file next to an NSIS script.

The file is named .atom-build.<syntax>, where syntax comes from --syntax,
NSISKIT_BUILD_FILE_SYNTAX or build_file_syntax in the config file (default
yaml). Any syntax other than yaml produces JSON content.

The makensis path is taken from --makensis or makensis_path, then from PATH,
and falls back to plain "makensis".

Examples:
  nsiskit build-file installer.nsi
  nsiskit build-file installer.nsi --syntax json
  nsiskit build-file installer.nsi --makensis /opt/nsis/makensis --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		grammar := host.GrammarForPath(args[0])
		if args[0] == "-" {
			// Unsaved script; the action reports that it needs a file
			grammar = constants.ScopeNSIS
		}

		doc, err := loadDocument(cmd, args[0], grammar)
		if err != nil {
			return err
		}

		out, err := newRunner(buildFileForce).CreateBuildFile(cmd.Context(), doc)
		if err != nil {
			return err
		}

		logging.Debug("Build file created", "script", args[0], "output", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildFileCmd)

	buildFileCmd.Flags().String("syntax", "", "build file syntax (yaml, json)")
	buildFileCmd.Flags().String("makensis", "", "path to the makensis executable")
	buildFileCmd.Flags().BoolVarP(&buildFileForce, "force", "f", false, "overwrite an existing build file without asking")

	viper.BindPFlag(constants.KeyBuildFileSyntax, buildFileCmd.Flags().Lookup("syntax"))
	viper.BindPFlag(constants.KeyMakensisPath, buildFileCmd.Flags().Lookup("makensis"))
}
