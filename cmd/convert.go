package cmd

import (
	"fmt"

	"github.com/jeeftor/nsiskit/internal/constants"
	"github.com/jeeftor/nsiskit/internal/filesystem"
	"github.com/jeeftor/nsiskit/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	convertGrammar string
	convertForce   bool
)

// convertCmd converts between NLF and JSON
var convertCmd = &cobra.Command{
	Use:   "convert <file|->",
	Short: "Convert an NSIS language file to JSON or back",
	Long: `Convert an NSIS language file (.nlf) to JSON, or a JSON object of strings
to an NSIS language file.

The direction follows the input: .nlf files become <name>.json and
.json/.json5 files become <name>.nlf, written next to the input. Use "-" to
read standard input; the output is then written to untitled.json or
untitled.nlf in the current directory.

Comments and blank lines are not kept when converting to JSON.

Examples:
  nsiskit convert English.nlf                  # writes English.json
  nsiskit convert English.json --force         # overwrite English.nlf
  nsiskit convert English.nlf --duplicates first
  cat German.nlf | nsiskit convert - --grammar source.nlf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if path != "-" && !filesystem.IsNLFFile(path) && !filesystem.IsJSONFile(path) && convertGrammar == "" {
			return fmt.Errorf("cannot tell the format of %s; use --grammar %s or %s",
				path, constants.ScopeNLF, constants.ScopeJSON)
		}

		doc, err := loadDocument(cmd, path, convertGrammar)
		if err != nil {
			return err
		}

		out, err := newRunner(convertForce).Convert(cmd.Context(), doc)
		if err != nil {
			return err
		}

		logging.Debug("Conversion complete", "input", path, "output", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertGrammar, "grammar", "", "input grammar (source.nlf, source.json, source.json5); default from the file extension")
	convertCmd.Flags().BoolVarP(&convertForce, "force", "f", false, "overwrite an existing output file without asking")
	convertCmd.Flags().String("duplicates", "", "duplicate key policy (first, last)")
	convertCmd.Flags().Bool("metadata", false, "keep @-prefixed language metadata in the JSON output")
	convertCmd.Flags().String("charset", "", "decode input with a legacy IANA charset, e.g. windows-1252")

	viper.BindPFlag(constants.KeyDuplicates, convertCmd.Flags().Lookup("duplicates"))
	viper.BindPFlag(constants.KeyIncludeMetadata, convertCmd.Flags().Lookup("metadata"))
	viper.BindPFlag(constants.KeyCharset, convertCmd.Flags().Lookup("charset"))
}
