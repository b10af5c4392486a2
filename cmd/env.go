package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jeeftor/nsiskit/internal/constants"
	"github.com/jeeftor/nsiskit/internal/logging"
	"github.com/jeeftor/nsiskit/internal/ui"
)

// EnvVar represents an environment variable with its metadata
type EnvVar struct {
	Key          string
	Name         string
	Description  string
	DefaultValue string
	Category     string
	CurrentValue string
	IsSet        bool
}

// envCmd represents the env command
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display environment variable configuration",
	Long: `Display all NSISKIT_* environment variables with their current values and descriptions.

Environment variables override config file values but are overridden by command-line flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		displayEnvironmentVariables()
	},
}

func init() {
	rootCmd.AddCommand(envCmd)
}

// getAllEnvVars returns all supported environment variables with metadata
func getAllEnvVars() []EnvVar {
	envVars := []EnvVar{
		{
			Key:          constants.KeyLogLevel,
			Description:  "Logging level (debug, info, warn, error)",
			DefaultValue: constants.DefaultLogLevel,
			Category:     "Core",
		},
		{
			Key:          constants.KeyBuildFileSyntax,
			Description:  "Build file syntax (yaml, json)",
			DefaultValue: constants.DefaultBuildFileSyntax,
			Category:     "Build File",
		},
		{
			Key:          constants.KeyMakensisPath,
			Description:  "Path to the makensis executable",
			DefaultValue: "(looked up on PATH)",
			Category:     "Build File",
		},
		{
			Key:          constants.KeyDuplicates,
			Description:  "Duplicate key policy when parsing NLF (first, last)",
			DefaultValue: constants.DefaultDuplicates,
			Category:     "Language Files",
		},
		{
			Key:          constants.KeyIncludeMetadata,
			Description:  "Keep @-prefixed metadata in JSON output (true/false)",
			DefaultValue: "false",
			Category:     "Language Files",
		},
		{
			Key:          constants.KeyCharset,
			Description:  "Legacy IANA charset for reading NLF files, e.g. windows-1252",
			DefaultValue: "(UTF-8 or UTF-16 by BOM)",
			Category:     "Language Files",
		},
	}

	for i := range envVars {
		envVar := &envVars[i]
		envVar.Name = envVarName(envVar.Key)

		currentValue := os.Getenv(envVar.Name)
		envVar.CurrentValue = currentValue
		envVar.IsSet = currentValue != ""

		if !envVar.IsSet && viper.InConfig(envVar.Key) {
			if value := viper.GetString(envVar.Key); value != "" {
				envVar.CurrentValue = fmt.Sprintf("%s (from config)", value)
			}
		}
	}

	return envVars
}

// displayEnvironmentVariables shows all environment variables organized by category
func displayEnvironmentVariables() {
	envVars := getAllEnvVars()

	ui.Title("🌍 nsiskit Environment Variables")

	setCount := 0
	for _, envVar := range envVars {
		if envVar.IsSet {
			setCount++
		}
	}
	ui.InfoMessage("%d/%d environment variables are currently set", setCount, len(envVars))
	fmt.Fprintln(ui.Out)

	category := ""
	for _, envVar := range envVars {
		if envVar.Category != category {
			if category != "" {
				fmt.Fprintln(ui.Out)
			}
			category = envVar.Category
			ui.SectionHeader(category)
		}
		ui.EnvironmentVariable(envVar.Name, envVar.Description, envVar.CurrentValue, envVar.DefaultValue)
	}

	fmt.Fprintln(ui.Out)
	ui.SectionHeader("Usage Examples")
	ui.CommandExample("export NSISKIT_BUILD_FILE_SYNTAX=json", "write .atom-build.json")
	ui.CommandExample("export NSISKIT_NLF_DUPLICATES=first", "keep the first value of repeated keys")
	ui.CommandExample("export NSISKIT_LOG_LEVEL=debug", "enable debug logging")
	fmt.Fprintln(ui.Out)

	logging.Debug("Environment variable configuration displayed", "set", setCount)
}
