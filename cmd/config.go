package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jeeftor/nsiskit/internal/buildfile"
	"github.com/jeeftor/nsiskit/internal/constants"
	"github.com/jeeftor/nsiskit/internal/embedded"
	"github.com/jeeftor/nsiskit/internal/filesystem"
	"github.com/jeeftor/nsiskit/internal/host"
	"github.com/jeeftor/nsiskit/internal/logging"
	"github.com/jeeftor/nsiskit/internal/params"
	"github.com/jeeftor/nsiskit/internal/ui"
	"github.com/jeeftor/nsiskit/internal/validation"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage nsiskit configuration files and settings",
	Long: `Manage the nsiskit configuration file.

Configuration files are searched in this order:
1. ./.nsiskit.yaml (project config)
2. ~/.nsiskit.yaml (user config)
3. /etc/nsiskit/.nsiskit.yaml (system config)

Environment variables (NSISKIT_*) override config file values.
Command-line flags override both config files and environment variables.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// configInitCmd creates a sample configuration file
var configInitCmd = &cobra.Command{
	Use:   "init [config-file]",
	Short: "Create a sample configuration file",
	Long: `Generate a sample configuration file with all available options.

If no file is specified, creates ~/.nsiskit.yaml in the user's home directory.

Examples:
  nsiskit config init                 # Create ~/.nsiskit.yaml
  nsiskit config init .nsiskit.yaml   # Create a project config`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var configPath string

		if len(args) > 0 {
			configPath = args[0]
		} else {
			// Default to user home directory
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("could not determine home directory: %w", err)
			}
			configPath = filepath.Join(home, constants.ConfigName+".yaml")
		}

		absPath, err := filesystem.GetAbsolutePath(configPath)
		if err != nil {
			return fmt.Errorf("could not resolve config path: %w", err)
		}

		if exists, _ := afero.Exists(appFs, absPath); exists {
			logging.UserInfof("Use 'nsiskit config validate %s' to check the existing file", absPath)
			return fmt.Errorf("configuration file already exists: %s", absPath)
		}

		if err := embedded.ExtractTemplate(appFs, embedded.SampleConfig, absPath); err != nil {
			return fmt.Errorf("failed to write configuration file: %w", err)
		}

		logging.Successf("Created configuration file: %s", absPath)
		logging.UserInfof("Use 'nsiskit config validate %s' to check the configuration", absPath)
		return nil
	},
}

// configValidateCmd validates a configuration file
var configValidateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate a configuration file",
	Long: `Validate the syntax and values of a configuration file.

If no file is specified, validates the active configuration, including
environment variable overrides.

Examples:
  nsiskit config validate
  nsiskit config validate ~/.nsiskit.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.GetViper()
		source := viper.ConfigFileUsed()

		if len(args) > 0 {
			source = args[0]
			if err := filesystem.ValidateInputFile(appFs, source, "config file"); err != nil {
				return err
			}
			v = viper.New()
			setDefaults(v)
			v.SetFs(appFs)
			v.SetConfigFile(source)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read configuration file: %w", err)
			}
		}

		return validateSettings(v, source)
	},
}

// configShowCmd displays current configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration values and sources",
	Long: `Display the effective configuration after merging flags, environment
variables, the config file and defaults, along with where each value came from.

Use --yaml to print the merged settings as a config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		asYAML, _ := cmd.Flags().GetBool("yaml")
		if asYAML {
			settings, err := validation.LoadSettings(viper.GetViper())
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(settings)
			if err != nil {
				return fmt.Errorf("encoding settings: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		}

		displayCurrentConfiguration()
		return nil
	},
}

// configPathCmd shows configuration file search paths
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Display configuration file search paths",
	Run: func(cmd *cobra.Command, args []string) {
		displayConfigPaths()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)

	configShowCmd.Flags().Bool("yaml", false, "print the merged settings as YAML")
}

// validateSettings decodes and checks v, printing the outcome
func validateSettings(v *viper.Viper, source string) error {
	ui.Title("🔍 Configuration Validation")

	if source != "" {
		fmt.Fprintf(ui.Out, "Config file: %s\n\n", ui.Success(source))
	} else {
		fmt.Fprintf(ui.Out, "%s\n", ui.Warning("No configuration file is currently loaded"))
		fmt.Fprintf(ui.Out, "Using defaults and environment variables only.\n\n")
	}

	settings, err := validation.LoadSettings(v)
	if err != nil {
		return err
	}

	result := validation.NewConfigValidator(appFs).Validate(settings)
	for _, e := range result.Errors {
		ui.ValidationErrorMsg(e.Field, e.Message)
	}
	for _, w := range result.Warnings {
		logging.UserWarnf("⚠ %s", w)
	}

	if !result.Valid {
		return fmt.Errorf("%d configuration error(s)", len(result.Errors))
	}

	resolver := params.NewParameterResolver(host.NewViperConfig(v))
	syntax := resolver.ResolveBuildFileSyntax()
	tool := resolver.ResolveMakensisPath()
	ui.ResultSummary("Configuration", map[string]interface{}{
		"build file": fmt.Sprintf("%s (%s)", buildfile.FileName(syntax.Value), syntax.Source),
		"makensis":   fmt.Sprintf("%s (%s)", tool.Value, tool.Source),
		"duplicates": resolver.DuplicatePolicy().String(),
	})

	logging.Successf("Configuration is valid")
	return nil
}

// displayCurrentConfiguration shows all current config values and sources
func displayCurrentConfiguration() {
	ui.Title("⚙️  Current Configuration")

	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		fmt.Fprintf(ui.Out, "📁 Active config file: %s\n\n", ui.Success(configFile))
	} else {
		fmt.Fprintf(ui.Out, "📁 Active config file: %s\n\n", ui.Muted("none"))
	}

	categories := []struct {
		name string
		keys []string
	}{
		{"Core", []string{constants.KeyLogLevel}},
		{"Build File", []string{constants.KeyBuildFileSyntax, constants.KeyMakensisPath}},
		{"Language Files", []string{constants.KeyDuplicates, constants.KeyIncludeMetadata, constants.KeyCharset}},
	}

	known := make(map[string]bool)
	for _, category := range categories {
		ui.SectionHeader(category.name)
		for _, key := range category.keys {
			known[key] = true
			ui.Setting(key, viper.Get(key), getConfigSource(key))
		}
		fmt.Fprintln(ui.Out)
	}

	// Keys the config file sets that nsiskit does not know about
	var unknown []string
	for _, key := range viper.AllKeys() {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		ui.SectionHeader("Unrecognised Keys")
		for _, key := range unknown {
			ui.Setting(key, viper.Get(key), getConfigSource(key))
		}
		fmt.Fprintln(ui.Out)
	}
}

// envVarName returns the environment variable viper reads for key
func envVarName(key string) string {
	return constants.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// getConfigSource determines where a configuration value came from
func getConfigSource(key string) string {
	if os.Getenv(envVarName(key)) != "" {
		return "environment"
	}

	// Viper does not expose sources, so re-read the file on its own
	if viper.ConfigFileUsed() != "" {
		v := viper.New()
		v.SetConfigFile(viper.ConfigFileUsed())
		if err := v.ReadInConfig(); err == nil && v.IsSet(key) {
			return "config file"
		}
	}

	return "default"
}

// displayConfigPaths shows configuration file search paths
func displayConfigPaths() {
	ui.Title("📁 Configuration File Paths")

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		fmt.Fprintf(ui.Out, "🟢 Active: %s\n\n", ui.Success(configFile))
	} else {
		fmt.Fprintf(ui.Out, "🔴 Active: %s\n\n", ui.Muted("none"))
	}

	ui.SectionHeader("Search Paths (in priority order)")

	home, _ := os.UserHomeDir()
	searchPaths := []struct {
		path        string
		description string
	}{
		{filepath.Join(".", constants.ConfigName+".yaml"), "Project configuration"},
		{filepath.Join(home, constants.ConfigName+".yaml"), "User configuration"},
		{filepath.Join("/etc/nsiskit", constants.ConfigName+".yaml"), "System configuration"},
	}

	for i, sp := range searchPaths {
		exists := ui.Muted("✗ not found")
		if ok, _ := afero.Exists(appFs, sp.path); ok {
			exists = ui.Success("✓ exists")
		}
		fmt.Fprintf(ui.Out, "  %d. %s\n", i+1, sp.path)
		fmt.Fprintf(ui.Out, "     %s - %s\n\n", exists, sp.description)
	}
}
