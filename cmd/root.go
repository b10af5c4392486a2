package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeeftor/nsiskit/internal/actions"
	"github.com/jeeftor/nsiskit/internal/constants"
	"github.com/jeeftor/nsiskit/internal/host"
	"github.com/jeeftor/nsiskit/internal/logging"
	"github.com/jeeftor/nsiskit/internal/prompt"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string

	// appFs is swapped for a MemMapFs in tests
	appFs = afero.NewOsFs()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nsiskit",
	Short: "nsiskit converts NSIS language files and generates build files",
	Long: `nsiskit is a companion tool for NSIS script authors.

It converts NSIS language files (.nlf) to JSON and back, and generates a
task-runner build file (.atom-build.yaml or .atom-build.json) that compiles
the current script with makensis.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Default to info level if not specified
		if logLevel == "" {
			logLevel = constants.DefaultLogLevel
		}

		// Initialize logging with the specified level
		logging.InitWithLevel(logLevel)

		logging.Debug("Logging initialized", "level", logLevel)
		logging.Debug("Using config file", "path", viper.ConfigFileUsed())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logging.UserErrorf("Error: %v", err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.nsiskit.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	// Bind flags to Viper
	viper.BindPFlag(constants.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// NSISKIT_* variables may also come from a .env file in the working directory
	if err := godotenv.Load(); err == nil {
		logging.Debug("Loaded environment from .env")
	}

	// Set environment variable prefix for our app
	viper.SetEnvPrefix(constants.EnvPrefix)

	// nlf.duplicates is read from NSISKIT_NLF_DUPLICATES
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Enable automatic environment variable binding (NSISKIT_LOG_LEVEL, ...)
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	// Config file setup
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in standard locations

		// 1. Current directory
		viper.AddConfigPath(".")

		// 2. User's home directory
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}

		// 3. System config directory
		viper.AddConfigPath("/etc/nsiskit")

		// Set config name and type
		viper.SetConfigType("yaml")
		viper.SetConfigName(constants.ConfigName)
	}

	// Read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error occurred
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
		// It's okay if no config file is found - we'll use defaults and env vars
	}

	if logLevel == "" {
		logLevel = viper.GetString(constants.KeyLogLevel)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(constants.KeyLogLevel, constants.DefaultLogLevel)
	v.SetDefault(constants.KeyBuildFileSyntax, constants.DefaultBuildFileSyntax)
	v.SetDefault(constants.KeyMakensisPath, "")
	v.SetDefault(constants.KeyDuplicates, constants.DefaultDuplicates)
	v.SetDefault(constants.KeyIncludeMetadata, false)
	v.SetDefault(constants.KeyCharset, "")
}

// newRunner wires the actions to the terminal, viper and the OS file system.
// Existing files are overwritten without asking when force is set; otherwise
// an interactive terminal gets a prompt and a pipe gets a refusal.
func newRunner(force bool) *actions.Runner {
	var confirm host.Confirmer
	switch {
	case force:
		confirm = host.StaticConfirmer(true)
	case prompt.IsInteractive():
		confirm = prompt.NewTerminal()
	default:
		confirm = host.ConfirmFunc(func(_ context.Context, title, detail string) (bool, error) {
			logging.UserWarnf("%s: use --force to overwrite when not running in a terminal", title)
			return false, nil
		})
	}

	return actions.NewRunner(
		host.NewTerminalNotifier(os.Stderr),
		host.NewViperConfig(nil),
		host.NewAferoFS(appFs),
		confirm,
	)
}

// loadDocument reads path, or standard input when path is "-"
func loadDocument(cmd *cobra.Command, path, grammar string) (host.ActiveDocument, error) {
	if path != "-" {
		logging.LoadFile(path)
		doc, err := host.LoadDocument(appFs, filepath.Clean(path), grammar)
		if err != nil {
			return nil, err
		}
		return doc, nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("reading standard input: %w", err)
	}
	if grammar == "" {
		grammar = sniffGrammar(string(data))
	}
	return host.NewUnsavedDocument(string(data), grammar), nil
}

// sniffGrammar guesses JSON or NLF for unnamed input
func sniffGrammar(text string) string {
	trimmed := strings.TrimLeft(strings.TrimPrefix(text, "\uFEFF"), " \t\r\n")
	if strings.HasPrefix(trimmed, "{") {
		return constants.ScopeJSON
	}
	return constants.ScopeNLF
}
