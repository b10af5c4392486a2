package constants

// Configuration keys
const (
	KeyLogLevel        = "log_level"
	KeyBuildFileSyntax = "build_file_syntax"
	KeyMakensisPath    = "makensis_path"
	KeyDuplicates      = "nlf.duplicates"
	KeyIncludeMetadata = "nlf.include_metadata"
	KeyCharset         = "nlf.charset"
)

// Default configuration values
const (
	DefaultLogLevel        = "info"
	DefaultBuildFileSyntax = "yaml"
	DefaultDuplicates      = "last"

	// Executable looked up on PATH when makensis_path is not configured
	MakensisBinary = "makensis"

	// Environment variable prefix (NSISKIT_BUILD_FILE_SYNTAX, ...)
	EnvPrefix = "NSISKIT"

	// Config file name without extension, searched in ., $HOME and /etc/nsiskit
	ConfigName = ".nsiskit"
)
