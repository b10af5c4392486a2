package params

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/jeeftor/nsiskit/internal/buildfile"
	"github.com/jeeftor/nsiskit/internal/constants"
	"github.com/jeeftor/nsiskit/internal/host"
	"github.com/jeeftor/nsiskit/internal/nlf"
)

// Value sources reported in ParameterInfo
const (
	SourceConfig  = "config" // config file, environment or bound flag
	SourcePath    = "path"   // found on $PATH
	SourceDefault = "default"
)

// ParameterInfo provides information about where a parameter came from
type ParameterInfo struct {
	Value  string
	Source string
}

// ParameterResolver handles resolution of tool parameters from configuration
// Priority: config (flags > env vars > config file, merged by viper) > $PATH > defaults
type ParameterResolver struct {
	config   host.ConfigStore
	lookPath func(string) (string, error)
}

// NewParameterResolver creates a resolver backed by config
func NewParameterResolver(config host.ConfigStore) *ParameterResolver {
	return &ParameterResolver{config: config, lookPath: exec.LookPath}
}

// WithLookPath replaces the $PATH lookup, for tests
func (r *ParameterResolver) WithLookPath(fn func(string) (string, error)) *ParameterResolver {
	r.lookPath = fn
	return r
}

// ResolveMakensisPath finds the makensis executable
func (r *ParameterResolver) ResolveMakensisPath() ParameterInfo {
	// 1. Configured path (highest priority)
	if configured := strings.TrimSpace(r.config.GetString(constants.KeyMakensisPath)); configured != "" {
		return ParameterInfo{Value: configured, Source: SourceConfig}
	}

	// 2. $PATH lookup
	if r.lookPath != nil {
		if found, err := r.lookPath(constants.MakensisBinary); err == nil && found != "" {
			return ParameterInfo{Value: found, Source: SourcePath}
		}
	}

	// 3. Bare binary name, left to the task runner's own PATH
	return ParameterInfo{Value: constants.MakensisBinary, Source: SourceDefault}
}

// ResolveBuildFileSyntax returns the normalized build file syntax
func (r *ParameterResolver) ResolveBuildFileSyntax() ParameterInfo {
	if syntax := buildfile.NormalizeSyntax(r.config.GetString(constants.KeyBuildFileSyntax)); syntax != "" {
		return ParameterInfo{Value: syntax, Source: SourceConfig}
	}
	return ParameterInfo{Value: constants.DefaultBuildFileSyntax, Source: SourceDefault}
}

// ResolveParseOptions builds NLF parse options from configuration
func (r *ParameterResolver) ResolveParseOptions() ([]nlf.ParseOption, error) {
	policy, err := nlf.ParseDuplicatePolicy(r.config.GetString(constants.KeyDuplicates))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", constants.KeyDuplicates, err)
	}

	opts := []nlf.ParseOption{
		nlf.WithDuplicates(policy),
		nlf.WithMetadata(r.config.GetBool(constants.KeyIncludeMetadata)),
	}
	if charset := strings.TrimSpace(r.config.GetString(constants.KeyCharset)); charset != "" {
		opts = append(opts, nlf.WithCharset(charset))
	}
	return opts, nil
}

// DuplicatePolicy returns the configured duplicate policy, defaulting to last-wins
func (r *ParameterResolver) DuplicatePolicy() nlf.DuplicatePolicy {
	policy, err := nlf.ParseDuplicatePolicy(r.config.GetString(constants.KeyDuplicates))
	if err != nil {
		return nlf.LastWins
	}
	return policy
}
