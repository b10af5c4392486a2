package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jeeftor/nsiskit/internal/host"
	"github.com/jeeftor/nsiskit/internal/params"
)

// These variables will be set during the build using ldflags
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildTime    = "unknown"
)

var shortOutput bool

// GetFormattedBuildTime returns the build time in a readable format
func GetFormattedBuildTime() string {
	if buildTime == "unknown" {
		return buildTime
	}

	if t, err := time.Parse(time.RFC3339, buildTime); err == nil {
		return t.Format("2006-01-02 15:04:05 MST")
	}

	// Unix timestamp
	var unixTime int64
	if _, err := fmt.Sscanf(buildTime, "%d", &unixTime); err == nil {
		return time.Unix(unixTime, 0).Format("2006-01-02 15:04:05 MST")
	}

	return buildTime
}

// GetDisplayVersion returns "dev (last release X.Y.Z)" for development builds
func GetDisplayVersion() string {
	if buildVersion != "dev" {
		return buildVersion
	}

	tagBytes, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err == nil {
		if tag := strings.TrimSpace(string(tagBytes)); tag != "" {
			return fmt.Sprintf("dev (last release %s)", tag)
		}
	}
	return "dev"
}

// makensisVersion asks the resolved makensis for its version
func makensisVersion(ctx context.Context) (string, string) {
	tool := params.NewParameterResolver(host.NewViperConfig(nil)).ResolveMakensisPath()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, tool.Value, "-VERSION").Output()
	if err != nil {
		return tool.Value, "not available"
	}
	return tool.Value, strings.TrimSpace(string(out))
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if shortOutput {
			// Raw version for scripts
			fmt.Println(buildVersion)
			return
		}

		labelColor := color.New(color.FgWhite)
		versionColor := color.New(color.FgCyan, color.Bold)
		buildColor := color.New(color.FgYellow)
		commitColor := color.New(color.FgGreen)
		osArchColor := color.New(color.FgMagenta)
		goVersionColor := color.New(color.FgRed)
		pathColor := color.New(color.FgBlue)

		labelColor.Printf("Version:  ")
		versionColor.Printf("%s\n", GetDisplayVersion())

		labelColor.Printf("Built:    ")
		buildColor.Printf("%s\n", GetFormattedBuildTime())

		labelColor.Printf("Commit:   ")
		commitColor.Printf("%s\n", buildCommit)

		labelColor.Printf("OS/Arch:  ")
		osArchColor.Printf("%s/%s\n", runtime.GOOS, runtime.GOARCH)

		labelColor.Printf("Go:       ")
		goVersionColor.Printf("%s\n", runtime.Version())

		exePath := "Unknown"
		if exe, err := os.Executable(); err == nil {
			exePath, _ = filepath.Abs(exe)
		}
		labelColor.Printf("Binary:   ")
		pathColor.Printf("%s\n", exePath)

		toolPath, toolVersion := makensisVersion(cmd.Context())
		labelColor.Printf("makensis: ")
		pathColor.Printf("%s ", toolPath)
		buildColor.Printf("(%s)\n", toolVersion)
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&shortOutput, "short", "n", false, "Print only version number")
	rootCmd.AddCommand(versionCmd)
}
