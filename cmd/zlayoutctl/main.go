// Command zlayoutctl is a thin CLI client over the zlayout spatial-indexing
// core, the reference collaborator for its command-line front-ends.
package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	zlayout "github.com/arx-os/zlayout"
	"github.com/arx-os/zlayout/internal/telemetry/logger"
)

var (
	// Version information (set during build).
	Version   = "dev"
	BuildTime = "unknown"
	Commit    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "zlayoutctl",
	Short: "zlayout - spatial-indexing core CLI",
	Long: `zlayoutctl drives the zlayout spatial-indexing core from the command
line: build an index from synthetic data, run range queries against it,
run the EDA geometry analyses, and print index statistics.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	logLevel := os.Getenv("ZLAYOUT_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	switch strings.ToLower(logLevel) {
	case "debug":
		logger.SetLevel(logger.DEBUG)
	case "warn", "warning":
		logger.SetLevel(logger.WARN)
	case "error":
		logger.SetLevel(logger.ERROR)
	default:
		logger.SetLevel(logger.INFO)
	}

	zlayout.Initialize(true)
	defer zlayout.Cleanup()

	rootCmd.AddCommand(buildCmd, queryCmd, analyzeCmd, benchCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command execution failed: %v", err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmdPrintf(cmd, "zlayoutctl %s (build %s, commit %s)\n", zlayout.Version(), BuildTime, Commit)
	},
}

func cmdPrintf(cmd *cobra.Command, format string, args ...interface{}) {
	cmd.Printf(format, args...)
}
