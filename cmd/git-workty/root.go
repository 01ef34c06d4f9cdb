package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/W1Real/workty/internal/config"
	"github.com/W1Real/workty/internal/git"
	"github.com/W1Real/workty/internal/log"
	"github.com/W1Real/workty/internal/output"
	"github.com/W1Real/workty/internal/ui"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	noColor bool
	ascii   bool

	// Shared state injected into commands
	cfg    *config.Config
	logger *log.Logger
	stderr io.Writer = os.Stderr
)

// Command group IDs for organizing help output
const (
	GroupStatus      = "status"
	GroupNavigate    = "navigate"
	GroupManage      = "manage"
	GroupMaintenance = "maintenance"
)

// rootCmd represents the base command. Without a subcommand it lists worktrees.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "git-workty",
		Short: "Worktree dashboard and maintenance for git",
		Long: `git-workty shows the state of every worktree of a repository at a glance
and keeps them tidy: it removes merged, abandoned or stale worktrees and
rebases the ones that fell behind their upstream.

Installed on PATH it runs as a git subcommand: git workty <command>.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		Args:                       cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip git check for completion and help commands
			if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
				return nil
			}

			if err := git.CheckGit(); err != nil {
				return err
			}

			mode := colorMode()
			stderr = ui.NewWriter(os.Stderr, mode)
			logger = log.New(stderr, verbose, quiet, log.WithFile(log.FileConfig{
				Path:       cfg.Log.File,
				MaxSizeMB:  cfg.Log.MaxSizeMB,
				MaxBackups: cfg.Log.MaxBackups,
				MaxAgeDays: cfg.Log.MaxAgeDays,
			}))

			ctx := cmd.Context()
			ctx = log.WithLogger(ctx, logger)
			ctx = output.WithPrinter(ctx, ui.NewWriter(os.Stdout, mode))
			ctx = config.WithConfig(ctx, cfg)
			cmd.SetContext(ctx)

			logger.Debug("command started", "command", cmd.CommandPath(), "args", args, "version", version)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&opts.fast, "fast", false, "Skip the working tree scan (dirty counts show as 0)")
	return cmd
}

// colorMode combines --no-color with the ui.color setting.
func colorMode() string {
	if noColor {
		return ui.ColorNever
	}
	if cfg != nil && cfg.UI.Color != "" {
		return cfg.UI.Color
	}
	return ui.ColorAuto
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load config
	loadedCfg, err := config.Load()
	if err != nil {
		ui.Warning(os.Stderr, err.Error())
	}
	cfg = &loadedCfg

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = rootCmd.ExecuteContext(ctx)
	cancel()
	if logger != nil {
		_ = logger.Close()
	}
	if err != nil {
		os.Exit(reportError(stderr, err))
	}
}

// reportError prints err and returns the process exit code.
func reportError(w io.Writer, err error) int {
	if errors.Is(err, errCancelled) {
		return 130
	}
	var hinted *HintError
	if errors.As(err, &hinted) {
		ui.Error(w, hinted.Err.Error(), hinted.Hint)
	} else {
		ui.Error(w, err.Error(), "")
	}
	return 1
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show git commands being executed and debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&ascii, "ascii", false, "Use plain ASCII icons")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupStatus, Title: "Status Commands:"},
		&cobra.Group{ID: GroupNavigate, Title: "Navigation Commands:"},
		&cobra.Group{ID: GroupManage, Title: "Worktree Commands:"},
		&cobra.Group{ID: GroupMaintenance, Title: "Maintenance Commands:"},
	)

	// Status commands
	rootCmd.AddCommand(newListCmd())

	// Navigation commands
	rootCmd.AddCommand(newGoCmd())
	rootCmd.AddCommand(newPickCmd())

	// Worktree commands
	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newRmCmd())

	// Maintenance commands
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newDoctorCmd())
}

// usageError formats a flag or argument mistake the way cobra does.
func usageError(cmd *cobra.Command, format string, args ...any) error {
	return &HintError{
		Err:  fmt.Errorf(format, args...),
		Hint: fmt.Sprintf("run '%s --help' for usage", cmd.CommandPath()),
	}
}
