package cli

import (
	"fmt"
	"io"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tgienger/taskdash/internal/ui"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Today      string
}

// BuildInfo is stamped in at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. Without a subcommand it runs the TUI.
func NewRootCommand(info BuildInfo) *cobra.Command {
	return newRootCommand(info, &RootOptions{})
}

// Run executes the command line in args and returns the process exit code.
// Errors are reported in the requested output format, so --format json
// yields an error envelope on stdout.
func Run(info BuildInfo, args []string, stdout, stderr io.Writer) int {
	opts := &RootOptions{}
	cmd := newRootCommand(info, opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	format := opts.Format
	if !isValidFormat(format) {
		format = "text"
	}
	formatter := &OutputFormatter{Format: format, Writer: stdout, ErrWriter: stderr}
	if werr := formatter.Error(err); werr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return GetExitCode(err)
}

func newRootCommand(info BuildInfo, opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taskdash",
		Short: "Task tracking dashboard",
		Long: `A terminal dashboard for tracking tasks: add, complete and filter
tasks and see completion statistics for the team.

Tasks live for the session only; every run starts from the example tasks.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}
	cmd.SetVersionTemplate("taskdash {{.Version}}\n")

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/taskdash/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.Today, "today", "", "treat this date (YYYY-MM-DD) as today")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

func runTUI(opts *RootOptions) error {
	// The alt screen owns the terminal, so logs are dropped unless the
	// config names a log file.
	sess, err := newSession(opts, io.Discard)
	if err != nil {
		return err
	}
	defer sess.Close()

	app := ui.NewApp(sess.store, sess.clock, ui.Options{RecentLimit: sess.cfg.RecentLimit})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return WrapExitError(ExitFailure, "error running application", err)
	}
	return nil
}
