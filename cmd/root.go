package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"ticket-booking-cli/service"
	"ticket-booking-cli/store"
	"ticket-booking-cli/tui"
)

const (
	appName       = "ticket-booking-cli"
	debugEnv      = "TICKETS_DEBUG"
	debugLogName  = "tickets-debug.log"
	debugLogTitle = "tickets"
)

// BuildInfo is stamped at link time.
type BuildInfo struct {
	Version string
	Commit  string
}

func (b BuildInfo) String() string {
	out := fmt.Sprintf("%s %s", appName, b.Version)
	if b.Commit != "none" && b.Commit != "" {
		out += fmt.Sprintf(" (%s)", b.Commit)
	}
	return out
}

type rootOptions struct {
	seats   int
	columns int
	broken  []int
	plain   bool
	noColor bool
}

func newRootCmd(info BuildInfo) *cobra.Command {
	defaults := store.DefaultConfig()
	opts := rootOptions{
		seats:   defaults.Seats,
		columns: 5,
		broken:  defaults.Broken,
	}

	root := &cobra.Command{
		Use:           appName,
		Short:         "Book, cancel and maintain seats from the terminal",
		Long:          `Manage the seats of a single hall: book and cancel reservations, take broken seats out of service and repair them.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := root.Flags()
	flags.IntVar(&opts.seats, "seats", opts.seats, fmt.Sprintf("number of seats in the hall (1-%d)", store.MaxSeats))
	flags.IntVar(&opts.columns, "columns", opts.columns, "seats per row in the grid")
	flags.IntSliceVar(&opts.broken, "broken", opts.broken, "seats that start out broken")
	flags.BoolVar(&opts.plain, "plain", false, "use the line console instead of the full-screen UI")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
		},
	})
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute(info BuildInfo) int {
	if err := newRootCmd(info).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func run(cmd *cobra.Command, opts rootOptions) error {
	if opts.columns < 1 {
		return fmt.Errorf("columns must be positive, got %d", opts.columns)
	}
	seats, err := store.New(store.Config{Seats: opts.seats, Broken: opts.broken})
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	uiOpts := tui.Options{
		Booking: service.NewBooking(seats, logger),
		Columns: opts.columns,
		NoColor: opts.noColor,
		Logger:  logger,
	}

	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	if opts.plain || !isTerminal(in) || !isTerminal(out) {
		logger.Debug("starting line console", "seats", opts.seats, "plain", opts.plain)
		err := tui.NewConsole(in, out, uiOpts).Run()
		if errors.Is(err, io.EOF) {
			logger.Debug("input closed before exit was chosen")
			return nil
		}
		return err
	}

	logger.Debug("starting full-screen ui", "seats", opts.seats)
	return tui.Run(uiOpts)
}

func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newLogger writes debug logs to a file when TICKETS_DEBUG is set, since the
// full-screen UI owns the terminal. The value may name the log file.
func newLogger() (*slog.Logger, func(), error) {
	value := strings.TrimSpace(os.Getenv(debugEnv))
	if value == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	path := value
	if value == "1" || strings.EqualFold(value, "true") {
		path = debugLogName
	}
	f, err := tea.LogToFile(path, debugLogTitle)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}
