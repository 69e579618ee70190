package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"ticket-booking-cli/service"
)

// maxWordLen caps how much of one input word is kept. Longer words cannot be a
// valid choice or seat number, so the excess is dropped.
const maxWordLen = 32

// Console is the line-oriented front end used when stdin is not a terminal or
// when the full-screen UI is turned off.
type Console struct {
	booking *service.Booking
	columns int
	theme   theme
	logger  *slog.Logger

	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer, opts Options) *Console {
	return &Console{
		booking: opts.Booking,
		columns: opts.columns(),
		theme:   newTheme(opts.renderer(out)),
		logger:  opts.logger(),
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// Run loops over the menu until the exit option is chosen. It returns io.EOF
// if the input ends first.
func (c *Console) Run() error {
	for {
		fmt.Fprint(c.out, "\n"+renderMenu(c.theme))
		fmt.Fprint(c.out, "\n"+c.theme.prompt.Render("Enter your choice (1-7): "))

		option, err := c.readChoice()
		if err != nil {
			return err
		}
		c.logger.Debug("menu option selected", "option", int(option), "label", option.label())

		if option == optionExit {
			fmt.Fprintln(c.out, c.theme.success.Render(farewellMessage))
			return nil
		}
		if err := c.dispatch(option); err != nil {
			return err
		}
	}
}

func (c *Console) readChoice() (menuOption, error) {
	for {
		word, err := c.readWord()
		if err != nil {
			return 0, err
		}
		option, err := parseMenuChoice(word)
		if err == nil {
			return option, nil
		}
		c.logger.Debug("menu choice rejected", "error", err)
		c.skipLine()
		fmt.Fprint(c.out, c.theme.failure.Render(invalidChoice+": "))
	}
}

func (c *Console) dispatch(option menuOption) error {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, renderGrid(c.booking.Seats(), c.columns, c.theme))

	op, ok := option.operation()
	if !ok {
		// View available and view all both show the full grid.
		return nil
	}

	fmt.Fprint(c.out, c.theme.prompt.Render(option.seatPrompt()))
	word, err := c.readWord()
	if err != nil {
		return err
	}
	outcome, err := c.booking.Apply(op, parseSeatNumber(word))
	if err != nil {
		c.logger.Debug("operation rejected", "op", op.String(), "invalid_seat", service.IsInvalidSeat(err), "error", err)
	}
	fmt.Fprintln(c.out, resultLine(outcome, err, c.theme))
	return nil
}

// readWord returns the next whitespace-separated word, so a choice and its
// seat number may share one line. Blank lines are skipped.
func (c *Console) readWord() (string, error) {
	var b strings.Builder
	kept := 0
	for {
		r, _, err := c.in.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if b.Len() > 0 {
					return b.String(), nil
				}
				return "", io.EOF
			}
			return "", fmt.Errorf("read input: %w", err)
		}
		if unicode.IsSpace(r) {
			if b.Len() == 0 {
				continue
			}
			// Leave the separator for skipLine.
			_ = c.in.UnreadRune()
			return b.String(), nil
		}
		if kept < maxWordLen {
			b.WriteRune(r)
			kept++
		}
	}
}

// skipLine drops the rest of the current line, however long it is. Read
// errors are left for the next readWord to report.
func (c *Console) skipLine() {
	for {
		_, err := c.in.ReadSlice('\n')
		if !errors.Is(err, bufio.ErrBufferFull) {
			return
		}
	}
}
