package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ticket-booking-cli/service"
)

const (
	appTitle        = "Ticket Booking System"
	farewellMessage = "Thank you for using the Ticket Booking System. Goodbye!"
	invalidChoice   = "Invalid choice. Please enter a number between 1 and 7"
)

var errInvalidChoice = errors.New("invalid menu choice")

type menuOption int

const (
	optionBook menuOption = iota + 1
	optionCancel
	optionViewAvailable
	optionViewAll
	optionMarkBroken
	optionRepair
	optionExit
)

func menuOptions() []menuOption {
	return []menuOption{
		optionBook,
		optionCancel,
		optionViewAvailable,
		optionViewAll,
		optionMarkBroken,
		optionRepair,
		optionExit,
	}
}

func (o menuOption) label() string {
	switch o {
	case optionBook:
		return "Book a seat"
	case optionCancel:
		return "Cancel a reservation"
	case optionViewAvailable:
		return "View available seats"
	case optionViewAll:
		return "View all seat statuses"
	case optionMarkBroken:
		return "Mark seat as broken"
	case optionRepair:
		return "Repair broken seat"
	case optionExit:
		return "Exit"
	default:
		return ""
	}
}

// operation maps the options that ask for a seat number to their transition.
func (o menuOption) operation() (service.Operation, bool) {
	switch o {
	case optionBook:
		return service.OpBook, true
	case optionCancel:
		return service.OpCancel, true
	case optionMarkBroken:
		return service.OpMarkBroken, true
	case optionRepair:
		return service.OpRepair, true
	default:
		return 0, false
	}
}

func (o menuOption) seatPrompt() string {
	switch o {
	case optionBook:
		return "Enter seat number to book: "
	case optionCancel:
		return "Enter seat number to cancel reservation: "
	case optionMarkBroken:
		return "Enter seat number to mark as broken: "
	case optionRepair:
		return "Enter seat number to repair: "
	default:
		return ""
	}
}

func parseMenuChoice(input string) (menuOption, error) {
	value, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errInvalidChoice, input)
	}
	if value < int(optionBook) || value > int(optionExit) {
		return 0, fmt.Errorf("%w: %d", errInvalidChoice, value)
	}
	return menuOption(value), nil
}

// parseSeatNumber never fails: anything that is not an integer becomes seat 0,
// which the booking operations reject as an invalid seat number.
func parseSeatNumber(input string) int {
	value, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0
	}
	return value
}

func renderMenu(th theme) string {
	var b strings.Builder
	b.WriteString(renderTitle(appTitle, th))
	b.WriteString("\n")
	for _, option := range menuOptions() {
		b.WriteString(th.option.Render(fmt.Sprintf(" %d. ", int(option))))
		b.WriteString(option.label())
		b.WriteString("\n")
	}
	return b.String()
}

// resultLine renders an operation result the way both front ends show it.
func resultLine(outcome service.Outcome, err error, th theme) string {
	switch {
	case err == nil:
		return th.success.Render(outcome.Message())
	case service.IsRuleViolation(err):
		return th.warning.Render(err.Error())
	default:
		return th.failure.Render(err.Error())
	}
}
