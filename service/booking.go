package service

import (
	"errors"
	"fmt"
	"log/slog"

	"ticket-booking-cli/model"
	"ticket-booking-cli/store"
)

// Operation identifies one of the seat status transitions.
type Operation int

const (
	OpBook Operation = iota
	OpCancel
	OpMarkBroken
	OpRepair
)

func (o Operation) String() string {
	switch o {
	case OpBook:
		return "book"
	case OpCancel:
		return "cancel"
	case OpMarkBroken:
		return "mark-broken"
	case OpRepair:
		return "repair"
	default:
		return fmt.Sprintf("Operation(%d)", int(o))
	}
}

var (
	ErrInvalidSeat     = errors.New("invalid seat number")
	ErrAlreadyReserved = errors.New("seat already reserved")
	ErrSeatBroken      = errors.New("seat is broken")
	ErrNotReserved     = errors.New("seat not reserved")
	ErrAlreadyBroken   = errors.New("seat already broken")
	ErrNotBroken       = errors.New("seat not broken")
	errUnknownOp       = errors.New("unknown operation")
)

// SeatError is returned when an operation is refused. The store is left
// untouched whenever a SeatError is returned.
type SeatError struct {
	Op     Operation
	Number int
	Size   int
	Err    error
}

func (e *SeatError) Error() string {
	if e == nil {
		return "seat error"
	}
	switch {
	case errors.Is(e.Err, ErrInvalidSeat):
		return fmt.Sprintf("Invalid seat number. Please choose a seat between 1 and %d", e.Size)
	case errors.Is(e.Err, ErrAlreadyReserved):
		return fmt.Sprintf("Seat #%d is already reserved.", e.Number)
	case errors.Is(e.Err, ErrSeatBroken) && e.Op == OpCancel:
		return fmt.Sprintf("Seat #%d is broken and has no reservation to cancel.", e.Number)
	case errors.Is(e.Err, ErrSeatBroken):
		return fmt.Sprintf("Seat #%d is broken and cannot be reserved.", e.Number)
	case errors.Is(e.Err, ErrNotReserved):
		return fmt.Sprintf("Seat #%d is not reserved.", e.Number)
	case errors.Is(e.Err, ErrAlreadyBroken):
		return fmt.Sprintf("Seat #%d is already marked as broken.", e.Number)
	case errors.Is(e.Err, ErrNotBroken):
		return fmt.Sprintf("Seat #%d is not broken and doesn't need repair.", e.Number)
	default:
		return fmt.Sprintf("%s seat #%d: %v", e.Op, e.Number, e.Err)
	}
}

func (e *SeatError) Unwrap() error {
	return e.Err
}

// IsInvalidSeat reports whether err was caused by an out-of-range seat number.
func IsInvalidSeat(err error) bool {
	return errors.Is(err, ErrInvalidSeat)
}

// IsRuleViolation reports whether err rejected a transition because of the
// seat's current status.
func IsRuleViolation(err error) bool {
	var seatErr *SeatError
	if !errors.As(err, &seatErr) {
		return false
	}
	return !errors.Is(seatErr.Err, ErrInvalidSeat) && !errors.Is(seatErr.Err, errUnknownOp)
}

// Outcome describes an applied transition.
type Outcome struct {
	Op     Operation
	Number int
	From   model.SeatStatus
	To     model.SeatStatus
}

func (o Outcome) Message() string {
	switch o.Op {
	case OpBook:
		return fmt.Sprintf("Seat #%d has been reserved successfully.", o.Number)
	case OpCancel:
		return fmt.Sprintf("Reservation for seat #%d has been cancelled.", o.Number)
	case OpMarkBroken:
		return fmt.Sprintf("Seat #%d has been marked as broken.", o.Number)
	case OpRepair:
		return fmt.Sprintf("Seat #%d has been repaired and is now available.", o.Number)
	default:
		return fmt.Sprintf("Seat #%d is now %s.", o.Number, o.To)
	}
}

// Booking applies guarded status transitions to a seat store.
type Booking struct {
	seats  *store.SeatStore
	logger *slog.Logger
}

// NewBooking creates a Booking over seats. If logger is nil, logs are discarded.
func NewBooking(seats *store.SeatStore, logger *slog.Logger) *Booking {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Booking{seats: seats, logger: logger}
}

// Seats exposes the underlying store for rendering.
func (b *Booking) Seats() *store.SeatStore {
	return b.seats
}

// Book reserves an available seat.
func (b *Booking) Book(number int) (Outcome, error) {
	return b.transition(OpBook, number, func(status model.SeatStatus) (model.SeatStatus, error) {
		switch status {
		case model.StatusAvailable:
			return model.StatusReserved, nil
		case model.StatusReserved:
			return status, ErrAlreadyReserved
		default:
			return status, ErrSeatBroken
		}
	})
}

// Cancel releases a reserved seat.
func (b *Booking) Cancel(number int) (Outcome, error) {
	return b.transition(OpCancel, number, func(status model.SeatStatus) (model.SeatStatus, error) {
		switch status {
		case model.StatusReserved:
			return model.StatusAvailable, nil
		case model.StatusAvailable:
			return status, ErrNotReserved
		default:
			return status, ErrSeatBroken
		}
	})
}

// MarkBroken takes any seat that is not already broken out of service,
// dropping its reservation if it had one.
func (b *Booking) MarkBroken(number int) (Outcome, error) {
	return b.transition(OpMarkBroken, number, func(status model.SeatStatus) (model.SeatStatus, error) {
		if status == model.StatusBroken {
			return status, ErrAlreadyBroken
		}
		return model.StatusBroken, nil
	})
}

// Repair puts a broken seat back into service as available.
func (b *Booking) Repair(number int) (Outcome, error) {
	return b.transition(OpRepair, number, func(status model.SeatStatus) (model.SeatStatus, error) {
		if status != model.StatusBroken {
			return status, ErrNotBroken
		}
		return model.StatusAvailable, nil
	})
}

// Apply runs op against the given seat.
func (b *Booking) Apply(op Operation, number int) (Outcome, error) {
	switch op {
	case OpBook:
		return b.Book(number)
	case OpCancel:
		return b.Cancel(number)
	case OpMarkBroken:
		return b.MarkBroken(number)
	case OpRepair:
		return b.Repair(number)
	default:
		return Outcome{}, &SeatError{Op: op, Number: number, Size: b.seats.Size(), Err: errUnknownOp}
	}
}

func (b *Booking) transition(op Operation, number int, next func(model.SeatStatus) (model.SeatStatus, error)) (Outcome, error) {
	seat, err := b.seats.Get(number)
	if err != nil {
		b.logger.Debug("seat lookup failed", "op", op.String(), "seat", number, "error", err)
		return Outcome{}, &SeatError{Op: op, Number: number, Size: b.seats.Size(), Err: ErrInvalidSeat}
	}

	from := seat.Status
	to, err := next(from)
	if err != nil {
		b.logger.Debug("transition refused", "op", op.String(), "seat", number, "status", from.String(), "error", err)
		return Outcome{}, &SeatError{Op: op, Number: number, Size: b.seats.Size(), Err: err}
	}

	seat.Status = to
	b.logger.Debug("transition applied", "op", op.String(), "seat", number, "from", from.String(), "to", to.String())
	return Outcome{Op: op, Number: number, From: from, To: to}, nil
}
