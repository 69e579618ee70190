package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"ticket-booking-cli/model"
	"ticket-booking-cli/store"
)

func newTestBooking(t *testing.T) *Booking {
	t.Helper()
	seats, err := store.New(store.DefaultConfig())
	require.NoError(t, err)
	return NewBooking(seats, nil)
}

func seatStatus(t *testing.T, b *Booking, number int) model.SeatStatus {
	t.Helper()
	seat, err := b.Seats().Get(number)
	require.NoError(t, err)
	return seat.Status
}

func TestOperations_InvalidSeatLeavesStoreUnchanged(t *testing.T) {
	b := newTestBooking(t)
	before := b.Seats().All()

	for _, op := range []Operation{OpBook, OpCancel, OpMarkBroken, OpRepair} {
		for _, number := range []int{-5, 0, 21, 1000} {
			_, err := b.Apply(op, number)
			require.Error(t, err, "%s %d", op, number)
			require.True(t, IsInvalidSeat(err), "%s %d: %v", op, number, err)
			require.False(t, IsRuleViolation(err))
			require.Equal(t, "Invalid seat number. Please choose a seat between 1 and 20", err.Error())
		}
	}

	require.Equal(t, before, b.Seats().All())
}

func TestBook_ThenCancelRoundTrip(t *testing.T) {
	b := newTestBooking(t)

	outcome, err := b.Book(3)
	require.NoError(t, err)
	require.Equal(t, Outcome{Op: OpBook, Number: 3, From: model.StatusAvailable, To: model.StatusReserved}, outcome)
	require.Equal(t, "Seat #3 has been reserved successfully.", outcome.Message())

	outcome, err = b.Cancel(3)
	require.NoError(t, err)
	require.Equal(t, "Reservation for seat #3 has been cancelled.", outcome.Message())
	require.Equal(t, model.StatusAvailable, seatStatus(t, b, 3))
}

func TestBook_TwiceFailsSecondTime(t *testing.T) {
	b := newTestBooking(t)

	_, err := b.Book(7)
	require.NoError(t, err)
	afterFirst := b.Seats().All()

	_, err = b.Book(7)
	require.ErrorIs(t, err, ErrAlreadyReserved)
	require.True(t, IsRuleViolation(err))
	require.Equal(t, "Seat #7 is already reserved.", err.Error())
	require.Equal(t, afterFirst, b.Seats().All())
}

func TestMarkBroken_ThenRepairRestoresAvailable(t *testing.T) {
	for _, tt := range []struct {
		name  string
		setup func(b *Booking) error
	}{
		{name: "from available", setup: func(b *Booking) error { return nil }},
		{name: "from reserved", setup: func(b *Booking) error {
			_, err := b.Book(9)
			return err
		}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBooking(t)
			require.NoError(t, tt.setup(b))

			outcome, err := b.MarkBroken(9)
			require.NoError(t, err)
			require.Equal(t, "Seat #9 has been marked as broken.", outcome.Message())

			outcome, err = b.Repair(9)
			require.NoError(t, err)
			require.Equal(t, "Seat #9 has been repaired and is now available.", outcome.Message())
			require.Equal(t, model.StatusAvailable, seatStatus(t, b, 9))
		})
	}
}

func TestMarkBroken_AlreadyBroken(t *testing.T) {
	b := newTestBooking(t)

	_, err := b.MarkBroken(5)
	require.ErrorIs(t, err, ErrAlreadyBroken)
	require.Equal(t, "Seat #5 is already marked as broken.", err.Error())
	require.Equal(t, model.StatusBroken, seatStatus(t, b, 5))
}

func TestRuleViolations(t *testing.T) {
	for _, tt := range []struct {
		name    string
		prepare []int
		op      Operation
		number  int
		want    error
		message string
	}{
		{name: "book broken", op: OpBook, number: 5, want: ErrSeatBroken, message: "Seat #5 is broken and cannot be reserved."},
		{name: "cancel available", op: OpCancel, number: 1, want: ErrNotReserved, message: "Seat #1 is not reserved."},
		{name: "cancel broken", op: OpCancel, number: 13, want: ErrSeatBroken, message: "Seat #13 is broken and has no reservation to cancel."},
		{name: "repair available", op: OpRepair, number: 2, want: ErrNotBroken, message: "Seat #2 is not broken and doesn't need repair."},
		{name: "repair reserved", prepare: []int{4}, op: OpRepair, number: 4, want: ErrNotBroken, message: "Seat #4 is not broken and doesn't need repair."},
	} {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBooking(t)
			for _, number := range tt.prepare {
				_, err := b.Book(number)
				require.NoError(t, err)
			}
			before := b.Seats().All()

			_, err := b.Apply(tt.op, tt.number)
			require.ErrorIs(t, err, tt.want)
			require.Equal(t, tt.message, err.Error())

			var seatErr *SeatError
			require.True(t, errors.As(err, &seatErr))
			require.Equal(t, tt.op, seatErr.Op)
			require.Equal(t, tt.number, seatErr.Number)
			require.Equal(t, before, b.Seats().All())
		})
	}
}

func TestApply_UnknownOperation(t *testing.T) {
	b := newTestBooking(t)

	_, err := b.Apply(Operation(42), 1)
	require.Error(t, err)
	require.False(t, IsInvalidSeat(err))
	require.False(t, IsRuleViolation(err))
	require.Equal(t, model.StatusAvailable, seatStatus(t, b, 1))
}

func TestReferenceScenario(t *testing.T) {
	b := newTestBooking(t)

	_, err := b.Book(5)
	require.Equal(t, "Seat #5 is broken and cannot be reserved.", err.Error())
	require.Equal(t, model.StatusBroken, seatStatus(t, b, 5))

	_, err = b.Book(1)
	require.NoError(t, err)
	require.Equal(t, model.StatusReserved, seatStatus(t, b, 1))

	_, err = b.Cancel(1)
	require.NoError(t, err)
	require.Equal(t, model.StatusAvailable, seatStatus(t, b, 1))

	_, err = b.Repair(13)
	require.NoError(t, err)
	require.Equal(t, model.StatusAvailable, seatStatus(t, b, 13))

	_, err = b.MarkBroken(13)
	require.NoError(t, err)
	require.Equal(t, model.StatusBroken, seatStatus(t, b, 13))

	_, err = b.Book(21)
	require.True(t, IsInvalidSeat(err))
}
