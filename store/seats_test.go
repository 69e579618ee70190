package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ticket-booking-cli/model"
)

func newDefaultStore(t *testing.T) *SeatStore {
	t.Helper()
	seats, err := New(DefaultConfig())
	require.NoError(t, err)
	return seats
}

func TestNew_DefaultHall(t *testing.T) {
	seats := newDefaultStore(t)

	require.Equal(t, 20, seats.Size())
	for i, seat := range seats.All() {
		require.Equal(t, i+1, seat.Number)
		switch seat.Number {
		case 5, 13:
			require.Equal(t, model.StatusBroken, seat.Status, "seat %d", seat.Number)
		default:
			require.Equal(t, model.StatusAvailable, seat.Status, "seat %d", seat.Number)
		}
	}
	require.Equal(t, 2, seats.Count(model.StatusBroken))
	require.Equal(t, 18, seats.Count(model.StatusAvailable))
	require.Zero(t, seats.Count(model.StatusReserved))
}

func TestNew_InvalidConfig(t *testing.T) {
	for _, tt := range []struct {
		name string
		cfg  Config
	}{
		{name: "no seats", cfg: Config{Seats: 0}},
		{name: "negative seats", cfg: Config{Seats: -3}},
		{name: "too many seats", cfg: Config{Seats: MaxSeats + 1}},
		{name: "huge seat count", cfg: Config{Seats: 1 << 30}},
		{name: "broken seat zero", cfg: Config{Seats: 4, Broken: []int{0}}},
		{name: "broken seat past end", cfg: Config{Seats: 4, Broken: []int{5}}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			seats, err := New(tt.cfg)
			require.Error(t, err)
			require.Nil(t, seats)
		})
	}
}

func TestNew_LargestHall(t *testing.T) {
	seats, err := New(Config{Seats: MaxSeats})
	require.NoError(t, err)
	require.Equal(t, MaxSeats, seats.Size())
	require.Equal(t, MaxSeats, seats.Count(model.StatusAvailable))
}

func TestGet_Bounds(t *testing.T) {
	seats := newDefaultStore(t)

	for _, number := range []int{-1, 0, 21, 100} {
		seat, err := seats.Get(number)
		require.ErrorIs(t, err, ErrSeatNotFound, "seat %d", number)
		require.Nil(t, seat)
	}

	for _, number := range []int{1, 20} {
		seat, err := seats.Get(number)
		require.NoError(t, err)
		require.Equal(t, number, seat.Number)
	}
}

func TestGet_ReturnsLiveSeat(t *testing.T) {
	seats := newDefaultStore(t)

	seat, err := seats.Get(2)
	require.NoError(t, err)
	seat.Status = model.StatusReserved

	again, err := seats.Get(2)
	require.NoError(t, err)
	require.Equal(t, model.StatusReserved, again.Status)
}

func TestAll_ReturnsSnapshot(t *testing.T) {
	seats := newDefaultStore(t)

	snapshot := seats.All()
	snapshot[0].Status = model.StatusBroken

	seat, err := seats.Get(1)
	require.NoError(t, err)
	require.Equal(t, model.StatusAvailable, seat.Status)
}
