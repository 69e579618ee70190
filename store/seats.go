package store

import (
	"errors"
	"fmt"

	"ticket-booking-cli/model"
)

const (
	defaultSeatCount = 20
	// MaxSeats bounds the hall size accepted by New.
	MaxSeats = 9999
)

// ErrSeatNotFound is returned when a seat number falls outside 1..Size().
var ErrSeatNotFound = errors.New("seat not found")

// Config describes the hall created at startup.
type Config struct {
	Seats  int
	Broken []int
}

func DefaultConfig() Config {
	return Config{
		Seats:  defaultSeatCount,
		Broken: []int{5, 13},
	}
}

func (c Config) Validate() error {
	if c.Seats < 1 {
		return fmt.Errorf("seat count must be positive, got %d", c.Seats)
	}
	if c.Seats > MaxSeats {
		return fmt.Errorf("seat count must be at most %d, got %d", MaxSeats, c.Seats)
	}
	for _, number := range c.Broken {
		if number < 1 || number > c.Seats {
			return fmt.Errorf("broken seat %d is outside 1..%d", number, c.Seats)
		}
	}
	return nil
}

// SeatStore holds a fixed, ordered set of seats. Seat n lives at index n-1 and
// the slice is never reordered, grown or shrunk after New.
type SeatStore struct {
	seats []model.Seat
}

func New(cfg Config) (*SeatStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seat config: %w", err)
	}

	seats := make([]model.Seat, cfg.Seats)
	for i := range seats {
		seats[i] = model.Seat{Number: i + 1, Status: model.StatusAvailable}
	}
	for _, number := range cfg.Broken {
		seats[number-1].Status = model.StatusBroken
	}
	return &SeatStore{seats: seats}, nil
}

// Get returns the live seat so callers can change its status.
func (s *SeatStore) Get(number int) (*model.Seat, error) {
	if number < 1 || number > len(s.seats) {
		return nil, ErrSeatNotFound
	}
	return &s.seats[number-1], nil
}

func (s *SeatStore) Size() int {
	return len(s.seats)
}

// All returns a copy of the seats in number order.
func (s *SeatStore) All() []model.Seat {
	out := make([]model.Seat, len(s.seats))
	copy(out, s.seats)
	return out
}

func (s *SeatStore) Count(status model.SeatStatus) int {
	count := 0
	for _, seat := range s.seats {
		if seat.Status == status {
			count++
		}
	}
	return count
}
