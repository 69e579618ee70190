package model

import "fmt"

type SeatStatus int

const (
	StatusAvailable SeatStatus = iota
	StatusReserved
	StatusBroken
)

// Statuses lists every seat status in display order.
func Statuses() []SeatStatus {
	return []SeatStatus{StatusAvailable, StatusReserved, StatusBroken}
}

func (s SeatStatus) String() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusReserved:
		return "Reserved"
	case StatusBroken:
		return "Broken"
	default:
		return fmt.Sprintf("SeatStatus(%d)", int(s))
	}
}

// Seat is a single bookable seat. Number is its 1-based position in the hall
// and never changes once the seat is created.
type Seat struct {
	Number int
	Status SeatStatus
}

func (s Seat) IsAvailable() bool {
	return s.Status == StatusAvailable
}

func (s Seat) IsReserved() bool {
	return s.Status == StatusReserved
}

func (s Seat) IsBroken() bool {
	return s.Status == StatusBroken
}
