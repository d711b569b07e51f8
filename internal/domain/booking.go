package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrAlreadyBooked    = errors.New("seat already booked")
	ErrNotBooked        = errors.New("seat not booked")
	ErrInvalidPassenger = errors.New("invalid passenger details")
)

// Record is one active reservation. Records are replaced, never edited.
type Record struct {
	Seat           string `json:"seat"`
	Reference      string `json:"reference"`
	PassportNumber string `json:"passport_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
}

type Passenger struct {
	PassportNumber string `json:"passport_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
}

// Normalize trims every field and rejects blanks.
func (p Passenger) Normalize() (Passenger, error) {
	p.PassportNumber = strings.TrimSpace(p.PassportNumber)
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)

	switch {
	case p.PassportNumber == "":
		return p, fmt.Errorf("%w: passport number is required", ErrInvalidPassenger)
	case p.FirstName == "":
		return p, fmt.Errorf("%w: first name is required", ErrInvalidPassenger)
	case p.LastName == "":
		return p, fmt.Errorf("%w: last name is required", ErrInvalidPassenger)
	}
	return p, nil
}

type SeatEventType string

const (
	SeatEventBooked SeatEventType = "seat_booked"
	SeatEventFreed  SeatEventType = "seat_freed"
)

type SeatEvent struct {
	ID         string        `json:"id"`
	Type       SeatEventType `json:"type"`
	Seat       string        `json:"seat"`
	Reference  string        `json:"reference"`
	LastName   string        `json:"last_name"`
	OccurredAt time.Time     `json:"occurred_at"`
}
