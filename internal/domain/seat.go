package domain

type SeatState string

const (
	SeatFree    SeatState = "FREE"
	SeatBooked  SeatState = "BOOKED"
	SeatAisle   SeatState = "AISLE"
	SeatStorage SeatState = "STORAGE"
)

// PlanCell is one grid cell joined with the ledger state.
type PlanCell struct {
	Label string    `json:"label"`
	State SeatState `json:"state"`
}

type SeatStatus struct {
	Seat   string    `json:"seat"`
	State  SeatState `json:"state"`
	Record *Record   `json:"record,omitempty"`
}
