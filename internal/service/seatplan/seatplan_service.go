package seatplan

import (
	"context"

	"github.com/Domenick1991/cabinbooking/internal/cabin"
	"github.com/Domenick1991/cabinbooking/internal/domain"
)

type PlanUseCase interface {
	Plan(ctx context.Context) [][]domain.PlanCell
	Status(ctx context.Context, seat string) (*domain.SeatStatus, error)
}

type SeatLookup interface {
	Lookup(seat string) (domain.Record, bool)
}

// SeatPlanService joins the static layout with the ledger state.
type SeatPlanService struct {
	layout *cabin.Layout
	ledger SeatLookup
}

func NewSeatPlanService(layout *cabin.Layout, ledger SeatLookup) *SeatPlanService {
	return &SeatPlanService{layout: layout, ledger: ledger}
}

func (s *SeatPlanService) Plan(_ context.Context) [][]domain.PlanCell {
	rows := s.layout.Rows()
	plan := make([][]domain.PlanCell, len(rows))
	for i, row := range rows {
		cells := make([]domain.PlanCell, len(row))
		for j, cell := range row {
			cells[j] = domain.PlanCell{Label: cell.Label, State: s.cellState(cell)}
		}
		plan[i] = cells
	}
	return plan
}

func (s *SeatPlanService) Status(_ context.Context, seat string) (*domain.SeatStatus, error) {
	parsed, err := s.layout.Parse(seat)
	if err != nil {
		return nil, err
	}
	status := &domain.SeatStatus{Seat: parsed.String(), State: domain.SeatFree}
	if record, ok := s.ledger.Lookup(status.Seat); ok {
		status.State = domain.SeatBooked
		status.Record = &record
	}
	return status, nil
}

func (s *SeatPlanService) cellState(cell cabin.Cell) domain.SeatState {
	switch cell.Kind {
	case cabin.CellAisle:
		return domain.SeatAisle
	case cabin.CellStorage:
		return domain.SeatStorage
	}
	if _, ok := s.ledger.Lookup(cell.Label); ok {
		return domain.SeatBooked
	}
	return domain.SeatFree
}

var _ PlanUseCase = (*SeatPlanService)(nil)
