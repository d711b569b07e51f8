package booking

import (
	"context"
	"sync"

	"github.com/Domenick1991/cabinbooking/internal/domain"
)

// SyncLedger serializes calls into a ledger shared by concurrent callers,
// such as HTTP handlers.
type SyncLedger struct {
	mu    sync.Mutex
	inner LedgerUseCase
}

func NewSyncLedger(inner LedgerUseCase) *SyncLedger {
	return &SyncLedger{inner: inner}
}

func (s *SyncLedger) IsBooked(seat string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.IsBooked(seat)
}

func (s *SyncLedger) Lookup(seat string) (domain.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Lookup(seat)
}

func (s *SyncLedger) Book(ctx context.Context, seat string, passenger domain.Passenger) (*domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Book(ctx, seat, passenger)
}

func (s *SyncLedger) Free(ctx context.Context, seat string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Free(ctx, seat)
}

func (s *SyncLedger) Bookings() []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Bookings()
}

var _ LedgerUseCase = (*SyncLedger)(nil)
