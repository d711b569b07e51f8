package booking

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/Domenick1991/cabinbooking/internal/cabin"
	"github.com/Domenick1991/cabinbooking/internal/domain"
	"github.com/google/uuid"
)

type LedgerUseCase interface {
	IsBooked(seat string) bool
	Lookup(seat string) (domain.Record, bool)
	Book(ctx context.Context, seat string, passenger domain.Passenger) (*domain.Record, error)
	Free(ctx context.Context, seat string) error
	Bookings() []domain.Record
}

// RecordStore mirrors the ledger. Append runs on book and Remove on free,
// both keyed by seat label.
type RecordStore interface {
	Append(ctx context.Context, record domain.Record) error
	Remove(ctx context.Context, seat string) error
	List(ctx context.Context) ([]domain.Record, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Ledger maps seat labels to active reservations. It is not safe for
// concurrent use.
type Ledger struct {
	layout     *cabin.Layout
	records    map[string]domain.Record
	references map[string]struct{}
	store      RecordStore
	producer   Producer
	eventTopic string
	rng        *rand.Rand
	now        func() time.Time
}

type LedgerOption func(*Ledger)

func WithStore(store RecordStore) LedgerOption {
	return func(l *Ledger) {
		l.store = store
	}
}

func WithProducer(producer Producer, topic string) LedgerOption {
	return func(l *Ledger) {
		l.producer = producer
		l.eventTopic = topic
	}
}

func WithRand(rng *rand.Rand) LedgerOption {
	return func(l *Ledger) {
		l.rng = rng
	}
}

func NewLedger(layout *cabin.Layout, opts ...LedgerOption) *Ledger {
	ledger := &Ledger{
		layout:     layout,
		records:    make(map[string]domain.Record),
		references: make(map[string]struct{}),
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(ledger)
	}
	return ledger
}

func (l *Ledger) IsBooked(seat string) bool {
	_, ok := l.Lookup(seat)
	return ok
}

func (l *Ledger) Lookup(seat string) (domain.Record, bool) {
	parsed, err := l.layout.Parse(seat)
	if err != nil {
		return domain.Record{}, false
	}
	record, ok := l.records[parsed.String()]
	return record, ok
}

func (l *Ledger) Book(ctx context.Context, seat string, passenger domain.Passenger) (*domain.Record, error) {
	parsed, err := l.layout.Parse(seat)
	if err != nil {
		return nil, err
	}
	key := parsed.String()
	if _, ok := l.records[key]; ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyBooked, key)
	}

	passenger, err = passenger.Normalize()
	if err != nil {
		return nil, err
	}

	record := domain.Record{
		Seat:           key,
		Reference:      NewReference(l.rng, l.references),
		PassportNumber: passenger.PassportNumber,
		FirstName:      passenger.FirstName,
		LastName:       passenger.LastName,
	}

	if l.store != nil {
		if err := l.store.Append(ctx, record); err != nil {
			return nil, fmt.Errorf("persist booking for %s: %w", key, err)
		}
	}

	l.records[key] = record
	l.references[record.Reference] = struct{}{}

	if err := l.publish(ctx, domain.SeatEventBooked, record); err != nil {
		log.Printf("WARNING: failed to publish %s event for seat %s: %v", domain.SeatEventBooked, key, err)
	}
	return &record, nil
}

func (l *Ledger) Free(ctx context.Context, seat string) error {
	parsed, err := l.layout.Parse(seat)
	if err != nil {
		return err
	}
	key := parsed.String()
	record, ok := l.records[key]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotBooked, key)
	}

	if l.store != nil {
		if err := l.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("remove booking for %s: %w", key, err)
		}
	}

	delete(l.records, key)
	delete(l.references, record.Reference)

	if err := l.publish(ctx, domain.SeatEventFreed, record); err != nil {
		log.Printf("WARNING: failed to publish %s event for seat %s: %v", domain.SeatEventFreed, key, err)
	}
	return nil
}

// Bookings returns the active reservations in layout order.
func (l *Ledger) Bookings() []domain.Record {
	out := make([]domain.Record, 0, len(l.records))
	if len(l.records) == 0 {
		return out
	}
	for _, seat := range l.layout.Seats() {
		if record, ok := l.records[seat]; ok {
			out = append(out, record)
		}
	}
	return out
}

// Restore loads the records held by the store into an empty ledger. Rows
// that name an unbookable seat, reuse a seat or reference, or lack
// passenger details are skipped. Skipped rows for seats left free are
// removed from the store so the seat can be booked again.
func (l *Ledger) Restore(ctx context.Context) (int, error) {
	if l.store == nil {
		return 0, nil
	}
	stored, err := l.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list stored bookings: %w", err)
	}

	restored := 0
	var stale []string
	for _, record := range stored {
		parsed, err := l.layout.Parse(record.Seat)
		if err != nil {
			log.Printf("skip stored booking %q: %v", record.Seat, err)
			continue
		}
		key := parsed.String()
		if _, ok := l.records[key]; ok {
			log.Printf("skip stored booking %q: seat already restored", key)
			continue
		}
		if !validReference(record.Reference) {
			log.Printf("skip stored booking %q: malformed reference %q", key, record.Reference)
			stale = append(stale, record.Seat)
			continue
		}
		if _, ok := l.references[record.Reference]; ok {
			log.Printf("skip stored booking %q: duplicate reference %s", key, record.Reference)
			stale = append(stale, record.Seat)
			continue
		}
		passenger, err := domain.Passenger{
			PassportNumber: record.PassportNumber,
			FirstName:      record.FirstName,
			LastName:       record.LastName,
		}.Normalize()
		if err != nil {
			log.Printf("skip stored booking %q: %v", key, err)
			stale = append(stale, record.Seat)
			continue
		}

		l.records[key] = domain.Record{
			Seat:           key,
			Reference:      record.Reference,
			PassportNumber: passenger.PassportNumber,
			FirstName:      passenger.FirstName,
			LastName:       passenger.LastName,
		}
		l.references[record.Reference] = struct{}{}
		restored++
	}

	for _, seat := range stale {
		if l.IsBooked(seat) {
			continue
		}
		if err := l.store.Remove(ctx, seat); err != nil {
			log.Printf("WARNING: failed to remove stale booking for seat %s: %v", seat, err)
		}
	}
	return restored, nil
}

func (l *Ledger) publish(ctx context.Context, eventType domain.SeatEventType, record domain.Record) error {
	if l.producer == nil || l.eventTopic == "" {
		return nil
	}
	event := domain.SeatEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Seat:       record.Seat,
		Reference:  record.Reference,
		LastName:   record.LastName,
		OccurredAt: l.now().UTC(),
	}
	return l.producer.Publish(ctx, l.eventTopic, record.Seat, event)
}

var _ LedgerUseCase = (*Ledger)(nil)
