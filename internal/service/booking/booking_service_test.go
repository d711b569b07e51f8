package booking

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/Domenick1991/cabinbooking/internal/cabin"
	"github.com/Domenick1991/cabinbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Append(ctx context.Context, record domain.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordStore) Remove(ctx context.Context, seat string) error {
	args := m.Called(ctx, seat)
	return args.Error(0)
}

func (m *MockRecordStore) List(ctx context.Context) ([]domain.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func newTestLayout(t *testing.T) *cabin.Layout {
	t.Helper()
	layout, err := cabin.NewLayout(cabin.DefaultConfig())
	require.NoError(t, err)
	return layout
}

var testPassenger = domain.Passenger{
	PassportNumber: "P1234567",
	FirstName:      "Ada",
	LastName:       "Lovelace",
}

func TestLedger_BookThenFree(t *testing.T) {
	ledger := NewLedger(newTestLayout(t))
	ctx := context.Background()

	record, err := ledger.Book(ctx, "12C", testPassenger)
	require.NoError(t, err)
	assert.Equal(t, "12C", record.Seat)
	assert.Len(t, record.Reference, ReferenceLength)
	assert.True(t, validReference(record.Reference))
	assert.True(t, ledger.IsBooked("12C"))

	require.NoError(t, ledger.Free(ctx, "12C"))
	assert.False(t, ledger.IsBooked("12C"))
	_, ok := ledger.Lookup("12C")
	assert.False(t, ok)
	assert.Empty(t, ledger.Bookings())
	assert.Empty(t, ledger.references)
}

func TestLedger_BookNormalizesSeat(t *testing.T) {
	ledger := NewLedger(newTestLayout(t))

	record, err := ledger.Book(context.Background(), " 5d", testPassenger)
	require.NoError(t, err)
	assert.Equal(t, "5D", record.Seat)
	assert.True(t, ledger.IsBooked("5D"))
	assert.True(t, ledger.IsBooked("5d"))
}

func TestLedger_BookAlreadyBooked(t *testing.T) {
	ledger := NewLedger(newTestLayout(t))
	ctx := context.Background()

	first, err := ledger.Book(ctx, "3A", testPassenger)
	require.NoError(t, err)

	second, err := ledger.Book(ctx, "3A", domain.Passenger{PassportNumber: "X9", FirstName: "Alan", LastName: "Turing"})
	assert.ErrorIs(t, err, domain.ErrAlreadyBooked)
	assert.Nil(t, second)

	current, ok := ledger.Lookup("3A")
	require.True(t, ok)
	assert.Equal(t, *first, current)
}

func TestLedger_BookInvalidSeat(t *testing.T) {
	ledger := NewLedger(newTestLayout(t))
	ctx := context.Background()

	testCases := []struct {
		seat    string
		wantErr error
	}{
		{seat: "91A", wantErr: cabin.ErrInvalidSeat},
		{seat: "1G", wantErr: cabin.ErrInvalidSeat},
		{seat: "X", wantErr: cabin.ErrInvalidSeat},
		{seat: "77D", wantErr: cabin.ErrReservedZone},
	}
	for _, tc := range testCases {
		t.Run(tc.seat, func(t *testing.T) {
			record, err := ledger.Book(ctx, tc.seat, testPassenger)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, record)
		})
	}
	assert.Empty(t, ledger.Bookings())
}

func TestLedger_BookInvalidPassenger(t *testing.T) {
	ledger := NewLedger(newTestLayout(t))

	record, err := ledger.Book(context.Background(), "1A", domain.Passenger{PassportNumber: "  ", FirstName: "Ada", LastName: "Lovelace"})
	assert.ErrorIs(t, err, domain.ErrInvalidPassenger)
	assert.Nil(t, record)
	assert.False(t, ledger.IsBooked("1A"))
}

func TestLedger_FreeNotBooked(t *testing.T) {
	ledger := NewLedger(newTestLayout(t))

	err := ledger.Free(context.Background(), "10B")
	assert.ErrorIs(t, err, domain.ErrNotBooked)

	err = ledger.Free(context.Background(), "91A")
	assert.ErrorIs(t, err, cabin.ErrInvalidSeat)
}

func TestLedger_ReferencesAreUnique(t *testing.T) {
	ledger := NewLedger(newTestLayout(t))
	ctx := context.Background()

	seen := make(map[string]bool)
	for _, seat := range ledger.layout.Seats()[:200] {
		record, err := ledger.Book(ctx, seat, testPassenger)
		require.NoError(t, err)
		assert.False(t, seen[record.Reference], "reference %s reused", record.Reference)
		seen[record.Reference] = true
	}
}

func TestLedger_BookingsInLayoutOrder(t *testing.T) {
	ledger := NewLedger(newTestLayout(t))
	ctx := context.Background()

	for _, seat := range []string{"5F", "2A", "80C", "1D"} {
		_, err := ledger.Book(ctx, seat, testPassenger)
		require.NoError(t, err)
	}

	var seats []string
	for _, record := range ledger.Bookings() {
		seats = append(seats, record.Seat)
	}
	assert.Equal(t, []string{"2A", "80C", "1D", "5F"}, seats)
}

func TestLedger_BookMirrorsToStore(t *testing.T) {
	store := &MockRecordStore{}
	ledger := NewLedger(newTestLayout(t), WithStore(store))
	ctx := context.Background()

	store.On("Append", ctx, mock.MatchedBy(func(r domain.Record) bool {
		return r.Seat == "4B" && r.LastName == "Lovelace"
	})).Return(nil).Once()
	store.On("Remove", ctx, "4B").Return(nil).Once()

	_, err := ledger.Book(ctx, "4b", testPassenger)
	require.NoError(t, err)
	require.NoError(t, ledger.Free(ctx, "4B"))

	store.AssertExpectations(t)
}

func TestLedger_StoreFailureLeavesLedgerUnchanged(t *testing.T) {
	store := &MockRecordStore{}
	ledger := NewLedger(newTestLayout(t), WithStore(store))
	ctx := context.Background()

	store.On("Append", ctx, mock.Anything).Return(errors.New("disk full")).Once()

	record, err := ledger.Book(ctx, "8A", testPassenger)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Nil(t, record)
	assert.False(t, ledger.IsBooked("8A"))
	assert.Empty(t, ledger.references)

	store.On("Append", ctx, mock.Anything).Return(nil).Once()
	_, err = ledger.Book(ctx, "8A", testPassenger)
	require.NoError(t, err)

	store.On("Remove", ctx, "8A").Return(errors.New("read-only")).Once()
	err = ledger.Free(ctx, "8A")
	assert.Error(t, err)
	assert.True(t, ledger.IsBooked("8A"))

	store.AssertExpectations(t)
}

func TestLedger_PublishesSeatEvents(t *testing.T) {
	producer := &MockProducer{}
	ledger := NewLedger(newTestLayout(t), WithProducer(producer, "seat-events"))
	ctx := context.Background()

	producer.On("Publish", ctx, "seat-events", "9E", mock.MatchedBy(func(v interface{}) bool {
		event, ok := v.(domain.SeatEvent)
		return ok && event.Type == domain.SeatEventBooked && event.ID != ""
	})).Return(nil).Once()
	producer.On("Publish", ctx, "seat-events", "9E", mock.MatchedBy(func(v interface{}) bool {
		event, ok := v.(domain.SeatEvent)
		return ok && event.Type == domain.SeatEventFreed
	})).Return(errors.New("broker down")).Once()

	_, err := ledger.Book(ctx, "9E", testPassenger)
	require.NoError(t, err)
	// Publish failures are logged, not returned.
	require.NoError(t, ledger.Free(ctx, "9E"))

	producer.AssertExpectations(t)
}

func TestLedger_Restore(t *testing.T) {
	store := &MockRecordStore{}
	ledger := NewLedger(newTestLayout(t), WithStore(store))
	ctx := context.Background()

	store.On("List", ctx).Return([]domain.Record{
		{Seat: "1a", Reference: "ABCD1234", PassportNumber: "P1", FirstName: "Ada", LastName: "Lovelace"},
		{Seat: "1A", Reference: "ZZZZ9999", PassportNumber: "P2", FirstName: "Alan", LastName: "Turing"},
		{Seat: "91A", Reference: "QQQQ1111", PassportNumber: "P3", FirstName: "Grace", LastName: "Hopper"},
		{Seat: "77D", Reference: "QQQQ2222", PassportNumber: "P4", FirstName: "Edsger", LastName: "Dijkstra"},
		{Seat: "2B", Reference: "ABCD1234", PassportNumber: "P5", FirstName: "Barbara", LastName: "Liskov"},
		{Seat: "3C", Reference: "short", PassportNumber: "P6", FirstName: "Ken", LastName: "Thompson"},
		{Seat: "4D", Reference: "WXYZ0000", PassportNumber: "", FirstName: "Rob", LastName: "Pike"},
		{Seat: "5E", Reference: "LMNO5555", PassportNumber: "P7", FirstName: "Robert", LastName: "Griesemer"},
	}, nil).Once()
	for _, seat := range []string{"2B", "3C", "4D"} {
		store.On("Remove", ctx, seat).Return(nil).Once()
	}

	restored, err := ledger.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, restored)

	first, ok := ledger.Lookup("1A")
	require.True(t, ok)
	assert.Equal(t, "ABCD1234", first.Reference)
	assert.True(t, ledger.IsBooked("5E"))
	assert.False(t, ledger.IsBooked("2B"))

	store.AssertExpectations(t)
}

func TestLedger_RestoreFreesSkippedSeats(t *testing.T) {
	store := &MockRecordStore{}
	ledger := NewLedger(newTestLayout(t), WithStore(store))
	ctx := context.Background()

	store.On("List", ctx).Return([]domain.Record{
		{Seat: "6A", Reference: "bad", PassportNumber: "P1", FirstName: "Ada", LastName: "Lovelace"},
	}, nil).Once()
	store.On("Remove", ctx, "6A").Return(errors.New("read-only")).Once()

	restored, err := ledger.Restore(ctx)
	require.NoError(t, err)
	assert.Zero(t, restored)

	store.On("Append", ctx, mock.MatchedBy(func(r domain.Record) bool {
		return r.Seat == "6A"
	})).Return(nil).Once()
	_, err = ledger.Book(ctx, "6A", testPassenger)
	require.NoError(t, err)

	store.AssertExpectations(t)
}

func TestLedger_RestoreListError(t *testing.T) {
	store := &MockRecordStore{}
	ledger := NewLedger(newTestLayout(t), WithStore(store))
	ctx := context.Background()

	store.On("List", ctx).Return(nil, errors.New("connection refused")).Once()

	restored, err := ledger.Restore(ctx)
	assert.Error(t, err)
	assert.Zero(t, restored)
}

func TestLedger_RestoreWithoutStore(t *testing.T) {
	ledger := NewLedger(newTestLayout(t))

	restored, err := ledger.Restore(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, restored)
}

func TestNewReference_RejectsUsed(t *testing.T) {
	first := NewReference(rand.New(rand.NewPCG(1, 2)), nil)
	assert.True(t, validReference(first))

	replay := rand.New(rand.NewPCG(1, 2))
	used := map[string]struct{}{first: {}}
	second := NewReference(replay, used)
	assert.NotEqual(t, first, second)
	assert.True(t, validReference(second))
	assert.NotContains(t, used, second)
	assert.Len(t, used, 1)
}

func TestLedger_WithRandIsDeterministic(t *testing.T) {
	ctx := context.Background()
	a := NewLedger(newTestLayout(t), WithRand(rand.New(rand.NewPCG(7, 7))))
	b := NewLedger(newTestLayout(t), WithRand(rand.New(rand.NewPCG(7, 7))))

	ra, err := a.Book(ctx, "1A", testPassenger)
	require.NoError(t, err)
	rb, err := b.Book(ctx, "1A", testPassenger)
	require.NoError(t, err)
	assert.Equal(t, ra.Reference, rb.Reference)
}
