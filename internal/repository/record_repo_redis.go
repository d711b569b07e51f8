package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"

	"github.com/Domenick1991/cabinbooking/config"
	"github.com/Domenick1991/cabinbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

const defaultBookingsKey = "cabin:bookings"

// RedisRecordStore keeps one hash field per booked seat.
type RedisRecordStore struct {
	client *redis.Client
	key    string
}

func NewRedisRecordStore(cfg config.RedisConfig) *RedisRecordStore {
	key := cfg.BookingsKey
	if key == "" {
		key = defaultBookingsKey
	}
	return &RedisRecordStore{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		key:    key,
	}
}

func (s *RedisRecordStore) Append(ctx context.Context, record domain.Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	ok, err := s.client.HSetNX(ctx, s.key, record.Seat, payload).Result()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("seat %s already stored", record.Seat)
	}
	return nil
}

func (s *RedisRecordStore) Remove(ctx context.Context, seat string) error {
	return s.client.HDel(ctx, s.key, seat).Err()
}

func (s *RedisRecordStore) List(ctx context.Context) ([]domain.Record, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}
	return decodeRecords(fields), nil
}

// decodeRecords returns the records sorted by seat. Values that do not
// decode are logged and skipped.
func decodeRecords(fields map[string]string) []domain.Record {
	seats := make([]string, 0, len(fields))
	for seat := range fields {
		seats = append(seats, seat)
	}
	sort.Strings(seats)

	records := make([]domain.Record, 0, len(seats))
	for _, seat := range seats {
		var rec domain.Record
		if err := json.Unmarshal([]byte(fields[seat]), &rec); err != nil {
			log.Printf("skip stored booking %s: %v", seat, err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

func (s *RedisRecordStore) Close() error {
	return s.client.Close()
}
