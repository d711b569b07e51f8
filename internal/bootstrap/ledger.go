package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/cabinbooking/config"
	"github.com/Domenick1991/cabinbooking/internal/cabin"
	"github.com/Domenick1991/cabinbooking/internal/kafka"
	"github.com/Domenick1991/cabinbooking/internal/repository"
	"github.com/Domenick1991/cabinbooking/internal/service/booking"
)

const kafkaCheckTimeout = 5 * time.Second

type Cabin struct {
	Layout *cabin.Layout
	Ledger *booking.Ledger

	closers []func()
}

// Close releases the store and producer in reverse order of creation.
func (c *Cabin) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// NewCabin builds the layout and a ledger mirrored to the configured store,
// then restores the stored bookings. Seat events are published only when
// Kafka brokers and a topic are configured.
func NewCabin(ctx context.Context, cfg *config.Config) (*Cabin, error) {
	layout, err := cabin.NewLayout(cfg.Cabin)
	if err != nil {
		return nil, fmt.Errorf("build cabin layout: %w", err)
	}

	store, closeStore, err := repository.OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c := &Cabin{Layout: layout, closers: []func(){closeStore}}

	opts := []booking.LedgerOption{booking.WithStore(store)}
	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.SeatEventsTopic != "" {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		c.closers = append(c.closers, func() { _ = producer.Close() })
		checkCtx, cancel := context.WithTimeout(ctx, kafkaCheckTimeout)
		if err := producer.CheckConnection(checkCtx); err != nil {
			log.Printf("WARNING: seat events enabled but Kafka is unreachable: %v", err)
		}
		cancel()
		opts = append(opts, booking.WithProducer(producer, cfg.Kafka.SeatEventsTopic))
	}

	c.Ledger = booking.NewLedger(layout, opts...)
	restored, err := c.Ledger.Restore(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	log.Printf("cabin ready: %d seats, %d bookings restored from %s store", layout.Capacity(), restored, cfg.Storage.Driver)
	return c, nil
}
