package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/cabinbooking/config"
	"github.com/Domenick1991/cabinbooking/internal/audit"
	"github.com/Domenick1991/cabinbooking/internal/kafka"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.SeatEventsTopic == "" {
		log.Fatalf("kafka brokers and seat_events_topic are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.SeatEventsTopic)
	defer consumer.Close()

	recorder := audit.NewRecorder(os.Stdout)

	log.Printf("consuming seat events from %s", cfg.Kafka.SeatEventsTopic)
	if err := consumer.Consume(ctx, kafka.SeatEventHandler(recorder.Record)); err != nil {
		log.Printf("consumer stopped: %v", err)
	}
	log.Printf("worker shut down")
}
