package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/cabinbooking/config"
	"github.com/Domenick1991/cabinbooking/internal/bootstrap"
	"github.com/Domenick1991/cabinbooking/internal/service/booking"
	"github.com/Domenick1991/cabinbooking/internal/service/seatplan"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cabin, err := bootstrap.NewCabin(ctx, cfg)
	if err != nil {
		log.Fatalf("init cabin: %v", err)
	}
	defer cabin.Close()

	ledger := booking.NewSyncLedger(cabin.Ledger)
	planService := seatplan.NewSeatPlanService(cabin.Layout, ledger)

	if err := bootstrap.Run(ctx, cfg, planService, ledger); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
