package main

import (
	"context"
	"log"
	"os"

	"github.com/Domenick1991/cabinbooking/config"
	"github.com/Domenick1991/cabinbooking/internal/bootstrap"
	"github.com/Domenick1991/cabinbooking/internal/menu"
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

	ctx := context.Background()

	cabin, err := bootstrap.NewCabin(ctx, cfg)
	if err != nil {
		log.Fatalf("init cabin: %v", err)
	}
	defer cabin.Close()

	planService := seatplan.NewSeatPlanService(cabin.Layout, cabin.Ledger)
	if err := menu.New(planService, cabin.Ledger, os.Stdin, os.Stdout).Run(ctx); err != nil {
		log.Printf("menu stopped: %v", err)
	}
}
