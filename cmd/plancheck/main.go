package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ManuelReschke/PlanChange/internal/pkg/billing"
	"github.com/ManuelReschke/PlanChange/internal/pkg/cache"
	"github.com/ManuelReschke/PlanChange/internal/pkg/database"
	"github.com/ManuelReschke/PlanChange/internal/pkg/env"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

// plancheck lists every plan together with the state of its pricing and exits
// non-zero when at least one plan cannot be priced for a plan change. With
// -flush-cache the cached tiers of every plan are dropped afterwards, which is
// what to run after editing plan prices.
func main() {
	os.Exit(run())
}

func run() int {
	flushCache := flag.Bool("flush-cache", false, "drop cached pricing tiers of all plans")
	flag.Parse()

	if err := env.SetupEnvFile(); err != nil {
		fiberlog.Warnf("%v, using process environment", err)
	}
	if env.IsDev() {
		fiberlog.SetLevel(fiberlog.LevelDebug)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := billing.ConfigFromEnv()
	if err != nil {
		fiberlog.Errorf("Invalid plan change configuration: %v", err)
		return 1
	}

	db, err := database.SetupDatabase()
	if err != nil {
		fiberlog.Errorf("Database unavailable: %v", err)
		return 1
	}

	var rdb *redis.Client
	if env.GetEnv("CACHE_HOST", "") != "" {
		rdb = cache.SetupCache(ctx)
		defer rdb.Close()
	}

	svc := billing.NewPlanChangeServiceFromDB(db, rdb, cfg)
	audits, err := svc.AuditPlans(ctx)
	if err != nil {
		fiberlog.Errorf("Plan audit failed: %v", err)
		return 1
	}

	broken := 0
	planIDs := make([]uint, 0, len(audits))
	for _, a := range audits {
		planIDs = append(planIDs, a.PlanID)
		status := "ok"
		if a.Err != nil {
			status = a.Err.Error()
			broken++
		}
		fmt.Printf("%6d  %-30s  tiers=%-3d  %s\n", a.PlanID, a.Name, a.TierCount, status)
	}
	fmt.Printf("%d plans checked, %d without usable pricing\n", len(audits), broken)

	if *flushCache {
		if rdb == nil {
			fiberlog.Warnf("CACHE_HOST is not set, nothing to flush")
		} else if err := svc.FlushTierCache(ctx, planIDs...); err != nil {
			fiberlog.Errorf("Flushing tier cache failed: %v", err)
			return 1
		} else {
			fiberlog.Infof("Flushed cached tiers of %d plans", len(planIDs))
		}
	}

	if broken > 0 {
		return 1
	}
	return 0
}
