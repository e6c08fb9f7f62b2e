package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/authchain/authchain/internal/attr/dirsvc"
	"github.com/authchain/authchain/internal/attr/static"
	"github.com/authchain/authchain/internal/audit/zaplog"
	"github.com/authchain/authchain/internal/banlist/memory"
	"github.com/authchain/authchain/internal/config"
	"github.com/authchain/authchain/internal/metrics"
	"github.com/authchain/authchain/pkg/authz"
	"github.com/authchain/authchain/pkg/authz/rules"
)

func main() {
	ctx := context.Background()

	// Register Prometheus metrics
	metrics.MustRegister()

	// Load configuration from the environment / .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	fmt.Printf("Configuration loaded successfully:\n%s\n", spew.Sdump(cfg))

	// Structured audit logging
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to parse log level: %v", err)
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = level
	zlog, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck
	auditor := zaplog.New(zlog)

	// Assemble the baseline policy around the configured ban set and verify
	// it covers every visibility variant this deployment uses.
	bans := memory.New(cfg.BannedSubjects...)
	policy, err := rules.Baseline(bans)
	if err != nil {
		log.Fatalf("Failed to build baseline policy: %v", err)
	}
	if err := policy.CheckVisibilityCoverage(
		authz.VisibilityPublic,
		authz.VisibilityPremium,
		authz.VisibilityPrivate,
	); err != nil {
		log.Fatalf("Policy fails visibility coverage: %v", err)
	}

	// Attribute providers: directory service when configured, static
	// otherwise.
	registry := authz.NewRegistry()
	if cfg.Directory.BaseURL != "" {
		registry.Register(dirsvc.NewProvider(authz.AttrTier, cfg.Directory.BaseURL, cfg.Directory.CacheTTL, "Subject service tier"))
		registry.Register(dirsvc.NewProvider(authz.AttrAdmin, cfg.Directory.BaseURL, cfg.Directory.CacheTTL, "Subject administrative flag"))
	} else {
		tiers := make(map[string]any, len(cfg.PremiumSubjects))
		for _, id := range cfg.PremiumSubjects {
			tiers[id] = string(authz.TierPremium)
		}
		registry.Register(static.NewTierProvider(tiers))
		registry.Register(static.NewAdminProvider(cfg.AdminSubjects...))
	}

	// Start metrics server
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		listenAddr := cfg.Prometheus.ListenAddr
		fmt.Printf("Starting metrics server on %s\n", listenAddr)
		if err := http.ListenAndServe(listenAddr, nil); err != nil {
			log.Fatalf("Failed to start metrics server: %v", err)
		}
	}()

	// Walk a few sample decisions through the full pipeline.
	samples := []struct {
		subjectID string
		object    authz.Object
	}{
		{subjectID: "alice", object: authz.Object{Visibility: authz.VisibilityPublic, Owner: "bob"}},
		{subjectID: "alice", object: authz.Object{Visibility: authz.VisibilityPremium, Owner: "bob"}},
		{subjectID: "alice", object: authz.Object{Visibility: authz.VisibilityPrivate, Owner: "alice"}},
	}

	for _, sample := range samples {
		snapshot, err := registry.SnapshotWithOpts(ctx, sample.subjectID, cfg.SnapshotOpts())
		if err != nil {
			auditor.LogSystemError(ctx, err, sample.subjectID, policy.ID()) //nolint:errcheck
			continue
		}
		subject, err := authz.SubjectFromSnapshot(sample.subjectID, snapshot)
		if err != nil {
			auditor.LogSystemError(ctx, err, sample.subjectID, policy.ID()) //nolint:errcheck
			continue
		}

		result := authz.DecideTraced(policy, subject, sample.object)
		auditor.LogDecision(ctx, subject, sample.object, result) //nolint:errcheck

		allowed := result.Decision == authz.Allow ||
			(result.Decision == authz.Abstain && cfg.DefaultOnAbstain)
		fmt.Printf("subject=%s visibility=%s owner=%s -> %s (allowed=%v)\n",
			subject.ID, sample.object.Visibility, sample.object.Owner, result.Decision, allowed)
	}

	fmt.Println("Demo decisions complete; serving metrics.")

	// Keep running to serve metrics
	for {
		time.Sleep(time.Hour)
	}
}
