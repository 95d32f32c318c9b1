package integration

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/climatelens/risk-analytics/internal/calculation"
	"github.com/climatelens/risk-analytics/internal/config"
	"github.com/climatelens/risk-analytics/internal/navigation"
	"github.com/climatelens/risk-analytics/internal/output"
	"github.com/climatelens/risk-analytics/internal/server"
	"github.com/climatelens/risk-analytics/internal/view"
	"github.com/valyala/fasthttp"
)

func TestGenerateAllReports(t *testing.T) {
	cfg, engine := loadExample(t)
	sb := view.FromDefaults(engine.Scenarios, cfg.Defaults)
	asset := view.NewAnalysis(navigation.NewState(1), sb).Request()
	portfolio := view.NewPortfolio(engine.Reference.BaseColumns(), sb).Request()

	report, err := engine.BuildReport(context.Background(), calculation.ReportRequest{
		Asset: &asset, Portfolio: &portfolio, Insights: true, Compare: true,
	})
	if err != nil {
		t.Fatalf("BuildReport error: %v", err)
	}

	dir := t.TempDir()
	files, err := output.GenerateReport(report, "all", dir)
	if err != nil {
		t.Fatalf("GenerateReport all error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %v", files)
	}
	for _, f := range files {
		fi, err := os.Stat(f)
		if err != nil {
			t.Fatalf("expected file exists, err: %v", err)
		}
		if fi.Size() == 0 {
			t.Fatalf("expected non-empty file %s", f)
		}
	}
}

func TestSaveConfiguration_RoundTrip(t *testing.T) {
	cfg, _ := loadExample(t)
	out := filepath.Join(t.TempDir(), "config.yaml")
	if err := output.SaveConfiguration(cfg, out); err != nil {
		t.Fatalf("SaveConfiguration error: %v", err)
	}
	loaded, err := config.NewInputParser().LoadFromFile(out)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if loaded.Defaults.Scenario != cfg.Defaults.Scenario || len(loaded.CustomScenarios) != 2 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestServerServesConfiguredReport(t *testing.T) {
	cfg, engine := loadExample(t)
	srv := server.New(engine, cfg.Defaults, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = srv.ListenAndServe(ctx, addr) }()

	var (
		status int
		body   []byte
	)
	deadline := time.Now().Add(2 * time.Second)
	for {
		status, body, err = fasthttp.Get(nil, "http://"+addr+"/report?format=console-lite&properties=1")
		if err == nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("GET /report: %v", err)
	}
	if status != fasthttp.StatusOK {
		t.Fatalf("status %d: %s", status, body)
	}
	if !strings.Contains(string(body), "High Carbon (Custom)") {
		t.Fatalf("report does not use the configured scenario:\n%s", body)
	}
}
