package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/config"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/domain"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/i18n"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/monitor"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/pricing"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/ui"
)

// version is set by goreleaser via ldflags.
var version = "dev"

func main() {
	var (
		configPath  = flag.String("config", config.DefaultPath(), "config file path")
		dataDir     = flag.String("data-dir", defaultDataDir(), "Claude Code data directory")
		noTUI       = flag.Bool("no-tui", false, "output JSON to stdout instead of TUI")
		view        = flag.String("view", "daily", "view for --no-tui: daily, monthly, blocks, stats")
		timezone    = flag.String("timezone", "", "override timezone (e.g., Asia/Seoul)")
		since       = flag.String("since", "", "filter entries from this date (YYYY-MM-DD)")
		until       = flag.String("until", "", "filter entries until this date (YYYY-MM-DD)")
		offline     = flag.Bool("offline", false, "skip the LiteLLM pricing fetch")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("claude-usage", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *timezone != "" {
		cfg.General.Timezone = *timezone
	}
	tz, err := time.LoadLocation(cfg.General.Timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid timezone: %s\n", cfg.General.Timezone)
		os.Exit(1)
	}
	i18n.SetLanguage(cfg.General.Language)

	calc, err := buildCalculator(cfg, *offline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading pricing: %v\n", err)
		os.Exit(1)
	}

	if *noTUI {
		runNoTUI(cfg, tz, calc, *dataDir, *view, *since, *until)
		return
	}

	app := ui.NewApp(cfg, tz, *dataDir, calc)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildCalculator starts from the embedded table and overlays live
// LiteLLM prices when reachable. A failed fetch is not fatal.
func buildCalculator(cfg config.Config, offline bool) (*pricing.Calculator, error) {
	table, err := pricing.LoadDefault()
	if err != nil {
		return nil, err
	}
	if !offline {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if fetched, err := pricing.FetchLiteLLM(ctx); err == nil {
			table.Merge(fetched)
		}
	}
	return pricing.NewCalculator(table, pricing.CostMode(cfg.General.CostMode)), nil
}

func runNoTUI(cfg config.Config, tz *time.Location, calc *pricing.Calculator, dataDir, view, since, until string) {
	mon := monitor.New(monitor.Options{
		Root:     dataDir,
		Timezone: tz,
		Blocks:   cfg.BlockOptions(),
	}, calc)

	if err := mon.Refresh(monitor.ReasonStartup); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	snap := mon.Snapshot()

	records, err := domain.FilterByTimeRange(snap.AllRecords, since, until, tz)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date filter: %v\n", err)
		os.Exit(1)
	}

	var data any
	switch view {
	case "daily":
		data = domain.Aggregate(records, tz).ByDate
	case "monthly":
		y, m, _ := time.Now().In(tz).Date()
		data = domain.AggregateMonthly(records, tz, y, m)
	case "blocks":
		data = domain.BuildBlocks(records, time.Now(), cfg.BlockOptions())
	case "stats":
		data = domain.Aggregate(records, tz)
	default:
		fmt.Fprintf(os.Stderr, "Unknown view: %s (use daily, monthly, blocks or stats)\n", view)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".claude", "projects")
	}
	return filepath.Join(home, ".claude", "projects")
}
