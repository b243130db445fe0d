package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"securiwatch/internal/collect"
	"securiwatch/internal/config"
	"securiwatch/internal/dashboard"
	"securiwatch/internal/metrics"
	"securiwatch/internal/pipeline"
	"securiwatch/internal/report"
	"securiwatch/internal/risk"
	"securiwatch/internal/store"
	"securiwatch/internal/types"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "collect":
		collectCommand(os.Args[2:])
	case "stats":
		statsCommand(os.Args[2:])
	case "serve":
		serveCommand(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: securiwatch <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  collect   Read the auth log once, print a summary, optionally export/save")
	fmt.Println("  stats     Print statistics from the event database")
	fmt.Println("  serve     Collect periodically and expose the dashboard API")
}

func loadConfig(path string) *types.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// readSource fetches the most recent batch of raw lines from the auth log
func readSource(ctx context.Context, cfg *types.Config) ([]string, error) {
	if cfg.Input.UseSudo {
		return collect.LastLines(ctx, cfg.Input.AuthLogPath, cfg.Input.Lines, true)
	}
	return collect.ReadFile(cfg.Input.AuthLogPath, cfg.Input.Lines)
}

func collectCommand(args []string) {
	fs := flag.NewFlagSet("collect", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	lines := fs.Int("lines", 0, "Override number of lines to read")
	jsonPath := fs.String("json", "", "Write the parsed events to this JSON file")
	save := fs.Bool("save", false, "Save the parsed events to the database")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	if *lines > 0 {
		cfg.Input.Lines = *lines
	}
	if *jsonPath != "" {
		cfg.Output.JSONPath = *jsonPath
	}
	if *save {
		cfg.Storage.Enabled = true
	}

	fmt.Printf("Collecting last %d lines of %s...\n\n", cfg.Input.Lines, cfg.Input.AuthLogPath)

	rawLines, err := readSource(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to read log source: %v", err)
	}

	p := pipeline.New(cfg.Pipeline.Workers)
	events := p.Run(rawLines, time.Now())
	fmt.Printf("Parsed %d of %d lines\n\n", len(events), len(rawLines))

	report.PrintSummary(os.Stdout, pipeline.Summarize(events))

	if cfg.Output.JSONPath != "" {
		if err := report.WriteJSON(cfg.Output.JSONPath, events); err != nil {
			log.Fatalf("Failed to export JSON: %v", err)
		}
		fmt.Printf("\nEvents exported to %s\n", cfg.Output.JSONPath)
	}

	if cfg.Storage.Enabled {
		st, err := store.NewStore(cfg.Storage.DBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer st.Close()

		saved, err := st.SaveAll(events)
		if err != nil {
			log.Fatalf("Failed to save events: %v", err)
		}
		fmt.Printf("\n%d events saved to %s\n", saved, cfg.Storage.DBPath)
	}
}

func statsCommand(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	cfg := loadConfig(*configPath)

	st, err := store.NewStore(cfg.Storage.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	rep, err := st.Stats()
	if err != nil {
		log.Fatalf("Failed to compute statistics: %v", err)
	}

	report.PrintSummary(os.Stdout, rep)
}

func serveCommand(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "/etc/securiwatch/config.yml", "Path to config file")
	fs.Parse(args)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Println("Starting securiwatch...")
	fmt.Printf("Monitoring: %s (every %s)\n", cfg.Input.AuthLogPath, cfg.PollInterval())

	st, err := store.NewStore(cfg.Storage.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	if cfg.Metrics.Enabled {
		go func() {
			log.Printf("[METRICS] Starting on %s", cfg.Metrics.Addr)
			if err := metrics.StartServer(cfg.Metrics.Addr); err != nil {
				log.Printf("[METRICS] Failed to start: %v", err)
			}
		}()
	}

	if cfg.Dashboard.Enabled {
		srv := dashboard.NewServer(st, cfg.Dashboard.Port)
		go func() {
			if err := srv.Start(); err != nil {
				log.Printf("[DASHBOARD] Failed to start: %v", err)
			}
		}()
	}

	p := pipeline.New(cfg.Pipeline.Workers)
	collectOnce(p, cfg, st)

	ticker := time.NewTicker(cfg.PollInterval())
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for {
		select {
		case <-ticker.C:
			collectOnce(p, cfg, st)
		case sig := <-sigChan:
			if sig == syscall.SIGHUP {
				log.Println("[CONFIG] SIGHUP received, reloading configuration...")
				newCfg, err := config.LoadConfig(*configPath)
				if err != nil {
					log.Printf("[CONFIG] Reload failed: %v", err)
					continue
				}
				if newCfg.PollInterval() != cfg.PollInterval() {
					ticker.Reset(newCfg.PollInterval())
				}
				cfg = newCfg
				metrics.ConfigReloads.Inc()
				log.Println("[CONFIG] Reload successful")
				continue
			}
			fmt.Println("\nShutting down...")
			return
		}
	}
}

// collectOnce runs one batch through the pipeline, records metrics and
// persists the result
func collectOnce(p *pipeline.Pipeline, cfg *types.Config, st *store.Store) {
	rawLines, err := readSource(context.Background(), cfg)
	if err != nil {
		log.Printf("[COLLECT] Failed to read log source: %v", err)
		return
	}

	events := p.Run(rawLines, time.Now())

	metrics.LinesCollected.Add(float64(len(rawLines)))
	metrics.LinesDropped.Add(float64(len(rawLines) - len(events)))
	for _, evt := range events {
		metrics.EventsParsed.WithLabelValues(string(evt.EventType)).Inc()
		if evt.RiskScore >= risk.Threshold {
			metrics.RiskEvents.Inc()
		}
	}

	saved, err := st.SaveAll(events)
	if err != nil {
		log.Printf("[COLLECT] Failed to save events: %v", err)
		return
	}
	log.Printf("[COLLECT] %d of %d lines parsed, %d events saved", len(events), len(rawLines), saved)
}
