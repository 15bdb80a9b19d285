// cmd/harvester/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hwcatalog/harvester/internal/config"
	"github.com/hwcatalog/harvester/internal/hardware"
	"github.com/hwcatalog/harvester/internal/logging"
	"github.com/hwcatalog/harvester/internal/monitoring"
	"github.com/hwcatalog/harvester/internal/pipeline"
)

const version = "1.0.0"

const usage = `hardware spec harvester

Usage:
  harvester run <config.yaml> [--category cpu|gpu|phone] [-v]
  harvester validate <config.yaml>
  harvester version
  harvester help

Commands:
  run        harvest the configured sources and persist the datasets
  validate   parse and check a configuration file without running
  version    print the version
  help       print this message

Flags for run:
  --category   harvest a single category instead of all configured ones
  -v           debug logging, overriding the configured level
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runCommand(os.Args[2:]))
	case "validate":
		os.Exit(validateCommand(os.Args[2:]))
	case "version":
		fmt.Println("harvester " + version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
}

func runCommand(args []string) int {
	var (
		configPath string
		category   string
		verbose    bool
	)
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--category":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "--category needs a value")
				return 2
			}
			category = args[i]
		case "-v", "--verbose":
			verbose = true
		default:
			if configPath != "" {
				fmt.Fprintf(os.Stderr, "unexpected argument %q\n", args[i])
				return 2
			}
			configPath = args[i]
		}
	}
	if configPath == "" {
		fmt.Fprintln(os.Stderr, "run needs a configuration file")
		return 2
	}

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if verbose {
		level = logging.DebugLevel
	}
	log := logging.New(level)

	p, err := pipeline.New(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pipeline error: %v\n", err)
		return 1
	}
	defer p.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var status *monitoring.Server
	if cfg.Metrics.Enabled {
		status = monitoring.NewServer(cfg.Metrics.Listen, p.Metrics(), log)
		status.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			status.Shutdown(shutdownCtx)
		}()
	}

	var report pipeline.RunReport
	if category != "" {
		cat := hardware.Category(category)
		if !cat.Valid() {
			fmt.Fprintf(os.Stderr, "unknown category %q\n", category)
			return 2
		}
		if _, ok := cfg.Categories[cat]; !ok {
			fmt.Fprintf(os.Stderr, "category %q is not configured\n", category)
			return 2
		}
		report = pipeline.RunReport{StartedAt: time.Now()}
		report.Categories = append(report.Categories, p.RunCategory(ctx, cat))
		report.FinishedAt = time.Now()
	} else {
		report = p.RunAll(ctx)
	}

	if status != nil {
		status.SetReport(report)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Errorf("failed to print report: %v", err)
	}

	if report.Failed() {
		return 1
	}
	return 0
}

func validateCommand(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "validate needs exactly one configuration file")
		return 2
	}
	cfg, err := config.LoadFromFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration invalid: %v\n", err)
		return 1
	}

	sources := 0
	for _, cc := range cfg.Categories {
		sources += len(cc.Sources)
	}
	fmt.Printf("configuration valid: %d categories, %d sources, %d exports\n",
		len(cfg.Categories), sources, len(cfg.Exports))
	return 0
}
