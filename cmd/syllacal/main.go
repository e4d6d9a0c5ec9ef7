package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hamza-els/CalHacks/internal/backend"
	"github.com/hamza-els/CalHacks/internal/config"
	"github.com/hamza-els/CalHacks/internal/document"
	"github.com/hamza-els/CalHacks/internal/engine"
	"github.com/hamza-els/CalHacks/internal/engine/structured"
	"github.com/hamza-els/CalHacks/internal/logging"
	"github.com/hamza-els/CalHacks/internal/model"
	"github.com/hamza-els/CalHacks/internal/output"
	"github.com/hamza-els/CalHacks/internal/output/icsfile"
	"github.com/hamza-els/CalHacks/internal/output/multi"
	"github.com/hamza-els/CalHacks/internal/output/stdout"
	"github.com/hamza-els/CalHacks/internal/output/webhook"
	"github.com/hamza-els/CalHacks/internal/pipeline"

	// Register backend implementations.
	_ "github.com/hamza-els/CalHacks/internal/backend/gemini"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (default: environment variables)")
	outFormat := flag.String("output", "", `output format: "stdout", "ics", or "both" (overrides config)`)
	icsPath := flag.String("ics", "", "ICS output path (overrides config)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [document]\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "Extracts calendar events from a syllabus or schedule document.\n")
		fmt.Fprintf(os.Stderr, "Reads the document from the given path, or stdin when omitted.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := loadConfig(*configPath)
	if *outFormat != "" {
		cfg.Output.Format = *outFormat
	}
	if *icsPath != "" {
		cfg.Output.ICSPath = *icsPath
	}
	cfg.Normalize()

	eventsOnStdout := cfg.Output.Format == "stdout" || cfg.Output.Format == "both"
	logging.Init(eventsOnStdout, logging.ParseLevel(cfg.LogLevel))

	doc, err := readDocument(flag.Arg(0))
	if err != nil {
		log.Fatalf("failed to read document: %v", err)
	}

	// Initialize engine. A missing backend is not an error: extraction
	// degrades to heuristic date scanning.
	eng := engine.New(buildStructuredClient(cfg))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	out := buildOutput(ctx, cfg, eng, doc)
	p := pipeline.New(eng, out)

	n, err := p.Run(ctx, doc, time.Now())
	if cerr := p.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatalf("pipeline error: %v", err)
	}
	fmt.Fprintf(os.Stderr, "syllacal: wrote %d events\n", n)
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Load()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		log.Fatalf("failed to load config %s: %v", path, err)
	}
	return cfg
}

// readDocument reads the input file (or stdin when name is empty) and
// detects its kind.
func readDocument(name string) (model.RawDocument, error) {
	if name == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return model.RawDocument{}, err
		}
		return document.Detect("stdin", data)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return model.RawDocument{}, err
	}
	return document.Detect(name, data)
}

func buildStructuredClient(cfg *config.Config) *structured.Client {
	if cfg.Backend == nil {
		return nil
	}
	ctor, err := backend.Get(cfg.Backend.Provider)
	if err != nil {
		log.Fatalf("failed to get backend: %v", err)
	}
	b, err := ctor(backend.Settings{
		APIKey:   cfg.Backend.APIKey,
		Endpoint: cfg.Backend.Endpoint,
	})
	if err != nil {
		log.Fatalf("failed to create backend: %v", err)
	}
	return structured.New(b, cfg.Backend.Models,
		structured.WithAttemptTimeout(cfg.Backend.AttemptTimeout))
}

// buildOutput assembles the output stack from config: stdout and/or an ICS
// file, plus a webhook when a URL is configured.
func buildOutput(ctx context.Context, cfg *config.Config, eng *engine.Engine, doc model.RawDocument) output.Output {
	var outs []output.Output

	if cfg.Output.Format == "stdout" || cfg.Output.Format == "both" {
		outs = append(outs, stdout.New(cfg.Output.Pretty))
	}
	if cfg.Output.Format == "ics" || cfg.Output.Format == "both" {
		outs = append(outs, icsfile.New(cfg.Output.ICSPath,
			icsfile.WithCalendarName(eng.SuggestCalendarName(ctx, doc)),
			icsfile.WithHorizonWeeks(cfg.Extract.HorizonWeeks),
		))
	}
	if cfg.Output.WebhookURL != "" {
		outs = append(outs, webhook.New(cfg.Output.WebhookURL))
	}

	if len(outs) == 1 {
		return outs[0]
	}
	return multi.New(outs...)
}
