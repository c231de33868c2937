package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"searchselect/internal/cache"
	"searchselect/internal/candidates"
	"searchselect/internal/config"
	"searchselect/internal/domain"
	"searchselect/internal/eventbus"
	"searchselect/internal/fetch"
	"searchselect/internal/ui"
)

// Version is set at build time.
var Version = "0.1.0"

type options struct {
	configPath   string
	logFile      string
	uncontrolled bool
	latency      time.Duration
	debounce     time.Duration
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:     "searchselect",
		Short:   "Search-as-you-type candidate picker",
		Long:    "searchselect is a terminal select box over a simulated people directory: it debounces typing, discards stale lookups and renders only the visible rows.",
		Version: Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.logFile, "log-file", "searchselect.log", "file to write logs to")
	flags.BoolVar(&opts.uncontrolled, "uncontrolled", false, "let the select box own its selection instead of the application")
	flags.DurationVar(&opts.latency, "latency", 0, "simulated lookup latency (overrides the config)")
	flags.DurationVar(&opts.debounce, "debounce", 0, "typing debounce interval (overrides the config)")
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts options) error {
	logFile, err := tea.LogToFile(opts.logFile, "searchselect")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New()
	defer bus.Close()
	subscribeLogging(bus)

	configSvc := config.NewConfigServiceWithBus(opts.configPath, bus)
	cfg, err := configSvc.Load()
	switch {
	case errors.Is(err, config.ErrInvalidConfig):
		return err
	case err != nil:
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}

	// Flag overrides apply to this run only and are never written back
	persisted := *cfg
	var mu sync.Mutex
	bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.SelectionChangedEvent)
		if !ok {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		persisted.UI.LastSelection = event.Candidate.Value
		if err := configSvc.Save(&persisted); err != nil {
			log.Printf("Failed to save config: %v", err)
		}
	})

	flags := cmd.Flags()
	if flags.Changed("latency") {
		cfg.Provider.LatencyMs = int(opts.latency / time.Millisecond)
	}
	if flags.Changed("debounce") {
		cfg.Selector.DebounceIntervalMs = int(opts.debounce / time.Millisecond)
	}
	if opts.uncontrolled {
		cfg.UI.Controlled = false
	}
	if err := cfg.Normalize(); err != nil {
		return err
	}

	dir := candidates.NewDirectory(candidates.Options{
		Count:          cfg.Provider.CandidateCount,
		Latency:        cfg.Latency(),
		Limit:          cfg.Provider.ResultLimit,
		FailureKeyword: cfg.Provider.FailureKeyword,
	})
	provider, err := newProvider(dir, cfg.Provider.CacheSize)
	if err != nil {
		return err
	}

	var initial *domain.Candidate
	if v := cfg.UI.LastSelection; v != "" {
		if c, ok := dir.ByValue(v); ok {
			initial = &c
		} else {
			log.Printf("Last selection %q no longer exists", v)
		}
	}

	model := ui.NewModel(bus, cfg, provider, initial)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	model.SetProgram(p)

	log.Printf("Starting UI (controlled=%t, latency=%s)", cfg.UI.Controlled, cfg.Latency())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run program: %w", err)
	}
	model.Selector().Dispose()
	log.Printf("UI exited normally")
	return nil
}

func newProvider(dir *candidates.Directory, cacheSize int) (fetch.Provider[domain.Candidate], error) {
	if cacheSize == 0 {
		return dir, nil
	}
	return cache.New[domain.Candidate](dir, cacheSize)
}

func subscribeLogging(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			if event.Default {
				log.Printf("No config at %s, using defaults", event.Path)
				return
			}
			log.Printf("Loaded config from %s", event.Path)
		}
	})
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigSavedEvent); ok {
			log.Printf("Config saved to %s", event.Path)
		}
	})
	bus.Subscribe(eventbus.EventFetchSettled, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FetchSettledEvent); ok {
			log.Printf("Search %q (generation %d): %d results", event.Query, event.Generation, event.Count)
		}
	})
}
