package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"expandlist/internal/config"
	"expandlist/internal/dataset"
	"expandlist/internal/domain"
	"expandlist/internal/eventbus"
	"expandlist/internal/host"
	"expandlist/internal/logging"
	"expandlist/internal/ui"
	"expandlist/internal/ui/views"
	"expandlist/internal/watcher"
)

type options struct {
	configPath string
	items      int
	plain      bool
	debug      bool
	logPath    string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to config file")
	flag.StringVar(&opts.configPath, "c", "", "Path to config file (shorthand)")
	flag.IntVar(&opts.items, "items", -1, "Number of parent items (overrides config)")
	flag.BoolVar(&opts.plain, "plain", false, "Print the list and exit")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.StringVar(&opts.logPath, "log", logging.DefaultLogFile, "Log file path")
	flag.Parse()

	logger, logCloser, err := logging.InitLogger(opts.logPath, opts.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		logger = logging.Discard()
	} else {
		defer logCloser.Close()
	}
	slog.SetDefault(logger)

	configSvc := config.NewConfigServiceForPath(opts.configPath)
	cfg := loadConfig(configSvc, opts)

	if opts.plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := printPlain(os.Stdout, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, configSvc, opts); err != nil {
		slog.Error("exiting with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when it is unusable
func loadConfig(svc config.ConfigService, opts options) *config.Config {
	cfg, err := svc.Load()
	if err != nil {
		slog.Warn("config: using defaults", "path", svc.Path(), "error", err)
		cfg = config.DefaultConfig()
	} else {
		slog.Info("config: loaded", "path", svc.Path())
	}
	if opts.items >= 0 {
		cfg.Dataset.Items = opts.items
	}
	return cfg
}

// printPlain writes the initial rows for non-interactive use
func printPlain(w io.Writer, cfg *config.Config) error {
	surface := host.NewSurface(func() []*domain.ParentItem {
		return dataset.Generate(cfg.DatasetOptions())
	}, nil)
	if err := surface.Create(nil); err != nil {
		return err
	}
	defer func() {
		if err := surface.Destroy(); err != nil {
			slog.Warn("plain: destroy surface", "error", err)
		}
	}()

	_, err := fmt.Fprint(w, views.RenderPlain(surface.Rows(), cfg.UI.ShowChildCount))
	return err
}

func run(cfg *config.Config, configSvc config.ConfigService, opts options) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	bus := eventbus.New()
	defer bus.Close()

	model, err := ui.NewModel(bus, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Forward surface notifications into the UI loop in publish order
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	bus.SubscribeOrdered(eventbus.EventParentExpanded, forward)
	bus.SubscribeOrdered(eventbus.EventParentCollapsed, forward)
	bus.SubscribeOrdered(eventbus.EventError, forward)
	bus.Subscribe(eventbus.EventLifecycle, func(e eventbus.DomainEvent) {
		if ev, ok := e.(domain.LifecycleEvent); ok {
			slog.Debug("surface lifecycle", "from", ev.From, "to", ev.To)
		}
	})

	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		event, ok := e.(domain.ConfigChangedEvent)
		if !ok {
			return
		}
		reloaded, err := configSvc.LoadFromPath(event.Path)
		if err != nil {
			slog.Warn("config: reload failed", "path", event.Path, "error", err)
			bus.Publish(domain.ErrorEvent{Message: "Config reload failed", Err: err})
			return
		}
		if opts.items >= 0 {
			reloaded.Dataset.Items = opts.items
		}
		p.Send(ui.ConfigReloadedMsg{Config: reloaded})
	})

	stopWatch := watchConfig(ctx, configSvc.Path(), bus)
	defer stopWatch()

	slog.Info("starting UI", "items", cfg.Dataset.Items)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	slog.Info("UI exited normally")
	return model.Err()
}

// watchConfig publishes a ConfigChangedEvent whenever the config file settles after a change
func watchConfig(ctx context.Context, path string, bus eventbus.EventBus) func() {
	w, err := watcher.NewWatcher(path)
	if err != nil {
		slog.Warn("config: watcher unavailable", "error", err)
		return func() {}
	}
	if err := w.Start(ctx); err != nil {
		slog.Warn("config: watch failed", "path", path, "error", err)
		w.Stop()
		return func() {}
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.Changed():
				slog.Info("config: file changed", "path", w.Path())
				bus.Publish(domain.ConfigChangedEvent{Path: w.Path()})
			}
		}
	}()
	return w.Stop
}
