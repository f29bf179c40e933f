package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"avaliaccess/internal/api"
	"avaliaccess/internal/auth"
	"avaliaccess/internal/config"
	"avaliaccess/internal/eventbus"
	"avaliaccess/internal/logging"
	"avaliaccess/internal/ui"
	"avaliaccess/internal/ui/screens"
	"avaliaccess/internal/ui/views"
)

func main() {
	// Parse command line arguments
	var configPath, apiURL, envFile string
	flag.StringVar(&configPath, "config", "", "Path to the config file (default: user config dir)")
	flag.StringVar(&apiURL, "api-url", "", "Base URL of the AvaliAccess API")
	flag.StringVar(&envFile, "env", ".env", "Optional dotenv file with AVALIACCESS_* overrides")
	flag.Parse()

	// A missing .env is normal
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Ignoring %s: %v\n", envFile, err)
	}

	configSvc := config.NewConfigService()
	if configPath != "" {
		configSvc = config.NewConfigServiceAt(configPath)
	}
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnv(os.Getenv)
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
	}
	defer closer.Close()
	logger.WithField("api", cfg.APIURL).Info("Starting AvaliAccess")

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New(logger)
	defer bus.Close()

	session, err := auth.NewSession(auth.NewFileStore(cfg.TokenFile), bus)
	if err != nil {
		// an unreadable token file means logged out
		logger.WithError(err).Warn("Could not read stored session")
	}
	client := api.NewClient(cfg.APIURL, session, logger, api.WithTimeout(cfg.Search.RequestTimeout()))

	uiModel := ui.NewModel(screens.Deps{
		API:    client,
		Auth:   auth.NewService(session, client, logger),
		Config: cfg,
		Bus:    bus,
		Logger: logger,
		Styles: views.NewStyles(),
	})

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(uiModel, opts...)
	uiModel.SetProgram(p)

	subscribeUI(bus, p, logger)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.WithError(err).Error("Error running program")
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	logger.Info("UI exited normally")
}

// subscribeUI logs domain events and forwards the ones the UI reacts to
func subscribeUI(bus eventbus.EventBus, p *tea.Program, logger logrus.FieldLogger) {
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventLoggedIn,
		eventbus.EventLoggedOut,
		eventbus.EventEstablishmentCreated,
		eventbus.EventReviewSubmitted,
		eventbus.EventError,
	} {
		bus.Subscribe(t, forward)
	}

	bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.SearchFailedEvent); ok {
			logger.WithError(ev.Err).WithField("seq", ev.Seq).Debug("Suggestion search failed")
		}
	})
	bus.Subscribe(eventbus.EventSuggestionsUpdated, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.SuggestionsUpdatedEvent); ok {
			logger.WithFields(logrus.Fields{"seq": ev.Seq, "count": ev.Count, "total": ev.Total}).Debug("Suggestions updated")
		}
	})
}
