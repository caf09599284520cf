// Package main is the entry point for the habitchain TUI. It wires
// configuration, the persistence backend, the auth manager, and the
// background refresher into the Bubble Tea program.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"habitchain/internal/app"
	"habitchain/internal/auth"
	"habitchain/internal/backend"
	"habitchain/internal/backend/local"
	"habitchain/internal/backend/rest"
	"habitchain/internal/habits"
	"habitchain/internal/model"
	appsync "habitchain/internal/sync"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error
// handling.
func run() error {
	// .env is optional; environment overrides config file values.
	_ = godotenv.Load()

	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	var (
		store   backend.Backend
		authMgr *auth.Manager
		userID  func() string
	)

	switch cfg.Backend.Mode {
	case "remote":
		if cfg.Backend.URL == "" || cfg.Backend.AnonKey == "" {
			return fmt.Errorf("remote mode needs backend.url and backend.anon_key " +
				"(or HABITCHAIN_URL and HABITCHAIN_ANON_KEY)")
		}
		client := rest.NewClient(cfg.Backend.URL, cfg.Backend.AnonKey)
		store = client
		authMgr = auth.NewManager(client)
		userID = func() string { return authMgr.User().ID }

		// Best effort; a failed restore just shows the sign-in screen.
		restoreCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, _ = authMgr.Restore(restoreCtx)
		cancel()

	case "local":
		s, err := local.New(cfg.Backend.DBPath)
		if err != nil {
			return fmt.Errorf("opening local database: %w", err)
		}
		store = s
		userID = func() string { return local.UserID }

	default:
		return fmt.Errorf("unknown backend mode %q", cfg.Backend.Mode)
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: closing backend: %v\n", closeErr)
		}
	}()

	service := habits.New(store, userID)
	refresher := appsync.New(service,
		time.Duration(cfg.Display.RefreshIntervalSec)*time.Second)

	p := tea.NewProgram(
		app.New(service, refresher, authMgr),
		tea.WithAltScreen(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	refresher.Stop()
	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`habitchain - terminal habit tracker

Usage:
  habitchain [flags]

Flags:
  -h, --help   Show this help message

Keyboard Shortcuts:
  j/k, Up/Down   Navigate lists
  space          Toggle today's completion
  a / e / d      Add / edit / delete habit
  c              Chains view      n  new chain
  s              Stats view       r  refresh
  ?              Toggle help      q  quit

Environment Variables:
  HABITCHAIN_URL       Hosted backend URL (switches to remote mode)
  HABITCHAIN_ANON_KEY  Public API key for the hosted backend

Configuration:
  ~/.config/habitchain/config.yaml
  A .env file in the current directory is loaded if present.`)
}
