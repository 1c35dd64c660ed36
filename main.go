package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/fitlog/internal/ai"
	"github.com/sadopc/fitlog/internal/config"
	"github.com/sadopc/fitlog/internal/session"
	"github.com/sadopc/fitlog/internal/store"
	"github.com/sadopc/fitlog/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	records := store.NewRecords(s)
	rollover := store.NewRollover(records, nil)

	userID := cfg.User
	if userID == "" {
		userID, err = session.UserID(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	coach := ai.NewCoach(ai.NewClient(cfg.AIBaseURL, cfg.GroqAPIKey, cfg.AIModel))

	app := tui.NewApp(records, rollover, coach, userID)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
