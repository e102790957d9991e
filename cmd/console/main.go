package main

import (
	tea "charm.land/bubbletea/v2"
	"context"
	"fmt"
	"github.com/ariefcatur/nexus-admin/internal/apiclient"
	"github.com/ariefcatur/nexus-admin/internal/config"
	"github.com/ariefcatur/nexus-admin/internal/tui"
	"github.com/joho/godotenv"
	"net/http"
	"os"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	env, err := config.ResolveEnvironment(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// the terminal belongs to the UI; diagnostics go to a file
	f, err := os.OpenFile(cfg.ConsoleLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open log:", err)
		os.Exit(1)
	}
	defer f.Close()
	log := config.NewLogger(cfg.LogLevel, f)
	log.Info("console starting", "env", env.Name, "base_url", env.BaseURL, "local", env.IsLocal)

	client := apiclient.New(env, &http.Client{}, apiclient.WithTimeout(cfg.APITimeout))
	model := tui.New(context.Background(), client, log)

	if _, err := tea.NewProgram(model).Run(); err != nil {
		log.Error("console exited", "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
