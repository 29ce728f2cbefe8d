package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/planboard/planboard/internal/board"
	"github.com/planboard/planboard/internal/config"
	"github.com/planboard/planboard/internal/extract"
	"github.com/planboard/planboard/internal/logging"
	"github.com/planboard/planboard/internal/scan"
	"github.com/planboard/planboard/internal/smartsheet"
	"github.com/planboard/planboard/internal/summary"
	"github.com/planboard/planboard/internal/tui"
	"github.com/planboard/planboard/internal/views"
)

// configPath returns the config file location: $PLANBOARD_CONFIG, else
// ~/.planboard/config.yaml
func configPath() string {
	if p := os.Getenv("PLANBOARD_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "planboard.yaml"
	}
	return filepath.Join(home, ".planboard", "config.yaml")
}

func main() {
	cfg, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "planboard: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Debug, logging.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "planboard: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	client := smartsheet.NewClientWithBaseURL(cfg.AccessToken, cfg.APIBaseURL)
	walker := scan.NewWalker(client, cfg.Keyword, scan.WithLogger(logger))
	extractor := extract.NewExtractor(cfg.Aliases, cfg.InclusionPolicy, logger)

	provider := board.NewSmartsheetProvider(board.ProviderConfig{
		API:       client,
		Walker:    walker,
		Extractor: extractor,
		TTL:       cfg.CacheTTL.Std(),
		Logger:    logger,
	}).Bind(cfg.RootID)

	var summarizer tui.Summarizer
	if cfg.GeminiAPIKey != "" {
		s, err := summary.New(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("summarizer disabled", zap.Error(err))
		} else {
			summarizer = s
		}
	}

	m := tui.NewModel(tui.Config{
		Provider:      provider,
		Summarizer:    summarizer,
		Views:         views.New(cfg.TerminalStatuses),
		LookaheadDays: cfg.LookaheadDays,
		DigestTopN:    cfg.DigestTopN,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
