package tui

import (
	"fmt"
	"os"

	"ethwallet/pkg/config"
	"ethwallet/pkg/rpc"
	"ethwallet/pkg/watcher"

	tea "github.com/charmbracelet/bubbletea"
)

func Start(cache *rpc.ClientCache, w *watcher.Watcher, cfg config.Config, version string) {
	Version = version
	p := tea.NewProgram(
		initialModel(cache, w, cfg),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
