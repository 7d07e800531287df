package tui

import (
	"context"
	"fmt"
	"strings"

	"ethwallet/pkg/models"
	"ethwallet/pkg/networks"
	"ethwallet/pkg/rpc"
	"ethwallet/pkg/utils"
	"ethwallet/pkg/watcher"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
)

func listenForWatcher(sub watcher.Subscriber) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// listenForProgress relays one transfer stage event onto the message loop.
// Returns nil once the transfer goroutine closes the channel.
func listenForProgress(ch chan models.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return progressMsg(ev)
	}
}

// startTransfer runs the send in its own goroutine. Stage callbacks feed the
// buffered channel drained by listenForProgress, preserving their order, and
// are mirrored onto the watcher bus for websocket clients.
func startTransfer(cache *rpc.ClientCache, w *watcher.Watcher, req models.TransferRequest, ch chan models.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		result, err := rpc.SendNativeTransfer(context.Background(), cache, req, func(ev models.ProgressEvent) {
			ch <- ev
			w.Publish(watcher.Event{Type: watcher.EventTransferProgress, Data: ev})
		})
		close(ch)
		if err == nil {
			w.Publish(watcher.Event{Type: watcher.EventTransferConfirmed, Data: result})
		}
		return transferDoneMsg{result: result, err: err}
	}
}

// loadIdentity installs a wallet into the session and points the watcher at
// its address.
func (m *model) loadIdentity(id models.Identity) {
	m.identity = id
	m.balances = make(map[networks.ID]models.BalanceSnapshot)
	m.balErrs = make(map[networks.ID]string)
	m.loading = true
	m.watcher.SetAddress(id.Address)
	m.watcher.RefreshNow()
}

func (m model) balanceLine(id networks.ID) string {
	if msg, ok := m.balErrs[id]; ok {
		return errStyle.Render("error: " + utils.TruncateString(msg, 60))
	}
	snap, ok := m.balances[id]
	if !ok {
		return subtleStyle.Render("loading...")
	}
	return fmt.Sprintf("%s %s", utils.AddCommas(snap.Formatted), snap.Symbol)
}

func (m model) renderHistoryGraph() string {
	series := m.watcher.History(m.activeNetwork().ID)
	if len(series) < 2 {
		return subtleStyle.Render("waiting for more samples...")
	}
	width := m.width - 20
	if width < 20 {
		width = 20
	}
	if len(series) > width {
		series = series[len(series)-width:]
	}
	return asciigraph.Plot(series, asciigraph.Height(8), asciigraph.Caption("balance over time"))
}

func (m model) stageChecklist() string {
	stages := []models.Stage{models.StageSigning, models.StageBroadcasted, models.StageConfirming}
	var lines []string
	for _, stage := range stages {
		mark := subtleStyle.Render("[ ]")
		for _, ev := range m.progress {
			if ev.Stage == stage {
				mark = infoStyle.Render("[x]")
				break
			}
		}
		lines = append(lines, fmt.Sprintf("%s %s", mark, stage))
	}
	return strings.Join(lines, "\n")
}

func (m model) latestTxHash() string {
	for i := len(m.progress) - 1; i >= 0; i-- {
		if m.progress[i].TxHash != "" {
			return m.progress[i].TxHash
		}
	}
	return ""
}
