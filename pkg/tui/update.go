package tui

import (
	"strings"
	"time"

	"ethwallet/pkg/keys"
	"ethwallet/pkg/models"
	"ethwallet/pkg/networks"
	"ethwallet/pkg/watcher"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case clearStatusMsg:
		m.statusMessage = ""

	case watcher.Event:
		cmds = append(cmds, listenForWatcher(m.sub))
		switch msg.Type {
		case watcher.EventBalanceUpdated:
			if snap, ok := msg.Data.(models.BalanceSnapshot); ok {
				m.loading = false
				m.balances[snap.NetworkID] = snap
				delete(m.balErrs, snap.NetworkID)
			}
		case watcher.EventBalanceError:
			if data, ok := msg.Data.(map[string]interface{}); ok {
				m.loading = false
				if id, ok := data["networkId"].(networks.ID); ok {
					if errStr, ok := data["error"].(string); ok {
						m.balErrs[id] = errStr
					}
				}
			}
		}

	case progressMsg:
		m.progress = append(m.progress, models.ProgressEvent(msg))
		cmds = append(cmds, listenForProgress(m.progressCh))

	case transferDoneMsg:
		if msg.err != nil {
			m.transferErr = msg.err.Error()
			m.mode = modeSending // stays on the progress screen with the error shown
		} else {
			m.result = msg.result
			m.transferErr = ""
			m.mode = modeResult
			m.watcher.RefreshNow()
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeWelcome:
		return m.handleWelcomeKey(msg)
	case modeImportKey, modeImportMnemonic:
		return m.handleImportKey(msg)
	case modeShowMnemonic:
		return m.handleShowMnemonicKey(msg)
	case modeDashboard:
		return m.handleDashboardKey(msg)
	case modeSend:
		return m.handleSendKey(msg)
	case modeSending:
		return m.handleSendingKey(msg)
	case modeResult:
		return m.handleResultKey(msg)
	}
	return m, nil
}

func (m model) handleWelcomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "c":
		id, err := keys.Create()
		if err != nil {
			m.statusMessage = err.Error()
			return m, clearStatusAfter(3 * time.Second)
		}
		m.loadIdentity(id)
		m.mode = modeShowMnemonic
	case "k":
		m.mode = modeImportKey
		m.importInput.SetValue("")
		m.importInput.Placeholder = "private key hex, with or without 0x"
		m.importInput.EchoMode = textinput.EchoPassword
		m.importInput.Focus()
	case "m":
		m.mode = modeImportMnemonic
		m.importInput.SetValue("")
		m.importInput.Placeholder = "12-word recovery phrase"
		m.importInput.EchoMode = textinput.EchoNormal
		m.importInput.Focus()
	}
	return m, nil
}

func (m model) handleImportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeWelcome
		m.importInput.Blur()
		return m, nil
	case "enter":
		var id models.Identity
		var err error
		if m.mode == modeImportKey {
			id, err = keys.FromPrivateKey(m.importInput.Value())
		} else {
			id, err = keys.FromMnemonic(m.importInput.Value())
		}
		if err != nil {
			m.statusMessage = err.Error()
			return m, clearStatusAfter(3 * time.Second)
		}
		m.importInput.SetValue("")
		m.importInput.Blur()
		m.loadIdentity(id)
		m.mode = modeDashboard
		return m, nil
	}
	var cmd tea.Cmd
	m.importInput, cmd = m.importInput.Update(msg)
	return m, cmd
}

func (m model) handleShowMnemonicKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "y":
		if err := clipboard.WriteAll(m.identity.Mnemonic); err == nil {
			m.statusMessage = "Recovery phrase copied to clipboard"
		}
		return m, clearStatusAfter(2 * time.Second)
	default:
		m.mode = modeDashboard
	}
	return m, nil
}

func (m model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "right", "l":
		m.activeNetIdx = (m.activeNetIdx + 1) % len(m.networks)
	case "left", "h":
		m.activeNetIdx = (m.activeNetIdx - 1 + len(m.networks)) % len(m.networks)
	case "r":
		m.loading = true
		m.watcher.RefreshNow()
	case "g":
		m.showGraph = !m.showGraph
	case "c":
		if err := clipboard.WriteAll(m.identity.Address); err == nil {
			m.statusMessage = "Address copied to clipboard"
		} else {
			m.statusMessage = "Clipboard unavailable"
		}
		return m, clearStatusAfter(2 * time.Second)
	case "s":
		m.mode = modeSend
		m.sendFocus = 0
		m.sendInputs[0].SetValue("")
		m.sendInputs[1].SetValue("")
		m.sendInputs[0].Focus()
		m.sendInputs[1].Blur()
	}
	return m, nil
}

func (m model) handleSendKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeDashboard
		return m, nil
	case "tab", "shift+tab":
		m.sendInputs[m.sendFocus].Blur()
		m.sendFocus = (m.sendFocus + 1) % len(m.sendInputs)
		m.sendInputs[m.sendFocus].Focus()
		return m, nil
	case "enter":
		if m.sendFocus < len(m.sendInputs)-1 {
			m.sendInputs[m.sendFocus].Blur()
			m.sendFocus++
			m.sendInputs[m.sendFocus].Focus()
			return m, nil
		}
		req := models.TransferRequest{
			PrivateKeyHex: m.identity.PrivateKeyHex,
			Recipient:     strings.TrimSpace(m.sendInputs[0].Value()),
			Amount:        strings.TrimSpace(m.sendInputs[1].Value()),
			NetworkID:     m.activeNetwork().ID,
		}
		m.mode = modeSending
		m.progress = nil
		m.transferErr = ""
		m.progressCh = make(chan models.ProgressEvent, 8)
		return m, tea.Batch(
			startTransfer(m.cache, m.watcher, req, m.progressCh),
			listenForProgress(m.progressCh),
		)
	}
	var cmd tea.Cmd
	m.sendInputs[m.sendFocus], cmd = m.sendInputs[m.sendFocus].Update(msg)
	return m, cmd
}

func (m model) handleSendingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		// Quitting abandons the confirmation wait, not the broadcast.
		return m, tea.Quit
	case "esc", "enter":
		if m.transferErr != "" {
			m.mode = modeSend
		}
	}
	return m, nil
}

func (m model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "c":
		if m.result != nil {
			if err := clipboard.WriteAll(m.result.TxHash); err == nil {
				m.statusMessage = "Transaction hash copied"
			}
		}
		return m, clearStatusAfter(2 * time.Second)
	case "enter", "esc":
		m.result = nil
		m.mode = modeDashboard
	}
	return m, nil
}
