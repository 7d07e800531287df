package tui

import (
	"fmt"
	"strings"

	"ethwallet/pkg/keys"
	"ethwallet/pkg/networks"
	"ethwallet/pkg/utils"

	"github.com/charmbracelet/lipgloss"
)

func (m model) View() string {
	var content string

	switch m.mode {
	case modeWelcome:
		content = m.viewWelcome()
	case modeImportKey:
		content = m.viewImport("Import Private Key")
	case modeImportMnemonic:
		content = m.viewImport("Import Recovery Phrase")
	case modeShowMnemonic:
		content = m.viewShowMnemonic()
	case modeDashboard:
		content = m.viewDashboard()
	case modeSend:
		content = m.viewSend()
	case modeSending:
		content = m.viewSending()
	case modeResult:
		content = m.viewResult()
	}

	if m.statusMessage != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, infoStyle.Render(m.statusMessage))
	}

	if m.width == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m model) viewWelcome() string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("ethwallet %s", Version)),
		"",
		"(c) create a new wallet",
		"(k) import a private key",
		"(m) import a recovery phrase",
		"",
		subtleStyle.Render("(q) quit"),
	))
}

func (m model) viewImport(title string) string {
	var hint string
	value := m.importInput.Value()
	if value != "" {
		valid := false
		if m.mode == modeImportKey {
			valid = keys.IsValidPrivateKey(value)
		} else {
			valid = keys.IsValidMnemonic(value)
		}
		if valid {
			hint = infoStyle.Render("looks valid")
		} else {
			hint = subtleStyle.Render("not valid yet")
		}
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		"",
		m.importInput.View(),
		hint,
		"",
		subtleStyle.Render("(enter) load • (esc) back"),
	))
}

func (m model) viewShowMnemonic() string {
	words := strings.Fields(m.identity.Mnemonic)
	var rows []string
	for i := 0; i < len(words); i += 4 {
		end := i + 4
		if end > len(words) {
			end = len(words)
		}
		var cells []string
		for j := i; j < end; j++ {
			cells = append(cells, fmt.Sprintf("%2d. %-10s", j+1, words[j]))
		}
		rows = append(rows, strings.Join(cells, "  "))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Recovery Phrase"),
		"",
		warnStyle.Render("Write these words down. Anyone holding them controls the wallet."),
		"",
		strings.Join(rows, "\n"),
		"",
		subtleStyle.Render("(y) copy • any other key to continue"),
	))
}

func (m model) viewDashboard() string {
	var tabs []string
	for i, n := range m.networks {
		if i == m.activeNetIdx {
			tabs = append(tabs, activeTabStyle.Render(n.Label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(n.Label))
		}
	}

	active := m.activeNetwork()
	balance := m.balanceLine(active.ID)
	if m.loading {
		balance = m.spinner.View() + " " + balance
	}

	sections := []string{
		titleStyle.Render("Wallet"),
		"",
		fmt.Sprintf("Address  %s", utils.MaskAddress(m.identity.Address)),
		fmt.Sprintf("Network  %s", lipgloss.JoinHorizontal(lipgloss.Top, tabs...)),
		fmt.Sprintf("Balance  %s", balance),
	}
	if snap, ok := m.balances[active.ID]; ok {
		sections = append(sections, subtleStyle.Render(
			fmt.Sprintf("as of %s • raw %s wei", snap.ObservedAt.Format("15:04:05"), utils.AddCommas(snap.RawAmount))))
	}
	if m.showGraph {
		sections = append(sections, "", m.renderHistoryGraph())
	}
	sections = append(sections, "",
		subtleStyle.Render("(s) send • (r) refresh • (g) graph • (c) copy address • (tab) network • (q) quit"))

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m model) viewSend() string {
	active := m.activeNetwork()
	sections := []string{
		titleStyle.Render("Send " + active.Symbol),
		"",
		fmt.Sprintf("From       %s", utils.MaskAddress(m.identity.Address)),
		fmt.Sprintf("Network    %s", active.Label),
		fmt.Sprintf("Recipient  %s", m.sendInputs[0].View()),
		fmt.Sprintf("Amount     %s %s", m.sendInputs[1].View(), active.Symbol),
	}
	if active.ID == networks.Mainnet {
		sections = append(sections, "", warnStyle.Render("Mainnet transfer: this moves real funds."))
	}
	sections = append(sections, "", subtleStyle.Render("(tab) next field • (enter) send • (esc) back"))
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m model) viewSending() string {
	sections := []string{
		titleStyle.Render("Sending"),
		"",
		m.stageChecklist(),
	}
	if hash := m.latestTxHash(); hash != "" {
		sections = append(sections, "", subtleStyle.Render("tx "+utils.TruncateString(hash, 24)))
	}
	if m.transferErr != "" {
		sections = append(sections,
			"",
			errStyle.Render(utils.TruncateString(m.transferErr, 70)),
			"",
			subtleStyle.Render("(enter) back"))
	} else {
		sections = append(sections, "", m.spinner.View()+" waiting for confirmation")
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m model) viewResult() string {
	r := m.result
	if r == nil {
		return ""
	}
	sections := []string{
		titleStyle.Render("Transfer Confirmed"),
		"",
		fmt.Sprintf("Amount     %s %s", r.Amount, m.activeNetwork().Symbol),
		fmt.Sprintf("To         %s", utils.MaskAddress(r.To)),
		fmt.Sprintf("Tx hash    %s", utils.TruncateString(r.TxHash, 32)),
		fmt.Sprintf("Block      %d", r.BlockNumber),
	}
	if r.ExplorerURL != "" {
		sections = append(sections, fmt.Sprintf("Explorer   %s", r.ExplorerURL))
	}
	sections = append(sections, "", subtleStyle.Render("(c) copy hash • (enter) back to wallet"))
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
