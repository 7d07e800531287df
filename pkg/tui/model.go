package tui

import (
	"time"

	"ethwallet/pkg/config"
	"ethwallet/pkg/models"
	"ethwallet/pkg/networks"
	"ethwallet/pkg/rpc"
	"ethwallet/pkg/watcher"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Version is set by Start()
var Version = "dev"

// --- Messages ---

type clearStatusMsg struct{}
type progressMsg models.ProgressEvent
type transferDoneMsg struct {
	result *models.TransferResult
	err    error
}

// --- Model ---

type mode int

const (
	modeWelcome mode = iota
	modeImportKey
	modeImportMnemonic
	modeShowMnemonic
	modeDashboard
	modeSend
	modeSending
	modeResult
)

type model struct {
	cache   *rpc.ClientCache
	watcher *watcher.Watcher
	sub     watcher.Subscriber
	cfg     config.Config

	networks     []networks.Network
	activeNetIdx int

	mode     mode
	identity models.Identity

	balances  map[networks.ID]models.BalanceSnapshot
	balErrs   map[networks.ID]string
	loading   bool
	showGraph bool

	importInput textinput.Model
	sendInputs  []textinput.Model // recipient, amount
	sendFocus   int

	progress    []models.ProgressEvent
	progressCh  chan models.ProgressEvent
	result      *models.TransferResult
	transferErr string

	spinner       spinner.Model
	statusMessage string
	width         int
	height        int
}

func initialModel(cache *rpc.ClientCache, w *watcher.Watcher, cfg config.Config) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = infoStyle

	importInput := textinput.New()
	importInput.Width = 70

	recipient := textinput.New()
	recipient.Placeholder = "0x..."
	recipient.Width = 48
	amount := textinput.New()
	amount.Placeholder = "0.01"
	amount.Width = 24

	nets := cache.Registry().List()
	activeIdx := 0
	for i, n := range nets {
		if n.ID == cfg.DefaultNetwork {
			activeIdx = i
			break
		}
	}

	return model{
		cache:        cache,
		watcher:      w,
		sub:          w.Subscribe(),
		cfg:          cfg,
		networks:     nets,
		activeNetIdx: activeIdx,
		mode:         modeWelcome,
		balances:     make(map[networks.ID]models.BalanceSnapshot),
		balErrs:      make(map[networks.ID]string),
		importInput:  importInput,
		sendInputs:   []textinput.Model{recipient, amount},
		spinner:      sp,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, listenForWatcher(m.sub))
}

func (m model) activeNetwork() networks.Network {
	return m.networks[m.activeNetIdx]
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
