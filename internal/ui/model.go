package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Logical-Byte/endfield-essence-recognizer/internal/locale"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/logtail"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/polling"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/staticdata"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/update"
)

const maxProblemLines = 5

// Options configures the UI.
type Options struct {
	Context context.Context
	Polling *polling.Controller
	Static  *staticdata.Cache
	Updates *update.Checker
	Locale  *locale.Store
	Logger  *zap.Logger
	LogPath string        // client log shown as diagnostics; empty disables
	Refresh time.Duration // diagnostics refresh; zero uses 2s
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx     context.Context
	polling *polling.Controller
	static  *staticdata.Cache
	updates *update.Checker
	locale  *locale.Store
	logger  *zap.Logger
	logPath string
	refresh time.Duration

	styles  Styles
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	width   int

	busy     bool
	data     *staticdata.Dataset
	result   update.Result
	language locale.Code
	enabled  bool
	problems []string

	// lastErr is the most recent action failure shown in the footer.
	lastErr error
}

type pollingToggledMsg struct {
	enabled bool
	err     error
}

type loadDoneMsg struct{ err error }

type actionErrMsg struct{ err error }

type tickMsg time.Time

type problemsMsg []string

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = 2 * time.Second
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	theme := nightfoxTheme()
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Info))

	return Model{
		ctx:      ctx,
		polling:  opts.Polling,
		static:   opts.Static,
		updates:  opts.Updates,
		locale:   opts.Locale,
		logger:   logger,
		logPath:  opts.LogPath,
		refresh:  refresh,
		styles:   theme.Styles(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		language: opts.Locale.Current(),
		enabled:  opts.Polling.Enabled(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.watchBusy(nil),
		m.watchDataset(nil),
		m.watchResult(nil),
		m.watchLanguage(nil),
		m.spinner.Tick,
		m.loadCmd(false),
		m.checkCmd(false),
		m.readProblemsCmd(),
		tickCmd(m.refresh),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case busyMsg:
		m.busy = msg.busy
		return m, m.watchBusy(msg.changed)

	case datasetMsg:
		m.data = msg.data
		return m, m.watchDataset(msg.changed)

	case resultMsg:
		m.result = msg.result
		return m, m.watchResult(msg.changed)

	case languageMsg:
		m.language = msg.code
		return m, m.watchLanguage(msg.changed)

	case pollingToggledMsg:
		m.enabled = msg.enabled
		m.lastErr = msg.err
		return m, nil

	case loadDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, staticdata.ErrSuperseded) {
			m.lastErr = msg.err
		}
		return m, nil

	case actionErrMsg:
		m.lastErr = msg.err
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.readProblemsCmd(), tickCmd(m.refresh))

	case problemsMsg:
		m.problems = msg
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.TogglePolling):
		return m, m.togglePollingCmd(!m.enabled)
	case key.Matches(msg, m.keys.CheckUpdates):
		return m, m.checkCmd(true)
	case key.Matches(msg, m.keys.Reload):
		return m, m.loadCmd(true)
	case key.Matches(msg, m.keys.CycleLanguage):
		return m, m.setLanguageCmd(m.language.Next())
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	return renderScreen(screen{
		styles:   m.styles,
		language: m.language,
		enabled:  m.enabled,
		busy:     m.busy,
		subs:     m.polling.Subscribers(),
		data:     m.data,
		result:   m.result,
		spinner:  m.spinner.View(),
		problems: m.problems,
		err:      m.lastErr,
		help:     m.help.View(m.keys),
	})
}

func (m Model) togglePollingCmd(enabled bool) tea.Cmd {
	return func() tea.Msg {
		err := m.polling.SetEnabled(m.ctx, enabled)
		return pollingToggledMsg{enabled: m.polling.Enabled(), err: err}
	}
}

func (m Model) checkCmd(notifyIfLatest bool) tea.Cmd {
	return func() tea.Msg {
		m.updates.Check(m.ctx, notifyIfLatest)
		return nil
	}
}

func (m Model) loadCmd(invalidate bool) tea.Cmd {
	return func() tea.Msg {
		if invalidate {
			m.static.Invalidate()
		}
		return loadDoneMsg{err: m.static.Load(m.ctx)}
	}
}

func (m Model) setLanguageCmd(code locale.Code) tea.Cmd {
	return func() tea.Msg {
		if err := m.locale.Set(m.ctx, code); err != nil {
			return actionErrMsg{err: err}
		}
		return nil
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) readProblemsCmd() tea.Cmd {
	if m.logPath == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Tail(m.logPath, maxProblemLines, logtail.IsProblem)
		if err != nil {
			return problemsMsg{"diagnostics unavailable: " + err.Error()}
		}
		return problemsMsg(lines)
	}
}

// Run attaches to the polling controller for the lifetime of the program and
// blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Polling == nil || opts.Static == nil || opts.Updates == nil || opts.Locale == nil {
		return fmt.Errorf("ui requires polling, static data, update and locale components")
	}
	if opts.Context == nil {
		opts.Context = ctx
	}

	opts.Polling.Attach()
	defer opts.Polling.Detach()

	started := time.Now()
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if opts.Logger != nil {
		opts.Logger.Info("ui exited", zap.Duration("uptime", time.Since(started)), zap.Error(err))
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
