package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/qrayti/internal/api"
	"github.com/abhisek/qrayti/internal/monitor"
	"github.com/abhisek/qrayti/internal/router"
	"github.com/abhisek/qrayti/internal/screen"
	"github.com/abhisek/qrayti/internal/screens/home"
	"github.com/abhisek/qrayti/internal/screens/welcome"
	"github.com/abhisek/qrayti/internal/summary"
	"github.com/abhisek/qrayti/internal/ui/components"
	"github.com/abhisek/qrayti/internal/ui/layout"
)

// Options holds dependencies for the app.
type Options struct {
	Service      api.Service
	Monitor      *monitor.Monitor
	Clipboard    summary.Clipboard
	Logger       *zap.Logger
	NumQuestions int

	// Demo skips the splash and opens the bundled sample course.
	Demo bool
}

// statusMsg carries the result of one health probe.
type statusMsg monitor.Status

// pollMsg fires when the next scheduled probe is due.
type pollMsg struct{}

// AppModel is the root Bubble Tea model. It owns backend polling so that
// readiness stays current whatever screen is on top.
type AppModel struct {
	router  *router.Router
	monitor *monitor.Monitor
	logger  *zap.Logger
	width   int
	height  int

	ctx         context.Context
	cancel      context.CancelFunc
	pollPending bool
}

// newAppModel creates a new AppModel with the welcome screen, or the home
// screen directly in demo mode.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	newHome := func() screen.Screen {
		return home.New(home.Deps{
			Service:      opts.Service,
			Monitor:      opts.Monitor,
			Clipboard:    opts.Clipboard,
			Logger:       opts.Logger,
			NumQuestions: opts.NumQuestions,
			Demo:         opts.Demo,
		})
	}

	var root screen.Screen
	if opts.Demo {
		root = newHome()
	} else {
		root = welcome.New(newHome)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return AppModel{
		router:  router.New(root),
		monitor: opts.Monitor,
		logger:  opts.Logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.probe())
}

// probe runs one health check off the UI goroutine.
func (m AppModel) probe() tea.Cmd {
	if m.monitor == nil {
		return nil
	}
	mon, ctx := m.monitor, m.ctx
	return func() tea.Msg {
		return statusMsg(mon.Probe(ctx))
	}
}

// handleStatus keeps polling until the backend is ready. Only one poll
// tick is outstanding at a time, so manual checks do not stack loops.
func (m AppModel) handleStatus(st monitor.Status) (tea.Model, tea.Cmd) {
	if m.ctx.Err() != nil || st.State == monitor.Ready || m.pollPending {
		return m, nil
	}
	m.pollPending = true
	return m, tea.Tick(m.monitor.Interval(), func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusMsg:
		return m.handleStatus(monitor.Status(msg))

	case pollMsg:
		m.pollPending = false
		return m, m.probe()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.shutdown()
			return m, tea.Quit
		case "ctrl+r":
			return m, m.probe()
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// shutdown cancels polling and every screen's in-flight work.
func (m AppModel) shutdown() {
	m.cancel()
	m.router.CloseAll()
	_ = m.logger.Sync()
}

func (m AppModel) status() monitor.Status {
	if m.monitor == nil {
		return monitor.Status{}
	}
	return m.monitor.Current()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render draws header, active screen and footer at the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, components.StatusBadge(m.status()), m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Retour"},
			{Key: "Ctrl+C", Description: "Quitter"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quitter"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
