package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Hummusful/kitzer/internal/browser"
	"github.com/Hummusful/kitzer/internal/config"
	"github.com/Hummusful/kitzer/internal/feed"
	"github.com/Hummusful/kitzer/internal/genre"
	"github.com/Hummusful/kitzer/internal/sanitize"
	"github.com/Hummusful/kitzer/internal/session"
)

type mode int

const (
	modeLoading mode = iota
	modeReady
	modeError
)

// batchInterval paces chunked rendering so large result sets appear in
// waves instead of one long repaint.
const batchInterval = 16 * time.Millisecond

type App struct {
	cfg    *config.Config
	sess   *session.Session
	filter genre.Filter
	mode   mode

	items   []feed.Item
	visible int
	cursor  int

	width  int
	height int

	spinner spinner.Model

	// State
	busy      bool
	reqSeq    int64
	fromCache bool
	force     bool
	debug     bool
	diag      map[string]any
	rungs     []feed.RungSummary
	srcErrs   []error
	err       error
	now       func() time.Time
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg    *config.Config
	Sess   *session.Session
	Filter genre.Filter
	Debug  bool
	// Force makes the first load bypass the cache.
	Force bool
}

func NewApp(opts RunOpts) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		cfg:     opts.Cfg,
		sess:    opts.Sess,
		filter:  opts.Filter,
		debug:   opts.Debug,
		force:   opts.Force,
		mode:    modeLoading,
		spinner: sp,
		now:     time.Now,
	}
}

func (a *App) Init() tea.Cmd {
	force := a.force
	a.force = false
	return tea.Batch(a.loadCmd(force), a.spinner.Tick)
}

// loadCmd captures the current filter into the closure and tags the request
// with a fresh sequence number. A result carrying a superseded number is
// dropped in Update, so slow responses can never overwrite a newer filter's
// feed.
func (a *App) loadCmd(force bool) tea.Cmd {
	seq := a.sess.NextSeq()
	a.reqSeq = seq
	a.busy = true

	sess := a.sess
	f := a.filter
	return func() tea.Msg {
		// Each outbound request carries its own timeout; no outer deadline
		// here so the release fallback ladder can walk all its rungs.
		res, err := sess.Load(context.Background(), f, force)
		if err != nil {
			return loadErrMsg{seq: seq, err: err}
		}
		return loadedMsg{seq: seq, res: res}
	}
}

func (a *App) batchCmd(seq int64) tea.Cmd {
	return tea.Tick(batchInterval, func(time.Time) tea.Msg {
		return batchMsg{seq: seq}
	})
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return loadErrMsg{seq: -1, err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear a sticky warning on any keypress
		if a.mode == modeReady {
			a.err = nil
		}
		return a.handleKey(msg)

	case loadedMsg:
		if msg.seq != a.reqSeq {
			return a, nil
		}
		a.busy = false
		a.mode = modeReady
		a.err = nil
		a.items = msg.res.Items
		if limit := a.cfg.RenderLimit(); len(a.items) > limit {
			a.items = a.items[:limit]
		}
		a.visible = 0
		a.cursor = 0
		a.fromCache = msg.res.FromCache
		a.diag = msg.res.Diag
		a.rungs = msg.res.Rungs
		a.srcErrs = msg.res.SourceErrors
		return a, a.batchCmd(msg.seq)

	case loadErrMsg:
		// seq < 0 marks out-of-band failures (browser open); they must not
		// touch the load state of an in-flight fetch.
		if msg.seq >= 0 {
			if msg.seq != a.reqSeq {
				return a, nil
			}
			a.busy = false
			a.mode = modeError
		}
		a.err = msg.err
		return a, nil

	case batchMsg:
		if msg.seq != a.reqSeq {
			return a, nil
		}
		a.visible += a.cfg.RenderBatch()
		if a.visible >= len(a.items) {
			a.visible = len(a.items)
			return a, nil
		}
		return a, a.batchCmd(msg.seq)

	case spinner.TickMsg:
		if a.busy {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit
	case "d":
		a.debug = !a.debug
		if a.sess != nil {
			a.sess.SetDiagnostics(a.debug)
		}
		return a, nil
	case "r":
		if a.busy {
			return a, nil
		}
		a.mode = modeLoading
		return a, tea.Batch(a.loadCmd(true), a.spinner.Tick)
	case "1", "2", "3", "4":
		g, ok := genreForKey(msg.String())
		if !ok || g == a.filter.Genre {
			return a, nil
		}
		a.filter.Genre = g
		a.mode = modeLoading
		return a, tea.Batch(a.loadCmd(false), a.spinner.Tick)
	case "j", "down":
		if a.cursor < a.visible-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "o", "enter":
		if a.cursor < len(a.items) && a.items[a.cursor].Link != "" {
			return a, openBrowserCmd(a.items[a.cursor].Link)
		}
		return a, nil
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  kitzer")
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(renderTabs(a.filter.Genre))
	b.WriteString("\n\n")

	switch {
	case a.busy && len(a.items) == 0:
		b.WriteString(a.spinner.View() + " loading the latest music news...")
	case a.mode == modeError:
		b.WriteString(errorStateStyle.Render(fmt.Sprintf("could not load the feed: %v\n\npress r to retry, q to quit", a.err)))
	case len(a.items) == 0:
		b.WriteString(emptyStateStyle.Render("no stories match this filter right now.\npress r to refresh or 1-4 to switch genres."))
	default:
		b.WriteString(a.renderFeed())
	}

	if a.err != nil && a.mode == modeReady {
		b.WriteString("\n")
		b.WriteString(errorStateStyle.Render(fmt.Sprintf("warn: %v", a.err)))
	}

	b.WriteString("\n")
	b.WriteString(renderStatusBar(a.visible, len(a.items), a.filter, a.fromCache, a.width))
	if a.debug {
		b.WriteString("\n")
		b.WriteString(a.renderDebugFooter())
	}
	return b.String()
}

func (a *App) renderHeader() string {
	title := headerStyle.Render("kitzer · music news")
	date := headerDateStyle.Render(a.now().Format("Mon, 2 Jan"))
	pad := a.width - lipgloss.Width(title) - lipgloss.Width(date) - 1
	if pad < 1 {
		pad = 1
	}
	return title + strings.Repeat(" ", pad) + date
}

func (a *App) renderFeed() string {
	cardWidth := a.width - 2
	if cardWidth > 100 {
		cardWidth = 100
	}

	now := a.now()
	var cards []string
	for i := 0; i < a.visible && i < len(a.items); i++ {
		cards = append(cards, renderCard(a.items[i], i == a.cursor, cardWidth, now))
	}
	if a.visible < len(a.items) {
		cards = append(cards, dateLabelStyle.Render(fmt.Sprintf("  ... %d more", len(a.items)-a.visible)))
	}
	return strings.Join(cards, "\n")
}

// renderDebugFooter echoes the raw server diagnostics and fallback trail.
// The payload is escaped before display since it can carry arbitrary text
// from upstream.
func (a *App) renderDebugFooter() string {
	var parts []string
	if a.diag != nil {
		raw, err := json.Marshal(a.diag)
		if err == nil {
			parts = append(parts, "diag: "+sanitize.EscapeText(string(raw)))
		}
	}
	for _, r := range a.rungs {
		parts = append(parts, "rung: "+r.String())
	}
	for _, e := range a.srcErrs {
		parts = append(parts, "source: "+sanitize.EscapeText(e.Error()))
	}
	if len(parts) == 0 {
		parts = append(parts, "no diagnostics")
	}
	return debugFooterStyle.Width(a.width).Render(strings.Join(parts, "\n"))
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
