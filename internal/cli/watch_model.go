package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/steril/internal/cli/formatter"
	"github.com/alexanderramin/steril/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const maxWatchBarWidth = 60

// watchSource is the slice of the sterilization service the countdown view
// needs.
type watchSource interface {
	Resume(ctx context.Context, owner string) (*domain.Session, error)
	Current(owner string) (*domain.Session, bool)
	Stop(ctx context.Context, owner, sessionID string) (*domain.Session, error)
}

type watchKeyMap struct {
	Stop key.Binding
	Quit key.Binding
}

func defaultWatchKeys() watchKeyMap {
	return watchKeyMap{
		Stop: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "hentikan")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "keluar")),
	}
}

// ShortHelp lists the bindings shown under the countdown.
func (k watchKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Stop, k.Quit} }

type watchTickMsg time.Time

// watchRefreshMsg carries the session as re-read after a tick. session is
// nil once the owner's countdown is gone.
type watchRefreshMsg struct {
	session *domain.Session
	err     error
}

type watchStoppedMsg struct {
	session *domain.Session
	err     error
}

// watchModel renders the live countdown of one session. Time is only read
// from the injected clock. Every tick re-reads the session through Resume, so
// a completion or a stop made by another process shows up here.
type watchModel struct {
	source   watchSource
	owner    string
	now      func() time.Time
	interval time.Duration

	session domain.Session
	bar     progress.Model
	keys    watchKeyMap

	// detached is set when the operator left the view without stopping.
	detached bool
	err      error
}

func newWatchModel(source watchSource, owner string, sess domain.Session, now func() time.Time, interval time.Duration) watchModel {
	if interval <= 0 {
		interval = time.Second
	}
	bar := progress.New(
		progress.WithGradient(string(formatter.ColorYellow), string(formatter.ColorGreen)),
		progress.WithoutPercentage(),
	)
	return watchModel{
		source:   source,
		owner:    owner,
		now:      now,
		interval: interval,
		session:  sess,
		bar:      bar,
		keys:     defaultWatchKeys(),
	}
}

func (m watchModel) Init() tea.Cmd {
	return m.tick()
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return watchTickMsg(t) })
}

func (m watchModel) refresh() tea.Cmd {
	source, owner := m.source, m.owner
	return func() tea.Msg {
		if _, err := source.Resume(context.Background(), owner); err != nil {
			return watchRefreshMsg{err: err}
		}
		snap, ok := source.Current(owner)
		if !ok {
			return watchRefreshMsg{}
		}
		return watchRefreshMsg{session: snap}
	}
}

func (m watchModel) stop() tea.Cmd {
	source, owner, id := m.source, m.owner, m.session.ID
	return func() tea.Msg {
		sess, err := source.Stop(context.Background(), owner, id)
		return watchStoppedMsg{session: sess, err: err}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-4, 10), maxWatchBarWidth)
		return m, nil

	case watchTickMsg:
		return m, m.refresh()

	case watchRefreshMsg:
		switch {
		case msg.err != nil:
			m.err = msg.err
			return m, tea.Quit
		case msg.session == nil:
			return m, tea.Quit
		case msg.session.ID == m.session.ID:
			m.session = *msg.session
		}
		if m.session.Status.IsTerminal() {
			return m, tea.Quit
		}
		return m, m.tick()

	case watchStoppedMsg:
		if msg.session != nil && msg.session.ID == m.session.ID {
			m.session = *msg.session
		}
		if msg.err != nil && !errors.Is(msg.err, domain.ErrNotRunning) {
			m.err = msg.err
		}
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Stop):
			if m.session.Status == domain.StatusProcessing {
				return m, m.stop()
			}
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			m.detached = m.session.Status == domain.StatusProcessing
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	now := m.now()
	var b strings.Builder

	b.WriteString(formatter.Bold(formatter.FoodTitle(m.session.Label)) + "  " + formatter.StatusPill(m.session.Status) + "\n\n")
	b.WriteString(m.bar.ViewAs(m.session.ProgressPercent(now)/100) + "\n")
	b.WriteString(formatter.StatusStyle(m.session.Status).Render(m.session.RemainingLabel(now)) + "\n")
	if m.err != nil {
		b.WriteString("\n" + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}

	help := make([]string, 0, 2)
	for _, kb := range m.keys.ShortHelp() {
		h := kb.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString("\n" + formatter.Dim(strings.Join(help, " · ")))
	return b.String()
}
