// Package tui provides the Bubble Tea drill interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/valvedrill/internal/drill"
	"github.com/verte-zerg/valvedrill/internal/fingering"
	"github.com/verte-zerg/valvedrill/internal/model"
	statsPkg "github.com/verte-zerg/valvedrill/internal/stats"
	"github.com/verte-zerg/valvedrill/internal/store"
	"github.com/verte-zerg/valvedrill/internal/tone"
)

type tickMsg struct{ gen int }

type resolveMsg struct{ id uint64 }

type nextMsg struct{ id uint64 }

// ValveMsg delivers a valve press from a source other than the keyboard,
// such as a MIDI controller.
type ValveMsg struct {
	Valve fingering.Valve
}

// Model implements the Bubble Tea drill UI.
type Model struct {
	config model.Config
	engine *drill.Engine
	store  *store.Store
	player tone.Player
	keys   keyMap
	help   help.Model
	now    func() time.Time

	round     drill.Round
	session   drill.Session
	tally     drill.Tally
	gen       int
	startedAt time.Time
	newBest   bool
	reveal    bool
	message   string
	notice    string
	results   table.Model

	weakNoticeShown bool

	width  int
	height int
}

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	noteStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	staffStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a drill TUI model and draws the first note.
// A nil store disables persistence and a nil player is silent.
func NewModel(cfg model.Config, engine *drill.Engine, st *store.Store, player tone.Player) *Model {
	if player == nil {
		player = tone.Silent{}
	}
	m := &Model{
		config: cfg,
		engine: engine,
		store:  st,
		player: player,
		keys:   defaultKeyMap(),
		help:   help.New(),
		now:    time.Now,
	}
	m.refreshWeakSet()
	m.startSession()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd(m.gen)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Restart):
			m.refreshWeakSet()
			m.startSession()
			return m, tickCmd(m.gen)
		}
		if v, ok := m.keys.valve(msg); ok {
			return m, m.press(v)
		}
		return m, nil
	case ValveMsg:
		return m, m.press(msg.Valve)
	case tickMsg:
		if msg.gen != m.gen || m.session.Over {
			return m, nil
		}
		m.session = m.session.Tick(time.Second)
		if m.session.Over {
			return m, m.finishSession()
		}
		return m, tickCmd(m.gen)
	case resolveMsg:
		return m, m.resolve(msg.id)
	case nextMsg:
		if m.session.Over || msg.id != m.round.ID {
			return m, nil
		}
		m.nextRound()
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	if m.session.Over {
		content = m.renderResults()
	} else {
		content = m.renderRound()
	}
	helpView := m.help.View(m.keys)
	if m.width == 0 || m.height == 0 {
		return strings.Join([]string{content, m.renderFooter(), helpView}, "\n")
	}
	if m.height < 4 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderFooter())
	helpLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, helpView)
	return body + "\n" + footerLine + "\n" + helpLine
}

func (m *Model) press(v fingering.Valve) tea.Cmd {
	if m.session.Over || m.round.ID == 0 {
		return nil
	}
	round, opened := m.round.Press(v, m.now())
	m.round = round
	if !opened {
		return nil
	}
	return resolveCmd(round.ID, m.captureDelay())
}

func (m *Model) resolve(id uint64) tea.Cmd {
	if m.session.Over {
		return nil
	}
	round, verdict, ok := m.round.Resolve(id)
	if !ok {
		return nil
	}
	m.round = round
	m.session = m.session.Apply(verdict)
	m.tally.Record(round)
	logrus.WithFields(logrus.Fields{
		"pitch":    int(round.Pitch),
		"expected": round.Expected.String(),
		"captured": fingering.Of(round.Captured...).String(),
		"verdict":  verdict.String(),
	}).Debug("round resolved")

	if verdict == drill.Correct {
		return tea.Batch(m.play(tone.Correct(round.Pitch)), nextCmd(round.ID, drill.CorrectPause))
	}
	m.reveal = true
	return tea.Batch(m.play(tone.Incorrect()), nextCmd(round.ID, drill.IncorrectPause))
}

func (m *Model) nextRound() {
	m.reveal = false
	round, err := m.engine.NextRound(m.now())
	if err != nil {
		logrus.WithError(err).Error("failed to start round")
		m.message = err.Error()
		m.round = drill.Round{}
		return
	}
	m.message = ""
	m.round = round
}

func (m *Model) startSession() {
	best := m.session.Best
	if m.store != nil {
		stored, err := m.store.BestScore(context.Background(), m.keyLabel(), m.engine.Range().Label())
		if err != nil {
			logrus.WithError(err).Warn("failed to load best score")
		}
		best = max(best, stored)
	}
	m.gen++
	m.session = drill.NewSession(m.sessionLength(), best)
	m.tally = drill.Tally{}
	m.startedAt = m.now()
	m.newBest = false
	m.keys.Restart.SetEnabled(false)
	m.nextRound()
}

func (m *Model) finishSession() tea.Cmd {
	m.session, m.newBest = m.session.Finish()
	m.keys.Restart.SetEnabled(true)
	m.results = buildResultsTable(m.tally, m.engine.Key().Preference(), 12)
	m.saveSession()
	logrus.WithFields(logrus.Fields{
		"score":    m.session.Score,
		"attempts": m.session.Attempts,
		"best":     m.newBest,
	}).Info("session finished")
	return m.play(tone.Flourish())
}

func (m *Model) saveSession() {
	if m.store == nil || m.session.Attempts == 0 {
		return
	}
	stats := model.SessionStats{
		StartedAt:  m.startedAt,
		EndedAt:    m.now(),
		Key:        m.keyLabel(),
		Range:      m.engine.Range().Label(),
		Score:      m.session.Score,
		Attempts:   m.session.Attempts,
		DurationMs: m.sessionLength().Milliseconds(),
	}
	entries := m.tally.Sorted()
	notes := make([]model.NoteStats, 0, len(entries))
	for _, e := range entries {
		notes = append(notes, model.NoteStats{
			Pitch:        int(e.Pitch),
			Correct:      e.Correct,
			Incorrect:    e.Incorrect,
			LatencySumMs: e.LatencySumMs,
			LatencyCount: e.LatencyCount,
		})
	}
	if _, err := m.store.InsertSession(context.Background(), stats, notes); err != nil {
		logrus.WithError(err).Error("failed to save session")
		m.message = fmt.Sprintf("failed to save session: %v", err)
	}
}

func (m *Model) refreshWeakSet() {
	if !m.config.FocusWeak || m.store == nil {
		return
	}
	aggs, err := m.store.GetWeakNotes(context.Background(), m.config.WeakWindow, m.keyLabel(), m.engine.Range().Label())
	if err != nil {
		logrus.WithError(err).Warn("failed to load weak notes")
		return
	}
	weak := statsPkg.SelectWeakNotes(aggs, m.config.WeakTop)
	if len(weak) == 0 && !m.weakNoticeShown {
		m.notice = "no misses recorded yet; weak-note focus starts after a session"
		m.weakNoticeShown = true
	} else if len(weak) > 0 {
		m.notice = fmt.Sprintf("focusing on %d weak notes", len(weak))
	}
	m.engine.SetWeak(weak, m.config.WeakFactor)
}

func (m *Model) play(tones []tone.Tone) tea.Cmd {
	player := m.player
	return func() tea.Msg {
		if err := player.Play(tones); err != nil {
			logrus.WithError(err).Warn("failed to play tone")
		}
		return nil
	}
}

func (m *Model) renderRound() string {
	lines := []string{titleStyle.Render(fmt.Sprintf("%s · %s", m.keyTitle(), m.engine.Range()))}
	if m.notice != "" {
		lines = append(lines, pendingStyle.Render(m.notice))
	}
	lines = append(lines, "")
	if m.round.ID == 0 {
		lines = append(lines, incorrectStyle.Render(m.message))
		return strings.Join(lines, "\n")
	}
	d := m.round.Display()
	lines = append(lines,
		staffStyle.Render(renderStaff(d)),
		"",
		noteStyle.Render(fmt.Sprintf("%s%d", d.Name, d.Octave)),
		"",
		m.renderCapture(),
	)
	if m.message != "" {
		lines = append(lines, incorrectStyle.Render(m.message))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderCapture() string {
	captured := "…"
	if len(m.round.Captured) > 0 {
		captured = fingering.Of(m.round.Captured...).String()
	}
	switch {
	case m.round.State != drill.Evaluated:
		return pendingStyle.Render("Valves " + captured)
	case m.round.Verdict == drill.Correct:
		return correctStyle.Render("Valves " + captured + "  correct")
	case m.reveal:
		return incorrectStyle.Render("Valves "+captured+"  incorrect") + "\n" +
			pendingStyle.Render("Expected "+m.round.Expected.String())
	default:
		return incorrectStyle.Render("Valves " + captured + "  incorrect")
	}
}

func (m *Model) renderResults() string {
	lines := []string{
		titleStyle.Render("Session over"),
		fmt.Sprintf("Score %d · Best %d · Accuracy %.1f%%", m.session.Score, m.session.Best, m.session.Accuracy()*100),
	}
	if m.newBest {
		lines = append(lines, correctStyle.Render("New best score!"))
	}
	if len(m.tally) > 0 {
		lines = append(lines, "", m.results.View())
	}
	if m.message != "" {
		lines = append(lines, incorrectStyle.Render(m.message))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	remaining := m.session.Remaining.Round(time.Second)
	segments := []string{
		fmt.Sprintf("Time %d:%02d", int(remaining.Minutes()), int(remaining.Seconds())%60),
		fmt.Sprintf("Score %d", m.session.Score),
		fmt.Sprintf("Best %d", m.session.Best),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) keyLabel() string {
	return m.engine.Key().Name
}

func (m *Model) keyTitle() string {
	k := m.engine.Key()
	if k.Chromatic {
		return "Chromatic"
	}
	return k.Name + " major"
}

func (m *Model) captureDelay() time.Duration {
	if m.config.CaptureDelay > 0 {
		return m.config.CaptureDelay
	}
	return drill.CaptureDelay
}

func (m *Model) sessionLength() time.Duration {
	if m.config.Duration > 0 {
		return m.config.Duration
	}
	return drill.SessionLength
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func resolveCmd(id uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return resolveMsg{id: id}
	})
}

func nextCmd(id uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return nextMsg{id: id}
	})
}
