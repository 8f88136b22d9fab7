package cmd

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/genstudio-cli/internal/application"
	"github.com/bnema/genstudio-cli/internal/domain"
	"github.com/bnema/genstudio-cli/internal/ports"
)

const watchBarWidth = 24

type watchUpdateMsg struct {
	update ports.JobUpdate
}

type watchDoneMsg struct {
	job domain.Job
	err error
}

type watchStyles struct {
	jobID      lipgloss.Style
	status     lipgloss.Style
	failed     lipgloss.Style
	progress   lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newWatchStyles() watchStyles {
	return watchStyles{
		jobID:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		status:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		failed:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		progress:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

type watchModel struct {
	spinner  spinner.Model
	styles   watchStyles
	jobID    domain.JobID
	status   string
	progress string
	percent  float64
	havePct  bool
	updates  <-chan ports.JobUpdate
	result   <-chan watchDoneMsg
	job      domain.Job
	err      error
	done     bool
}

func newWatchModel(initial domain.Job, updates <-chan ports.JobUpdate, result <-chan watchDoneMsg) watchModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	m := watchModel{
		spinner:  s,
		styles:   newWatchStyles(),
		jobID:    initial.ID,
		status:   initial.Status,
		progress: initial.Progress,
		updates:  updates,
		result:   result,
	}
	if percent, ok := domain.PhasePercent(initial.Status); ok {
		m.percent = percent
		m.havePct = true
	}

	return m
}

// waitForWatchEvent relays the next poller event into the program. It is
// re-issued after every update so the channel keeps draining.
func waitForWatchEvent(updates <-chan ports.JobUpdate, result <-chan watchDoneMsg) tea.Cmd {
	return func() tea.Msg {
		select {
		case update := <-updates:
			return watchUpdateMsg{update: update}
		case done := <-result:
			return done
		}
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForWatchEvent(m.updates, m.result))
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case watchUpdateMsg:
		m.status = msg.update.Status
		m.progress = msg.update.Progress
		if percent, ok := domain.PhasePercent(msg.update.Status); ok {
			m.percent = percent
			m.havePct = true
		}
		return m, waitForWatchEvent(m.updates, m.result)
	case watchDoneMsg:
		m.done = true
		m.job = msg.job
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m watchModel) View() string {
	if m.done {
		return ""
	}

	status := m.status
	if status == "" {
		status = "waiting"
	}
	statusStyle := m.styles.status
	if status == domain.StatusFailed {
		statusStyle = m.styles.failed
	}

	segments := []string{
		m.spinner.View(),
		m.styles.jobID.Render(string(m.jobID)),
		statusStyle.Render(status),
	}

	if m.havePct {
		segments = append(segments,
			m.renderBar(),
			m.styles.progress.Render(fmt.Sprintf("%3.0f%%", m.percent)),
		)
	}
	if m.progress != "" && m.progress != status {
		segments = append(segments, m.styles.progress.Render(m.progress))
	}

	return strings.Join(segments, "  ")
}

func (m watchModel) renderBar() string {
	filled := int(math.Round(watchBarWidth * m.percent / 100.0))
	if filled < 0 {
		filled = 0
	}
	if filled > watchBarWidth {
		filled = watchBarWidth
	}

	return m.styles.barBracket.Render("[") +
		m.styles.barFill.Render(strings.Repeat("=", filled)) +
		m.styles.barEmpty.Render(strings.Repeat("-", watchBarWidth-filled)) +
		m.styles.barBracket.Render("]")
}

func runWatchTUI(ctx context.Context, output io.Writer, app *app, sessionID domain.SessionID, jobID domain.JobID, interval time.Duration) (domain.Job, error) {
	updates := make(chan ports.JobUpdate, 8)
	result := make(chan watchDoneMsg, 1)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		job, err := app.poller.Watch(watchCtx, application.WatchRequest{
			SessionID: sessionID,
			JobID:     jobID,
			Interval:  interval,
			OnUpdate: func(update ports.JobUpdate, _ bool) {
				select {
				case updates <- update:
				case <-watchCtx.Done():
				}
			},
		})
		result <- watchDoneMsg{job: job, err: err}
	}()

	initial, err := app.store.GetJob(ctx, sessionID, jobID)
	if err != nil {
		initial = domain.Job{ID: jobID}
	}

	p := tea.NewProgram(
		newWatchModel(initial, updates, result),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(watchCtx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return domain.Job{}, err
	}

	m, ok := finalModel.(watchModel)
	if !ok {
		return domain.Job{}, fmt.Errorf("unexpected final watch model type %T", finalModel)
	}

	return m.job, m.err
}
