package sessions

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/genstudio-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time
	// LogLines caps how many of the most recent status feed lines are shown.
	LogLines int
	Active   bool
}

const defaultLogLines = 10

func renderView(session domain.Session, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(sessionTitle(session)) + markers(session, opts, s),
		s.header.Render(headerLine(session, opts)),
	}

	if session.VideoURL != "" {
		lines = append(lines, s.mediaURL.Render("video: "+session.VideoURL))
	}

	lines = append(lines, s.section.Render("Transcript"))
	if len(session.Messages) == 0 {
		lines = append(lines, s.empty.Render("No messages yet."))
	} else {
		for _, msg := range session.Messages {
			lines = append(lines, renderMessage(msg, opts, s))
		}
	}

	if job, ok := currentJob(session); ok {
		lines = append(lines, s.section.Render("Current job"), renderJob(job, s))
	}

	if len(session.StatusLog) > 0 {
		lines = append(lines, s.section.Render("Status feed"))
		lines = append(lines, statusFeedLines(session.StatusLog, opts, s)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func sessionTitle(session domain.Session) string {
	prompt := strings.TrimSpace(session.Prompt)
	if prompt == "" {
		return "(untitled session)"
	}
	return prompt
}

func markers(session domain.Session, opts RenderOptions, s styles) string {
	var marks []string
	if session.Pinned {
		marks = append(marks, s.pinned.Render("[pinned]"))
	}
	if opts.Active {
		marks = append(marks, s.header.Render("[active]"))
	}
	if len(marks) == 0 {
		return ""
	}
	return " " + strings.Join(marks, " ")
}

func headerLine(session domain.Session, opts RenderOptions) string {
	return fmt.Sprintf("session: %s  tool: %s/%s  created: %s",
		session.ID, session.Tool, session.Model, formatTimestamp(session.CreatedAt, opts.Now))
}

func renderMessage(msg domain.Message, opts RenderOptions, s styles) string {
	role := s.userRole.Render("you")
	if msg.Role == domain.RoleAssistant {
		role = s.studioRole.Render("studio")
	}

	contentStyle := s.content
	if msg.Status == domain.MessageError {
		contentStyle = s.errorText
	}

	segments := []string{
		role,
		" ",
		s.timestamp.Render(formatTimestamp(msg.Timestamp, opts.Now)),
		" ",
		contentStyle.Render(msg.Content),
	}
	if len(msg.Attachments) > 0 {
		segments = append(segments, " ", s.attachment.Render("["+strings.Join(msg.Attachments, ", ")+"]"))
	}
	head := lipgloss.JoinHorizontal(lipgloss.Top, segments...)

	extras := make([]string, 0, 1+len(msg.ImageURLs))
	if msg.VideoURL != "" {
		extras = append(extras, "  "+s.mediaURL.Render(msg.VideoURL))
	}
	for _, url := range msg.ImageURLs {
		extras = append(extras, "  "+s.mediaURL.Render(url))
	}
	if len(extras) == 0 {
		return head
	}

	return lipgloss.JoinVertical(lipgloss.Left, append([]string{head}, extras...)...)
}

func currentJob(session domain.Session) (domain.Job, bool) {
	if session.CurrentJobID == "" {
		return domain.Job{}, false
	}
	job, ok := session.Jobs[session.CurrentJobID]
	return job, ok
}

func renderJob(job domain.Job, s styles) string {
	statusStyle := s.content
	if job.Status == domain.StatusFailed {
		statusStyle = s.errorText
	}

	segments := []string{
		s.statusKey.Render(string(job.ID)),
		" ",
		statusStyle.Render(job.Status),
	}

	if percent, ok := domain.PhasePercent(job.Status); ok {
		segments = append(segments,
			" ",
			renderProgressBar(percent, 24, s),
			" ",
			s.barText.Render(fmt.Sprintf("%3.0f%%", percent)),
		)
	}

	if job.Progress != "" && job.Progress != job.Status {
		segments = append(segments, " ", statusStyle.Render(job.Progress))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func statusFeedLines(log []string, opts RenderOptions, s styles) []string {
	limit := opts.LogLines
	if limit <= 0 {
		limit = defaultLogLines
	}
	if len(log) > limit {
		log = log[len(log)-limit:]
	}

	lines := make([]string, 0, len(log))
	for _, entry := range log {
		lines = append(lines, "  "+s.statusKey.Render(entry))
	}

	return lines
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100.0))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatTimestamp(ts, now time.Time) string {
	if ts.IsZero() {
		return "--:--"
	}
	if now.IsZero() {
		return ts.Format("15:04 on 02 Jan")
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := ts.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return ts.Format("15:04")
	}

	return ts.Format("15:04 on 02 Jan")
}
