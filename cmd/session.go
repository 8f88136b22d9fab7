package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	sessionsadapter "github.com/bnema/genstudio-cli/internal/adapters/render/sessions"
	"github.com/bnema/genstudio-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage saved generation sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionShowCmd(app),
		newSessionUseCmd(app),
		newSessionDeleteCmd(app),
		newSessionPinCmd(app),
		newSessionDuplicateCmd(app),
		newSessionExportCmd(app),
	)

	return cmd
}

type sessionRow struct {
	ID           string `json:"id"`
	Prompt       string `json:"prompt"`
	Tool         string `json:"tool"`
	Model        string `json:"model"`
	CreatedAt    string `json:"createdAt"`
	CurrentJobID string `json:"currentJobId,omitempty"`
	VideoURL     string `json:"videoUrl,omitempty"`
	Pinned       bool   `json:"pinned"`
	Active       bool   `json:"active"`
}

func newSessionListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved sessions, pinned first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			overviews, err := app.store.Overview(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				rows := make([]sessionRow, 0, len(overviews))
				for _, overview := range overviews {
					session := overview.Session
					rows = append(rows, sessionRow{
						ID:           string(session.ID),
						Prompt:       session.Prompt,
						Tool:         string(session.Tool),
						Model:        session.Model,
						CreatedAt:    session.CreatedAt.UTC().Format(time.RFC3339),
						CurrentJobID: string(session.CurrentJobID),
						VideoURL:     session.VideoURL,
						Pinned:       session.Pinned,
						Active:       overview.Active,
					})
				}
				return writeJSON(cmd, rows)
			}

			if len(overviews) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions yet. Start one with 'gst generate'.")
				return nil
			}

			rows := make([][]string, 0, len(overviews))
			for _, overview := range overviews {
				session := overview.Session
				rows = append(rows, []string{
					shortID(session.ID),
					session.CreatedAt.Format("2006-01-02 15:04"),
					string(session.Tool) + "/" + session.Model,
					jobCell(session),
					sessionFlags(overview.Active, session.Pinned),
					truncate(session.Prompt, 40),
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Created", "Tool/Model", "Job", "Flags", "Prompt"},
				rows,
				nil,
			))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON output")

	return cmd
}

func newSessionShowCmd(app *app) *cobra.Command {
	var asJSON bool
	var logLines int

	cmd := &cobra.Command{
		Use:   "show [session-id]",
		Short: "Show a session's transcript, current job and status feed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resolveSession(cmd.Context(), app, argOrEmpty(args))
			if err != nil {
				return err
			}

			if asJSON {
				data, err := app.repo.ExportJSON(cmd.Context(), session.ID)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			active := false
			if current, err := app.store.ActiveSession(cmd.Context()); err == nil {
				active = current.ID == session.ID
			}

			rendered, err := app.sessionRenderer(session, sessionsadapter.RenderOptions{
				Now:      app.now(),
				LogLines: logLines,
				Active:   active,
			})
			if err != nil {
				return fmt.Errorf("render session: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON output in the export file format")
	cmd.Flags().IntVar(&logLines, "log-lines", 0, "Status feed lines to show, 0 for the default")

	return cmd
}

func newSessionUseCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <session-id>",
		Short: "Make a session the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resolveSession(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.store.SetActiveSession(cmd.Context(), session.ID); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Active session is now %s\n", shortID(session.ID))
			return err
		},
	}
}

func newSessionDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resolveSession(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.store.DeleteSession(cmd.Context(), session.ID); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", shortID(session.ID))
			return err
		},
	}
}

func newSessionPinCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pin <session-id>",
		Short: "Pin a session to the top of the list, or unpin it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resolveSession(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			pinned, err := app.store.TogglePin(cmd.Context(), session.ID)
			if err != nil {
				return err
			}

			verb := "Unpinned"
			if pinned {
				verb = "Pinned"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s session %s\n", verb, shortID(session.ID))
			return err
		},
	}
}

func newSessionDuplicateCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate [session-id]",
		Short: "Copy a session into a new one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resolveSession(cmd.Context(), app, argOrEmpty(args))
			if err != nil {
				return err
			}
			dup, err := app.store.DuplicateSession(cmd.Context(), session.ID)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Duplicated session %s into %s\n", shortID(session.ID), shortID(dup.ID))
			return err
		},
	}
}

func newSessionExportCmd(app *app) *cobra.Command {
	var all bool
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export [session-id]",
		Short: "Export sessions to a JSON file the web studio can import",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var target string

			if all {
				if len(args) > 0 {
					return errors.New("--all exports every session, drop the session id")
				}
				var err error
				data, err = app.repo.ExportAllJSON(cmd.Context())
				if err != nil {
					return err
				}
				target = "gen-studio-sessions.json"
			} else {
				session, err := resolveSession(cmd.Context(), app, argOrEmpty(args))
				if err != nil {
					return err
				}
				data, err = app.repo.ExportJSON(cmd.Context(), session.ID)
				if err != nil {
					return err
				}
				target = fmt.Sprintf("gen-studio-session-%s.json", shortID(session.ID))
			}

			if outputPath == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if outputPath != "" {
				target = outputPath
			}

			if err := os.WriteFile(target, data, 0o600); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", target)
			return err
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Export every session as one JSON array")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination path, '-' for stdout")

	return cmd
}

// resolveSession turns a user-supplied session reference into a stored
// session. An empty reference means the active session; otherwise an exact
// id wins, then a unique id prefix.
func resolveSession(ctx context.Context, app *app, ref string) (domain.Session, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return app.store.ActiveSession(ctx)
	}

	session, err := app.store.GetSession(ctx, domain.SessionID(ref))
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return domain.Session{}, err
	}

	sessions, err := app.store.ListSessions(ctx)
	if err != nil {
		return domain.Session{}, err
	}

	var matches []domain.Session
	for _, candidate := range sessions {
		if strings.HasPrefix(string(candidate.ID), ref) {
			matches = append(matches, candidate)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return domain.Session{}, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, ref)
	default:
		return domain.Session{}, fmt.Errorf("session id prefix %q is ambiguous, %d sessions match", ref, len(matches))
	}
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func shortID(id domain.SessionID) string {
	s := string(id)
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

func jobCell(session domain.Session) string {
	if session.CurrentJobID == "" {
		return "-"
	}
	if job, ok := session.Jobs[session.CurrentJobID]; ok && job.Status != "" {
		return job.Status
	}
	return string(session.CurrentJobID)
}

func sessionFlags(active, pinned bool) string {
	flags := make([]string, 0, 2)
	if active {
		flags = append(flags, "active")
	}
	if pinned {
		flags = append(flags, "pinned")
	}
	return strings.Join(flags, ", ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
