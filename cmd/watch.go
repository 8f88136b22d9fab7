package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/bnema/genstudio-cli/internal/application"
	"github.com/bnema/genstudio-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *app) *cobra.Command {
	var interval time.Duration
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "watch [session-id]",
		Short: "Follow a session's current generation job",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resolveSession(cmd.Context(), app, argOrEmpty(args))
			if err != nil {
				return err
			}
			if session.CurrentJobID == "" {
				return fmt.Errorf("session %s has no generation job to watch", shortID(session.ID))
			}

			// Finished jobs are replayed from the store. The backend drops
			// completed jobs eventually, and locally synthesized ones were
			// never known to it.
			if job, ok := session.Jobs[session.CurrentJobID]; ok && job.Terminal() {
				if asJSON {
					return writeJSON(cmd, buildJobReport(session.ID, job))
				}
				printJobOutcome(cmd.OutOrStdout(), job)
				return nil
			}

			return watchJob(cmd, app, session.ID, session.CurrentJobID, interval, asJSON)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Override the status poll interval")
	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON output")

	return cmd
}

// watchJob polls the backend until the job settles, renders live progress on
// stderr unless JSON output was requested, and pushes the terminal outcome to
// the configured notification topic.
func watchJob(cmd *cobra.Command, app *app, sessionID domain.SessionID, jobID domain.JobID, interval time.Duration, asJSON bool) error {
	if interval <= 0 {
		interval = app.pollInterval
	}

	var job domain.Job
	var err error
	if asJSON {
		job, err = app.poller.Watch(cmd.Context(), application.WatchRequest{
			SessionID: sessionID,
			JobID:     jobID,
			Interval:  interval,
		})
	} else {
		job, err = runWatchTUI(cmd.Context(), cmd.ErrOrStderr(), app, sessionID, jobID, interval)
	}

	if job.Terminal() {
		notifyOutcome(cmd, app, sessionID, job)
	}

	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(cmd, buildJobReport(sessionID, job))
	}

	printJobOutcome(cmd.OutOrStdout(), job)
	return nil
}

type jobReport struct {
	SessionID string   `json:"sessionId"`
	JobID     string   `json:"jobId"`
	Status    string   `json:"status"`
	Progress  string   `json:"progress,omitempty"`
	VideoURL  string   `json:"videoUrl,omitempty"`
	ImageURLs []string `json:"imageUrls,omitempty"`
}

func buildJobReport(sessionID domain.SessionID, job domain.Job) jobReport {
	return jobReport{
		SessionID: string(sessionID),
		JobID:     string(job.ID),
		Status:    job.Status,
		Progress:  job.Progress,
		VideoURL:  job.VideoURL,
		ImageURLs: job.ImageURLs,
	}
}

func printJobOutcome(w io.Writer, job domain.Job) {
	line := job.Status
	if job.Progress != "" && job.Progress != job.Status {
		line += ": " + job.Progress
	}
	fmt.Fprintln(w, line)

	if job.VideoURL != "" {
		fmt.Fprintln(w, job.VideoURL)
	}
	for _, url := range job.ImageURLs {
		fmt.Fprintln(w, url)
	}
}

// notifyOutcome is best effort: a notification failure is logged, never
// surfaced as a command error.
func notifyOutcome(cmd *cobra.Command, app *app, sessionID domain.SessionID, job domain.Job) {
	session, err := app.store.GetSession(cmd.Context(), sessionID)
	if err != nil {
		app.logger.Warn("load session for notification", "session", sessionID, "error", err)
		return
	}

	switch job.Status {
	case domain.StatusCompleted:
		mediaURL := job.VideoURL
		if mediaURL == "" && len(job.ImageURLs) > 0 {
			mediaURL = job.ImageURLs[0]
		}
		err = app.notifier.NotifyGenerationCompleted(cmd.Context(), session.Prompt, mediaURL)
	case domain.StatusFailed:
		err = app.notifier.NotifyGenerationFailed(cmd.Context(), session.Prompt, job.Progress)
	default:
		return
	}

	if err != nil {
		app.logger.Warn("send notification", "session", sessionID, "job", job.ID, "error", err)
	}
}
