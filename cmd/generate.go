package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/genstudio-cli/internal/application"
	"github.com/bnema/genstudio-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *app) *cobra.Command {
	var (
		tool       string
		model      string
		sessionRef string
		metadata   string
		duration   int
		files      []string
		noWatch    bool
		interval   time.Duration
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "generate [prompt...]",
		Short: "Submit a generation request and follow it to completion",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if metadata == "" && duration > 0 {
				metadata = fmt.Sprintf(`{"durationSeconds":%d}`, duration)
			}

			var sessionID domain.SessionID
			if sessionRef != "" {
				session, err := resolveSession(cmd.Context(), app, sessionRef)
				if err != nil {
					return err
				}
				sessionID = session.ID
			}

			result, err := app.submitter.Submit(cmd.Context(), application.SubmitCommand{
				SessionID:   sessionID,
				Prompt:      strings.Join(args, " "),
				Tool:        domain.Tool(tool),
				Model:       model,
				Metadata:    metadata,
				Attachments: files,
			})
			if err != nil {
				return err
			}

			// Synchronous endpoints answer with the finished media, so there
			// is no job to follow.
			if result.Job.Terminal() {
				notifyOutcome(cmd, app, result.Session.ID, result.Job)
				if asJSON {
					return writeJSON(cmd, buildJobReport(result.Session.ID, result.Job))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "session %s  job %s\n", shortID(result.Session.ID), result.Job.ID)
				printJobOutcome(cmd.OutOrStdout(), result.Job)
				return nil
			}

			if noWatch {
				if asJSON {
					return writeJSON(cmd, buildJobReport(result.Session.ID, result.Job))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "session %s  job %s  %s\n", shortID(result.Session.ID), result.Job.ID, result.Job.Status)
				fmt.Fprintln(cmd.OutOrStdout(), "Run 'gst watch' to follow progress.")
				return nil
			}

			if !asJSON {
				fmt.Fprintf(cmd.OutOrStdout(), "session %s  job %s\n", shortID(result.Session.ID), result.Job.ID)
			}

			return watchJob(cmd, app, result.Session.ID, result.Job.ID, interval, asJSON)
		},
	}

	cmd.Flags().StringVar(&tool, "tool", string(domain.ToolVideo), "Generation tool: video, image or text")
	cmd.Flags().StringVar(&model, "model", "", "Model id, defaults to the tool's first model (see 'gst models')")
	cmd.Flags().StringVar(&sessionRef, "session", "", "Continue an existing session instead of starting a new one")
	cmd.Flags().StringVar(&metadata, "metadata", "", "Metadata JSON forwarded to the backend untouched")
	cmd.Flags().IntVar(&duration, "duration", 0, "Video duration in seconds, shorthand for durationSeconds metadata")
	cmd.Flags().StringSliceVar(&files, "file", nil, "Attachment to upload, repeatable")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Return right after submission instead of following the job")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Override the status poll interval")
	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON output")

	return cmd
}
