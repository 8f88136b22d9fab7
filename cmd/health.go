package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type healthReport struct {
	OK   bool `json:"ok"`
	Jobs int  `json:"jobs"`
}

func newHealthCmd(app *app) *cobra.Command {
	var asJSON bool
	var sendTest bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the generation backend and the notification topic",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := app.client.Health(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				if err := writeJSON(cmd, healthReport{OK: report.OK, Jobs: report.Jobs}); err != nil {
					return err
				}
			} else if report.OK {
				fmt.Fprintf(cmd.OutOrStdout(), "backend ok, %d job(s) in flight\n", report.Jobs)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "backend reachable but reports not ok")
			}

			if sendTest {
				if err := app.notifier.TestNotification(cmd.Context()); err != nil {
					return fmt.Errorf("send test notification: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "test notification sent")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON output")
	cmd.Flags().BoolVar(&sendTest, "notify", false, "Also send a test notification to the configured topic")

	return cmd
}
