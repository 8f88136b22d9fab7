package cmd

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
)

func newPlayCmd(app *app) *cobra.Command {
	var player string

	cmd := &cobra.Command{
		Use:   "play [session-id]",
		Short: "Open a session's generated video in the configured player",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resolveSession(cmd.Context(), app, argOrEmpty(args))
			if err != nil {
				return err
			}
			if session.VideoURL == "" {
				return fmt.Errorf("session %s has no video yet", shortID(session.ID))
			}

			command := player
			if command == "" {
				command = app.playerCommand
			}
			fields := strings.Fields(command)
			if len(fields) == 0 {
				return fmt.Errorf("no player configured, set player.command or GENSTUDIO_PLAYER")
			}

			child := exec.CommandContext(cmd.Context(), fields[0], append(fields[1:], session.VideoURL)...)
			child.Stdout = cmd.OutOrStdout()
			child.Stderr = cmd.ErrOrStderr()
			child.Stdin = cmd.InOrStdin()

			if err := child.Run(); err != nil {
				return fmt.Errorf("run player command: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "", "Player command to run instead of the configured one")

	return cmd
}
