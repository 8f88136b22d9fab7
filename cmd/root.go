package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gst",
		Short:         "Gen Studio CLI (gst): drive AI media generation from the terminal",
		Long:          "gst (Gen Studio CLI) submits video, image and text generation jobs to a Gen Studio backend, follows their progress, and keeps a local session history you can revisit, export and replay.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newGenerateCmd(app),
		newWatchCmd(app),
		newSessionCmd(app),
		newModelsCmd(),
		newPlayCmd(app),
		newHealthCmd(app),
		newConfigCmd(),
	)

	return rootCmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
