package cmd

import (
	"fmt"

	"github.com/bnema/genstudio-cli/internal/domain"
	"github.com/spf13/cobra"
)

type modelRow struct {
	ID       string `json:"id"`
	Tool     string `json:"tool"`
	Label    string `json:"label"`
	Endpoint string `json:"endpoint"`
}

func newModelsCmd() *cobra.Command {
	var toolFlag string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the generation models the backend accepts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tool := domain.Tool(toolFlag)
			if toolFlag != "" && !tool.Valid() {
				return fmt.Errorf("unknown tool %q, want video, image or text", toolFlag)
			}

			specs := domain.ModelsForTool(tool)

			if asJSON {
				rows := make([]modelRow, 0, len(specs))
				for _, spec := range specs {
					rows = append(rows, modelRow{
						ID:       spec.ID,
						Tool:     string(spec.Tool),
						Label:    spec.Label,
						Endpoint: spec.Endpoint,
					})
				}
				return writeJSON(cmd, rows)
			}

			rows := make([][]string, 0, len(specs))
			for _, spec := range specs {
				rows = append(rows, []string{string(spec.Tool), spec.ID, spec.Label, spec.Endpoint})
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Tool", "Model", "Label", "Endpoint"},
				rows,
				nil,
			))
			return err
		},
	}

	cmd.Flags().StringVar(&toolFlag, "tool", "", "Only list models for one tool")
	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON output")

	return cmd
}
