package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"reelsmith/internal/studio"
)

func newConceptsCommand(ctx *commandContext) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "concepts <niche>",
		Short: "Pitch video concepts for a niche",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.newStudioEnv()
			if err != nil {
				return err
			}
			defer env.close()

			started := time.Now()
			runCtx, runID := env.runContext(cmd.Context(), "concepts")
			concepts, runErr := env.svc.GenerateConcepts(runCtx, args[0], count)
			if err := env.finishRun(runCtx, runID, "concepts", args[0], concepts, started, runErr); err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, concepts)
			}
			renderConcepts(cmd, concepts)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of concepts (default from config)")
	return cmd
}

func renderConcepts(cmd *cobra.Command, concepts []studio.VideoConcept) {
	out := cmd.OutOrStdout()
	for i, concept := range concepts {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%d. %s\n", i+1, concept.Title)
		fmt.Fprintf(out, "   Hook: %s\n", concept.Hook)
		fmt.Fprintf(out, "   Structure: %s\n", concept.Structure)
		fmt.Fprintf(out, "   Visuals: %s\n", concept.VisualDirection)
		if len(concept.SEO.Tags) > 0 {
			fmt.Fprintf(out, "   Tags: %s\n", strings.Join(concept.SEO.Tags, ", "))
		}
	}
}
