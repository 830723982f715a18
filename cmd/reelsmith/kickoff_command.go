package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newKickoffCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "kickoff <niche>",
		Short: "Run analysis, planning, and concepts for a fresh niche",
		Long: `Run the three starting operations for a fresh niche concurrently:
grounded analysis, a phased strategy plan, and a batch of video concepts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.newStudioEnv()
			if err != nil {
				return err
			}
			defer env.close()

			started := time.Now()
			runCtx, runID := env.runContext(cmd.Context(), "kickoff")
			result, runErr := env.svc.Kickoff(runCtx, args[0])
			if err := env.finishRun(runCtx, runID, "kickoff", args[0], result, started, runErr); err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			renderAnalysis(cmd, result.Analysis)
			fmt.Fprintln(out)
			renderPlan(cmd, result.Plan)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Concepts:")
			renderConcepts(cmd, result.Concepts)
			return nil
		},
	}
}
