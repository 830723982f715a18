package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"reelsmith/internal/studio"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <niche>",
		Short: "Build a phased multi-week strategy plan for a niche",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.newStudioEnv()
			if err != nil {
				return err
			}
			defer env.close()

			started := time.Now()
			runCtx, runID := env.runContext(cmd.Context(), "plan")
			plan, runErr := env.svc.BuildPlan(runCtx, args[0])
			if err := env.finishRun(runCtx, runID, "plan", args[0], plan, started, runErr); err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, plan)
			}
			renderPlan(cmd, plan)
			return nil
		},
	}
}

func renderPlan(cmd *cobra.Command, plan *studio.StrategyPlan) {
	rows := make([][]string, 0, len(plan.Weeks))
	for _, week := range plan.Weeks {
		rows = append(rows, []string{week.Range, week.Phase, strings.Join(week.Focus, ", ")})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Strategy plan for %s\n", plan.Niche)
	fmt.Fprintln(out, renderTable([]string{"Weeks", "Phase", "Focus"}, rows))
}
