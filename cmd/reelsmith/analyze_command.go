package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"reelsmith/internal/studio"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <niche>",
		Short: "Analyze a content niche with web grounding",
		Long: `Analyze a content niche for a faceless channel: trend strength,
competition, monetization paths, longevity, and platform fit. The verdict is
grounded in current web results and lists its sources.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.newStudioEnv()
			if err != nil {
				return err
			}
			defer env.close()

			started := time.Now()
			runCtx, runID := env.runContext(cmd.Context(), "analyze")
			analysis, runErr := env.svc.AnalyzeNiche(runCtx, args[0])
			if err := env.finishRun(runCtx, runID, "analyze", args[0], analysis, started, runErr); err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, analysis)
			}
			renderAnalysis(cmd, analysis)
			return nil
		},
	}
}

func renderAnalysis(cmd *cobra.Command, analysis *studio.NicheAnalysis) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"Field", "Value"},
		[][]string{
			{"Niche", analysis.Name},
			{"Trend score", fmt.Sprintf("%.1f / %d", analysis.TrendScore, studio.TrendScoreMax)},
			{"Competition", analysis.Competition},
			{"Monetization", analysis.Monetization},
			{"Longevity", analysis.Longevity},
			{"Platform fit", analysis.PlatformFit},
		},
	))
	if len(analysis.Sources) == 0 {
		return
	}
	fmt.Fprintln(out, "\nSources:")
	for _, source := range analysis.Sources {
		fmt.Fprintf(out, "  %s %s\n", strings.TrimSpace(source.Title)+":", source.URI)
	}
}
