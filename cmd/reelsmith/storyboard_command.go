package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"reelsmith/internal/studio"
)

func newStoryboardCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "storyboard <script|file|->",
		Short: "Break a narration script into illustratable scenes",
		Long: `Break a narration script into sequential scenes, each with the
narration text, an image-generation prompt, and an estimated duration. The
argument may be the script itself, a path to a script file, or - for stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := readScriptArg(args[0])
			if err != nil {
				return err
			}

			env, err := ctx.newStudioEnv()
			if err != nil {
				return err
			}
			defer env.close()

			started := time.Now()
			runCtx, runID := env.runContext(cmd.Context(), "storyboard")
			scenes, runErr := env.svc.Storyboard(runCtx, script)
			if err := env.finishRun(runCtx, runID, "storyboard", truncate(script, 120), scenes, started, runErr); err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, scenes)
			}
			renderStoryboard(cmd, scenes)
			return nil
		},
	}
}

func renderStoryboard(cmd *cobra.Command, scenes []studio.StoryboardScene) {
	rows := make([][]string, 0, len(scenes))
	var total float64
	for _, scene := range scenes {
		total += scene.DurationSeconds
		rows = append(rows, []string{
			strconv.Itoa(scene.ID),
			truncate(scene.Text, 60),
			truncate(scene.VisualPrompt, 50),
			fmt.Sprintf("%.1fs", scene.DurationSeconds),
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable([]string{"Scene", "Narration", "Visual", "Duration"}, rows))
	fmt.Fprintf(out, "%d scenes, %.0fs total\n", len(scenes), total)
}
