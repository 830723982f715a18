package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"reelsmith/internal/services/gemini"
)

func newVideoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "video <prompt>",
		Short: "Produce a video clip from a prompt",
		Long: `Produce a video clip from a prompt. The job runs asynchronously on
the service; this command submits it, polls until it finishes, and downloads
the result into the assets directory. Polling is bounded by the configured
poller timeout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.newStudioEnv()
			if err != nil {
				return err
			}
			defer env.close()

			started := time.Now()
			runCtx, runID := env.runContext(cmd.Context(), "video")
			uri, runErr := env.svc.ProduceVideo(runCtx, args[0])
			var path string
			if runErr == nil {
				var media *gemini.MediaPart
				media, runErr = env.svc.DownloadVideo(runCtx, uri)
				if runErr == nil {
					path, runErr = writeAsset(env.cfg.Paths.AssetsDir, "video", media.MimeType, media.Data)
				}
			}
			outcome := map[string]string{"uri": uri, "path": path}
			if err := env.finishRun(runCtx, runID, "video", truncate(args[0], 120), outcome, started, runErr); err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, outcome)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Video written to %s\n", path)
			return nil
		},
	}
}
