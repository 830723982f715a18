package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newImageCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "image <prompt>",
		Short: "Generate a still image from a visual prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.newStudioEnv()
			if err != nil {
				return err
			}
			defer env.close()

			started := time.Now()
			runCtx, runID := env.runContext(cmd.Context(), "image")
			media, runErr := env.svc.GenerateImage(runCtx, args[0])
			var path string
			if runErr == nil {
				path, runErr = writeAsset(env.cfg.Paths.AssetsDir, "image", media.MimeType, media.Data)
			}
			outcome := map[string]string{"path": path}
			if err := env.finishRun(runCtx, runID, "image", truncate(args[0], 120), outcome, started, runErr); err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, outcome)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Image written to %s\n", path)
			return nil
		},
	}
}
