package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newVoiceoverCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "voiceover <script|file|->",
		Short: "Synthesize a voiceover for a script",
		Args:  cobra.ExactArgs(1),
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
			runCtx, runID := env.runContext(cmd.Context(), "voiceover")
			media, runErr := env.svc.SynthesizeVoiceover(runCtx, script)
			var path string
			if runErr == nil {
				path, runErr = writeAsset(env.cfg.Paths.AssetsDir, "voiceover", media.MimeType, media.Data)
			}
			outcome := map[string]string{"path": path}
			if err := env.finishRun(runCtx, runID, "voiceover", truncate(script, 120), outcome, started, runErr); err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, outcome)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Voiceover written to %s\n", path)
			return nil
		},
	}
}
