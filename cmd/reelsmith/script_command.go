package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newScriptCommand(ctx *commandContext) *cobra.Command {
	var hook string

	cmd := &cobra.Command{
		Use:   "script <title>",
		Short: "Write the full narration script for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.newStudioEnv()
			if err != nil {
				return err
			}
			defer env.close()

			started := time.Now()
			runCtx, runID := env.runContext(cmd.Context(), "script")
			script, runErr := env.svc.WriteScript(runCtx, args[0], hook)
			if err := env.finishRun(runCtx, runID, "script", args[0], script, started, runErr); err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]string{"title": args[0], "script": script})
			}
			fmt.Fprintln(cmd.OutOrStdout(), script)
			return nil
		},
	}

	cmd.Flags().StringVar(&hook, "hook", "", "Opening hook the script must start with")
	return cmd
}
