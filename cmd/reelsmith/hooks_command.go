package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHooksCommand(ctx *commandContext) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "hooks <topic>",
		Short: "Write candidate opening hooks for a video topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.newStudioEnv()
			if err != nil {
				return err
			}
			defer env.close()

			started := time.Now()
			runCtx, runID := env.runContext(cmd.Context(), "hooks")
			hooks, runErr := env.svc.ViralHooks(runCtx, args[0], count)
			if err := env.finishRun(runCtx, runID, "hooks", args[0], hooks, started, runErr); err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, hooks)
			}
			out := cmd.OutOrStdout()
			for i, hook := range hooks {
				fmt.Fprintf(out, "%d. %s\n   %s\n", i+1, hook.Hook, hook.Reason)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of hooks (default from config)")
	return cmd
}
