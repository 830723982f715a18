package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Verify the API key and configured model are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.newStudioEnv()
			if err != nil {
				return err
			}
			defer env.close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Model:   %s\n", env.cfg.Gemini.TextModel)
			fmt.Fprintf(out, "History: %s\n", env.store.Path())

			if err := env.svc.HealthCheck(cmd.Context()); err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			fmt.Fprintln(out, "Service reachable, key accepted")
			return nil
		},
	}
}
