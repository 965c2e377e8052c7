package main

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	vault "github.com/rsms/vaultfmt"
)

func newCreateCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new vault (or rewrite an existing one's opening commands)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			x, s, unsub, err := loadExecutor(ctx)
			if err != nil {
				return err
			}
			defer unsub()
			defer s.Close()

			lines := []string{vault.MustBuildCommand("aid", vault.NewID())}
			if format != "" {
				lines = append(lines, vault.MustBuildCommand("fmt", format))
			}
			if err := x.Execute(lines...); err != nil {
				return err
			}
			if err := saveExecutor(ctx, s, x); err != nil {
				return err
			}

			color.Green("created vault %s (backend=%s)", gf.vaultID, gf.backend)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "optional format tag to stamp on the new vault")
	return cmd
}
