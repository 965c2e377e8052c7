package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newFlattenCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "flatten",
		Short: "Collapse a vault's history down to its minimal describe form",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			x, s, unsub, err := loadExecutor(ctx)
			if err != nil {
				return err
			}
			defer unsub()
			defer s.Close()

			if !force && !x.CanBeFlattened() {
				color.Yellow("vault %s is below the flatten threshold; pass --force to flatten anyway", gf.vaultID)
				return nil
			}

			before := len(x.GetHistory())
			bar := progressbar.NewOptions(-1,
				progressbar.OptionSetDescription("flattening"),
				progressbar.OptionClearOnFinish(),
			)
			x.FlattenProgress(func(n int) { _ = bar.Set(n) })
			_ = bar.Finish()

			if err := saveExecutor(ctx, s, x); err != nil {
				return err
			}
			fmt.Println()
			color.Green("flattened %s: %d -> %d commands", gf.vaultID, before, len(x.GetHistory()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "flatten even if below the threshold")
	return cmd
}
