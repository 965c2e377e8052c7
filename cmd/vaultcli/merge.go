package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	vault "github.com/rsms/vaultfmt"
)

// mergeExecuteChunk bounds how many lines go into a single Execute call
// while replaying another vault's stripped history, so the progress bar
// below ticks in visible steps instead of jumping straight to 100% on one
// giant batch.
const mergeExecuteChunk = 64

func newMergeCmd() *cobra.Command {
	var otherVaultID string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge another vault's history into this one, stripping its destructive commands first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if otherVaultID == "" {
				return fmt.Errorf("--other is required")
			}
			ctx := context.Background()

			x, s, unsub, err := loadExecutor(ctx)
			if err != nil {
				return err
			}
			defer unsub()
			defer s.Close()

			otherLines, err := s.HistoryLines(ctx, otherVaultID)
			if err != nil {
				return fmt.Errorf("load %s: %w", otherVaultID, err)
			}

			stripped, report := vault.StripDestructive(vault.History(otherLines))
			if err := vault.Validate(append(x.GetHistory().Clone(), stripped...)); err != nil {
				return fmt.Errorf("merged history does not replay cleanly: %w", err)
			}

			bar := progressbar.NewOptions(len(stripped), progressbar.OptionSetDescription("merging"))
			for i := 0; i < len(stripped); i += mergeExecuteChunk {
				end := i + mergeExecuteChunk
				if end > len(stripped) {
					end = len(stripped)
				}
				if err := x.Execute([]string(stripped[i:end])...); err != nil {
					return err
				}
				_ = bar.Add(end - i)
			}
			fmt.Println()

			if err := saveExecutor(ctx, s, x); err != nil {
				return err
			}

			color.Green("merged %s into %s: stripped %d destructive commands", otherVaultID, gf.vaultID, report.TotalStripped)
			for short, n := range report.StrippedByShort {
				fmt.Printf("  %s: %d\n", short, n)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&otherVaultID, "other", "", "vault ID within the same backend to merge in")
	return cmd
}
