package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	vault "github.com/rsms/vaultfmt"
)

func newInspectCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print a vault's dataset and stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			x, s, unsub, err := loadExecutor(ctx)
			if err != nil {
				return err
			}
			defer unsub()
			defer s.Close()

			history := x.GetHistory()
			st, err := vault.StatsOf(history)
			if err != nil {
				return err
			}

			if asJSON {
				out, err := vault.Repr(x.Dataset())
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			color.Cyan("vault %s", gf.vaultID)
			fmt.Printf("commands:    %d\n", st.Commands)
			fmt.Printf("destructive: %d\n", st.Destructive)
			fmt.Printf("groups:      %d\n", st.Groups)
			fmt.Printf("entries:     %d\n", st.Entries)
			fmt.Printf("dirty:       %v\n", x.IsDirty())
			fmt.Printf("flattenable: %v\n", x.CanBeFlattened())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the dataset as JSON instead of a summary")
	return cmd
}
