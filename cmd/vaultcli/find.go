package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"
)

func newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Fuzzy-search group titles and entry property values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			ctx := context.Background()
			x, s, unsub, err := loadExecutor(ctx)
			if err != nil {
				return err
			}
			defer unsub()
			defer s.Close()

			d := x.Dataset()

			var candidates []string
			labels := map[string]string{}
			for _, g := range d.GetAllGroups() {
				if g.Title == "" {
					continue
				}
				candidates = append(candidates, g.Title)
				labels[g.Title] = fmt.Sprintf("group %s", g.ID)
			}
			for _, e := range d.GetAllEntries() {
				for _, v := range e.Properties {
					if v == "" {
						continue
					}
					candidates = append(candidates, v)
					labels[v] = fmt.Sprintf("entry %s", e.ID)
				}
			}

			matches := fuzzy.RankFindFold(query, candidates)
			if len(matches) == 0 {
				color.Yellow("no matches for %q", query)
				return nil
			}
			for _, m := range matches {
				fmt.Printf("%s\t%s\n", color.CyanString(labels[m.Target]), m.Target)
			}
			return nil
		},
	}
	return cmd
}
