package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hiremenot/internal/roasts"
	"hiremenot/internal/shared/config"
	"hiremenot/internal/shared/util"
)

const previewLength = 50

func newTopCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the most upvoted roasts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			repo, closeRepo, err := openRepo(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}
			defer closeRepo()

			items, err := repo.ListTopRanked(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printRoasts(cmd.OutOrStdout(), items)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of roasts to show")
	return cmd
}

func newRecentCmd() *cobra.Command {
	var q roasts.ListQuery

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the newest roasts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			repo, closeRepo, err := openRepo(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}
			defer closeRepo()

			items, err := repo.ListRecent(cmd.Context(), q)
			if err != nil {
				return err
			}
			printRoasts(cmd.OutOrStdout(), items)
			return nil
		},
	}
	cmd.Flags().IntVarP(&q.Limit, "limit", "n", 20, "number of roasts to show")
	cmd.Flags().IntVar(&q.Offset, "offset", 0, "number of roasts to skip")
	cmd.Flags().StringVarP(&q.Search, "search", "q", "", "only roasts whose resume text contains this")
	return cmd
}

func printRoasts(w io.Writer, items []roasts.Roast) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no roasts yet")
		return
	}
	for i, r := range items {
		fmt.Fprintf(w, "%2d. [%d] %s  %s\n", i+1, r.Upvotes, r.ID, util.Preview(r.ResumeText, previewLength))
	}
}
