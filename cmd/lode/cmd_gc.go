package main

import (
	"fmt"

	"github.com/lodevcs/lode/pkg/repo"
	"github.com/spf13/cobra"
)

func newGCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gc",
		Short: "Remove objects unreachable from any ref",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			summary, err := r.GC()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "kept %d object(s), removed %d\n", summary.Kept, summary.Removed)
			return nil
		},
	}
}
