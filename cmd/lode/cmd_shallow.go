package main

import (
	"fmt"

	"github.com/lodevcs/lode/pkg/object"
	"github.com/lodevcs/lode/pkg/repo"
	"github.com/spf13/cobra"
)

func newShallowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shallow",
		Short: "Manage grafted history roots",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List grafted root hashes",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			set, err := r.Shallow()
			if err != nil {
				return err
			}
			for _, h := range set.Hashes() {
				fmt.Fprintln(cmd.OutOrStdout(), h)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <hash>",
		Short: "Mark a commit as a grafted root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			return r.AddShallow(object.Hash(args[0]))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <hash>",
		Short: "Unmark a grafted root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			return r.RemoveShallow(object.Hash(args[0]))
		},
	})

	return cmd
}
