package main

import (
	"fmt"
	"strings"

	"github.com/lodevcs/lode/pkg/repo"
	"github.com/spf13/cobra"
)

func newBranchCmd() *cobra.Command {
	var deleteBranch string

	cmd := &cobra.Command{
		Use:   "branch [name]",
		Short: "List or create branches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if strings.TrimSpace(deleteBranch) != "" {
				if len(args) > 0 {
					return fmt.Errorf("branch --delete does not accept positional args")
				}
				return r.DeleteBranch(deleteBranch)
			}

			if len(args) == 0 {
				names, err := r.ListBranches()
				if err != nil {
					return err
				}
				current, _ := r.CurrentBranch()
				for _, name := range names {
					marker := "  "
					if name == current {
						marker = "* "
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", marker, name)
				}
				return nil
			}

			head, err := r.ResolveRef("HEAD")
			if err != nil {
				return fmt.Errorf("cannot resolve HEAD: %w", err)
			}
			return r.CreateBranch(args[0], head)
		},
	}

	cmd.Flags().StringVarP(&deleteBranch, "delete", "d", "", "delete the named branch")

	return cmd
}
