package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lodevcs/lode/pkg/object"
	"github.com/lodevcs/lode/pkg/repo"
	"github.com/spf13/cobra"
)

func newAncestryCmd() *cobra.Command {
	var finishRefs []string

	cmd := &cobra.Command{
		Use:   "ancestry [ref]...",
		Short: "Print the reverse ancestry map reachable from the given refs",
		Long: "Walks every commit reachable from the given starting refs (all local\n" +
			"branches when none are given) and prints each ancestor followed by the\n" +
			"commits that recorded it as a parent.",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			startRefs := args
			if len(startRefs) == 0 {
				startRefs, err = r.ListStartingRefs()
				if err != nil {
					return err
				}
				if len(startRefs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no branches")
					return nil
				}
			}

			m, err := r.ComputeAncestryMap(startRefs, &repo.AncestryOptions{FinishRefs: finishRefs})
			if err != nil {
				return err
			}

			// Stable output: ancestors sorted by hash.
			ancestors := make([]object.Hash, 0, len(m))
			for h := range m {
				ancestors = append(ancestors, h)
			}
			sort.Slice(ancestors, func(i, j int) bool { return ancestors[i] < ancestors[j] })

			out := cmd.OutOrStdout()
			for _, h := range ancestors {
				children := m[h].Children
				if len(children) == 0 {
					fmt.Fprintf(out, "%s\n", h)
					continue
				}
				parts := make([]string, len(children))
				for i, c := range children {
					parts[i] = string(c)
				}
				fmt.Fprintf(out, "%s <- %s\n", h, strings.Join(parts, " "))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&finishRefs, "finish", nil, "refs whose history the receiver already has (best-effort; unresolved names are skipped)")

	return cmd
}
