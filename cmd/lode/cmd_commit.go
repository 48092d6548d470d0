package main

import (
	"fmt"
	"strings"

	"github.com/lodevcs/lode/pkg/repo"
	"github.com/spf13/cobra"
)

func newCommitCmd() *cobra.Command {
	var message string
	var author string
	var sign bool
	var signingKey string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record the staged tree as a new commit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(message) == "" {
				return fmt.Errorf("commit message is required (-m)")
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			cfg, err := r.ReadConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(author) == "" {
				author = cfg.User.Author()
			}
			if strings.TrimSpace(author) == "" {
				author = "unknown"
			}

			var signer repo.CommitSigner
			if sign {
				keyPath := signingKey
				if strings.TrimSpace(keyPath) == "" {
					keyPath = cfg.User.SigningKey
				}
				s, resolvedPath, err := newSSHCommitSigner(keyPath)
				if err != nil {
					return err
				}
				signer = s
				fmt.Fprintf(cmd.OutOrStdout(), "signing with %s\n", resolvedPath)
			}

			h, err := r.CommitWithSigner(message, author, signer)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", h)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().StringVar(&author, "author", "", "override author (default: config user)")
	cmd.Flags().BoolVar(&sign, "sign", false, "sign the commit with an SSH key")
	cmd.Flags().StringVar(&signingKey, "signing-key", "", "SSH private key path (default: config signing_key, then ~/.ssh)")

	return cmd
}
