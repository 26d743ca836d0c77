package main

import (
	"context"
	"fmt"

	"portfolio_dashboard/internal/infrastructure/tokenloader"
	"portfolio_dashboard/internal/infrastructure/walletloader"

	"github.com/spf13/cobra"
)

func newWalletsCmd(a func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallets",
		Short: "Manage registered wallets",
	}

	var dryRun bool
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Register every wallet listed in a file (CHAIN ADDRESS [NAME] per line)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := walletloader.NewWalletFileLoader(a().chains, a().logger)
			wallets, skipped, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range skipped {
				fmt.Fprintf(out, "line %d skipped: %s\n", s.Line, s.Reason)
			}
			if dryRun {
				for _, w := range wallets {
					fmt.Fprintf(out, "would add %s %s %s\n", w.Chain, w.Address, w.Name)
				}
				return nil
			}

			sess, err := a().session()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			added := 0
			for _, w := range wallets {
				if _, err := a().backend.CreateWallet(ctx, sess, w); err != nil {
					fmt.Fprintf(out, "%s %s failed: %v\n", w.Chain, w.Address, err)
					continue
				}
				added++
			}
			fmt.Fprintf(out, "Added %d of %d wallets\n", added, len(wallets))
			return nil
		},
	}
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the file without registering anything")
	cmd.AddCommand(importCmd)
	return cmd
}

func newBansCmd(a func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bans",
		Short: "Manage banned tokens",
	}

	importCmd := &cobra.Command{
		Use:   "import <file-or-dir>",
		Short: "Ban every token listed in a JSON file or a directory of JSON files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := tokenloader.NewBanListLoader(a().logger).Load(args[0])
			if err != nil {
				return err
			}
			sess, err := a().session()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			out := cmd.OutOrStdout()
			banned := 0
			for _, e := range entries {
				if _, err := a().backend.BanToken(ctx, sess, e); err != nil {
					fmt.Fprintf(out, "%s failed: %v\n", e.Address, err)
					continue
				}
				banned++
			}
			fmt.Fprintf(out, "Banned %d of %d tokens\n", banned, len(entries))
			return nil
		},
	}
	cmd.AddCommand(importCmd)
	return cmd
}
