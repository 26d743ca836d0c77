package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"portfolio_dashboard/internal/app/service"
	"portfolio_dashboard/internal/app/valuation"
	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/infrastructure/configloader"
	"portfolio_dashboard/internal/pkg/utils"

	"github.com/spf13/cobra"
)

const commandTimeout = 2 * time.Minute

func newRootCmd() *cobra.Command {
	var (
		configPath string
		tokenPath  string
		verbose    bool
		a          *app
	)

	root := &cobra.Command{
		Use:           "portfolioctl",
		Short:         "Inspect your crypto portfolio from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a, err = newApp(configPath, tokenPath, verbose)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a != nil {
				_ = a.zap.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", utils.GetEnv("CONFIG_PATH", configloader.DefaultPath), "path to the YAML configuration")
	root.PersistentFlags().StringVar(&tokenPath, "token-file", "", "where the session token is stored (default: user config dir)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log backend calls")

	appFn := func() *app { return a }
	root.AddCommand(
		newLoginCmd(appFn),
		newSummaryCmd(appFn),
		newTokensCmd(appFn),
		newExportCmd(appFn),
		newWatchCmd(appFn),
		newWalletsCmd(appFn),
		newBansCmd(appFn),
	)
	return root
}

func newLoginCmd(a func() *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("PORTFOLIO_PASSWORD")
			}
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password (or PORTFOLIO_PASSWORD) are required")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			result, err := a().backend.Login(ctx, entity.Credentials{Username: username, Password: password})
			if err != nil {
				return err
			}
			if err := a().saveToken(result.Token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", result.User.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func newSummaryCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the portfolio total and per-wallet values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a().session()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			d, err := a().portfolio.RefreshDashboard(ctx, sess)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func newTokensCmd(a func() *app) *cobra.Command {
	var (
		search, sort, direction string
		includeNFTs             bool
	)
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "List aggregated tokens across all wallets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a().session()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			page, err := a().portfolio.ListTokens(ctx, sess, queryFrom(search, sort, direction, includeNFTs), 1, 0)
			if err != nil {
				return err
			}
			return printTokens(cmd.OutOrStdout(), page.Tokens)
		},
	}
	addQueryFlags(cmd, &search, &sort, &direction, &includeNFTs)
	return cmd
}

func newExportCmd(a func() *app) *cobra.Command {
	var (
		search, sort, direction string
		includeNFTs             bool
		output                  string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the token table as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a().session()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			var buf bytes.Buffer
			if err := a().portfolio.ExportCSV(ctx, sess, queryFrom(search, sort, direction, includeNFTs), &buf); err != nil {
				return err
			}
			if output == "-" {
				_, err := buf.WriteTo(cmd.OutOrStdout())
				return err
			}
			if output == "" {
				output = filepath.Join(a().cfg.Export.Directory, valuation.ExportFileName(time.Now()))
			}
			if err := utils.WriteFileAtomic(output, buf.Bytes()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
			return nil
		},
	}
	addQueryFlags(cmd, &search, &sort, &direction, &includeNFTs)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: export directory)")
	return cmd
}

// newWatchCmd keeps the snapshot fresh with the market refresher and prints
// the total after every refresh until interrupted.
func newWatchCmd(a func() *app) *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh market data periodically and print the total",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a().session()
			if err != nil {
				return err
			}
			if interval <= 0 {
				interval = a().cfg.Portfolio.RefreshInterval()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			d, err := a().portfolio.GetDashboard(ctx, sess)
			if err != nil {
				return err
			}
			printTotal(out, d)

			refresher := service.NewMarketRefresher(a().portfolio, a().logger, interval)
			done := make(chan struct{})
			go func() {
				defer close(done)
				refresher.Run(ctx)
			}()

			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			last := d.GeneratedAt
			for {
				select {
				case <-ctx.Done():
					<-done
					return a().portfolio.Close(context.Background())
				case <-ticker.C:
					d, err := a().portfolio.GetDashboard(ctx, sess)
					if err != nil {
						fmt.Fprintln(out, "refresh failed:", err)
						continue
					}
					if d.GeneratedAt.After(last) {
						last = d.GeneratedAt
						printTotal(out, d)
					}
				}
			}
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "refresh interval (default: portfolio.marketRefreshIntervalSeconds)")
	return cmd
}

func addQueryFlags(cmd *cobra.Command, search, sort, direction *string, includeNFTs *bool) {
	cmd.Flags().StringVarP(search, "search", "s", "", "filter by symbol or name")
	cmd.Flags().StringVar(sort, "sort", string(entity.SortByValue), "value, name, price or change")
	cmd.Flags().StringVar(direction, "direction", string(entity.SortDesc), "asc or desc")
	cmd.Flags().BoolVar(includeNFTs, "nfts", true, "include the NFT collection row")
}

func queryFrom(search, sort, direction string, includeNFTs bool) entity.TokenQuery {
	return entity.TokenQuery{
		Search:      search,
		Sort:        entity.ParseSortField(sort),
		Direction:   entity.ParseSortDirection(direction),
		IncludeNFTs: includeNFTs,
	}
}

func printTokens(w io.Writer, rows []entity.TokenRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tTYPE\tBALANCE\tPRICE\tVALUE\tSHARE\tWALLETS")
	for _, r := range rows {
		price := "N/A"
		if p := r.Price(); p > 0 {
			price = formatUSD(p)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f%%\t%d\n",
			r.Symbol, r.Type, r.DisplayBalance, price, formatUSD(r.ValueUSD), r.PortfolioPercentage, len(r.Wallets))
	}
	return tw.Flush()
}
