package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/upreport/upreport/internal/accounts"
	"github.com/upreport/upreport/internal/model"
	"github.com/upreport/upreport/internal/report"
)

func newTransactionsCommand(opts *globalOptions) *cobra.Command {
	var days int
	var since string
	var account string

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List recent transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransactions(cmd, opts, days, since, account)
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "transactions from the last N days (default from config, 7)")
	cmd.Flags().StringVar(&since, "since", "", "transactions since this RFC 3339 timestamp")
	cmd.Flags().StringVar(&account, "account", "", "only this account (id or display name)")
	cmd.MarkFlagsMutuallyExclusive("days", "since")

	return cmd
}

func runTransactions(cmd *cobra.Command, opts *globalOptions, days int, since, account string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	var cutoff time.Time
	switch {
	case since != "":
		cutoff, err = time.Parse(time.RFC3339, since)
		if err != nil {
			return fmt.Errorf("parsing --since %q: %w", since, err)
		}
	case days < 0:
		return fmt.Errorf("--days must be positive, got %d", days)
	default:
		if days == 0 {
			days = cfg.Days
		}
		cutoff = now().AddDate(0, 0, -days)
	}

	client, err := opts.newClient(cmd, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var txns []model.Transaction
	if account == "" {
		txns, err = client.ListTransactionsSince(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("listing transactions: %w", err)
		}
		return report.WriteTransactions(cmd.OutOrStdout(), txns)
	}

	accts, err := client.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("listing accounts: %w", err)
	}
	acct, err := accounts.NewService(accts).Find(account)
	if err != nil {
		return err
	}
	txns, err = client.ListAccountTransactionsSince(ctx, acct.ID, cutoff)
	if err != nil {
		return fmt.Errorf("listing transactions for %s: %w", acct.Attributes.DisplayName, err)
	}
	return report.WriteTransactions(cmd.OutOrStdout(), txns)
}
