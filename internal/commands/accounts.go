package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/upreport/upreport/internal/accounts"
	"github.com/upreport/upreport/internal/model"
	"github.com/upreport/upreport/internal/report"
)

func newAccountsCommand(opts *globalOptions) *cobra.Command {
	var accountType string

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List accounts and balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccounts(cmd, opts, accountType)
		},
	}

	cmd.Flags().StringVar(&accountType, "type", "", "only show accounts of this type (saver, transactional)")

	return cmd
}

func runAccounts(cmd *cobra.Command, opts *globalOptions, accountType string) error {
	var filter model.AccountType
	if accountType != "" {
		if err := filter.UnmarshalText([]byte(strings.ToUpper(accountType))); err != nil {
			return fmt.Errorf("--type: %w", err)
		}
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	client, err := opts.newClient(cmd, cfg)
	if err != nil {
		return err
	}

	accts, err := client.ListAccounts(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing accounts: %w", err)
	}

	svc := accounts.NewService(accts)
	shown := svc.All()
	if filter != "" {
		shown = svc.ByType(filter)
	}
	return report.WriteAccounts(cmd.OutOrStdout(), shown)
}
