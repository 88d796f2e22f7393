package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/upreport/upreport/internal/buildinfo"
	"github.com/upreport/upreport/internal/config"
	"github.com/upreport/upreport/internal/logging"
	"github.com/upreport/upreport/internal/report"
	"github.com/upreport/upreport/internal/upbank"
)

// now is replaced in tests.
var now = time.Now

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	debug      bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
// Run without a subcommand it prints the full accounts and transactions report.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}
	var days int

	rootCmd := &cobra.Command{
		Use:     "upreport",
		Short:   "Print a report of your Up bank accounts and recent transactions",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, days)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $HOME/.config/upreport/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log each API page to stderr")
	rootCmd.Flags().IntVar(&days, "days", 0, "report transactions from the last N days (default from config, 7)")

	rootCmd.AddCommand(newAccountsCommand(opts))
	rootCmd.AddCommand(newTransactionsCommand(opts))
	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}

func runReport(cmd *cobra.Command, opts *globalOptions, days int) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	client, err := opts.newClient(cmd, cfg)
	if err != nil {
		return err
	}
	if days == 0 {
		days = cfg.Days
	}
	if days < 0 {
		return fmt.Errorf("--days must be positive, got %d", days)
	}

	ctx := cmd.Context()
	accts, err := client.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("listing accounts: %w", err)
	}
	txns, err := client.ListTransactionsSince(ctx, now().AddDate(0, 0, -days))
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}

	return report.Write(cmd.OutOrStdout(), accts, txns)
}

// loadConfig reads and validates the configuration before any request is made.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (o *globalOptions) newClient(cmd *cobra.Command, cfg *config.Config) (*upbank.Client, error) {
	logger := logging.Setup(cmd.ErrOrStderr(), o.debug)
	logger.WithField("base_url", cfg.BaseURL).Debug("Commands.NewClient")

	client, err := upbank.New(cfg.APIKey,
		upbank.WithBaseURL(cfg.BaseURL),
		upbank.WithTimeout(cfg.Timeout),
		upbank.WithPageSize(cfg.PageSize),
		upbank.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}
	return client, nil
}
