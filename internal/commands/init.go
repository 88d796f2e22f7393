package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/upreport/upreport/internal/config"
)

func newInitCommand() *cobra.Command {
	var apiKey string
	var path string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file holding your personal access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				var err error
				path, err = config.DefaultPath()
				if err != nil {
					return err
				}
			}
			return runInit(cmd, path, apiKey, force)
		},
	}

	cmd.Flags().StringVar(&apiKey, "apikey", "", "personal access token (required)")
	_ = cmd.MarkFlagRequired("apikey")
	cmd.Flags().StringVar(&path, "path", "", "where to write the config (default $HOME/.config/upreport/config.yaml)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func runInit(cmd *cobra.Command, path, apiKey string, force bool) error {
	cfg := config.Default(apiKey)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", path)
	return nil
}
