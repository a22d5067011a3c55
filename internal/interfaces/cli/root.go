// Package cli implements the operator command line: one-shot dispatch
// runs, ad-hoc gift suggestions, and upcoming-birthday listings.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wishwell/wishwell/internal/config"
	"github.com/wishwell/wishwell/internal/infrastructure/database/mongo"
	"github.com/wishwell/wishwell/internal/infrastructure/monitoring/logging"
)

type rootOptions struct {
	configFile string
}

// NewRootCmd assembles the wishwellctl command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "wishwellctl",
		Short:         "Operator tooling for the Wishwell backend",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "path to config file")

	root.AddCommand(
		newDispatchCmd(opts),
		newSuggestCmd(opts),
		newUpcomingCmd(opts),
	)
	return root
}

// bootstrap loads config and builds the logger shared by all commands.
func (o *rootOptions) bootstrap() (*config.Config, logging.Logger, error) {
	var cfg *config.Config
	var err error
	if o.configFile != "" {
		cfg, err = config.Load(o.configFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.NewLogger(logging.LogConfig(cfg.Log))
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

// connectMongo dials the document store for commands that need it.
func connectMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	client, err := mongo.NewClient(ctx, cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("connect document store: %w", err)
	}
	return client, nil
}
