package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wishwell/wishwell/internal/application/reminder"
	"github.com/wishwell/wishwell/internal/infrastructure/messaging/fcm"
)

func newDispatchCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Run one reminder dispatch pass over all accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.bootstrap()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			db, err := connectMongo(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(ctx) }()
			stores := mongoStores(db)

			var sender reminder.Sender
			if dryRun {
				sender = logSender{logger}
			} else {
				sender, err = fcm.NewSender(ctx, cfg.FCM)
				if err != nil {
					return fmt.Errorf("init push delivery: %w", err)
				}
			}

			dispatcher := reminder.NewDispatcher(stores, stores, stores, sender, nil, logger, reminder.Config{
				AccountPageSize: cfg.Dispatch.AccountPageSize,
				PersonPageSize:  cfg.Dispatch.PersonPageSize,
			})
			sum, err := dispatcher.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"accounts=%d failed=%d reminders=%d send_failures=%d dead_tokens=%d skipped_people=%d\n",
				sum.AccountsScanned, sum.AccountsFailed, sum.RemindersSent,
				sum.SendFailures, sum.TokensInvalidated, sum.PeopleSkipped)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log reminders instead of delivering them")
	return cmd
}
