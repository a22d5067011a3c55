package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wishwell/wishwell/internal/domain/birthday"
)

func newUpcomingCmd(opts *rootOptions) *cobra.Command {
	var (
		accountID string
		within    int
	)

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List an account's upcoming birthdays, soonest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := opts.bootstrap()
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

			var people []birthday.Person
			cursor := ""
			for {
				page, err := stores.ListPeople(ctx, accountID, cursor, cfg.Dispatch.PersonPageSize)
				if err != nil {
					return err
				}
				people = append(people, page.People...)
				if !page.HasMore {
					break
				}
				cursor = page.NextCursor
			}

			now := time.Now()
			for _, u := range birthday.Upcoming(people, now) {
				if within > 0 && u.DaysUntil > within {
					break
				}
				age := "-"
				if u.HasAge {
					age = fmt.Sprintf("%d", u.Age)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-25s %s  in %3d days  turning %s\n",
					u.Person.Name, u.Date.Format("2006-01-02"), u.DaysUntil, age)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&accountID, "account", "", "account id (required)")
	cmd.Flags().IntVar(&within, "within", 0, "only show birthdays within N days")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}
