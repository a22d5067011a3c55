package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	giftapp "github.com/wishwell/wishwell/internal/application/gift"
	domain "github.com/wishwell/wishwell/internal/domain/gift"
	"github.com/wishwell/wishwell/internal/infrastructure/textgen"
)

func newSuggestCmd(opts *rootOptions) *cobra.Command {
	var (
		name         string
		age          int
		relationship string
		country      string
		interests    []string
		notes        string
		accountID    string
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Generate gift suggestions for a person profile",
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

			limiter := giftapp.NewLimiter(mongoStores(db), cfg.Gift.RateLimitMax, cfg.Gift.RateLimitWindow)
			svc := giftapp.NewService(limiter, textgen.NewClient(cfg.TextGen), nil, logger, cfg.Gift.DefaultCountry)

			req := domain.SuggestionRequest{
				AccountID:    accountID,
				Name:         name,
				Relationship: relationship,
				Interests:    interests,
				Notes:        notes,
				Country:      country,
			}
			if cmd.Flags().Changed("age") {
				req.Age = &age
			}

			suggestions, err := svc.Suggest(ctx, req)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(suggestions)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "person's name (required)")
	cmd.Flags().IntVar(&age, "age", 0, "person's age")
	cmd.Flags().StringVar(&relationship, "relationship", "", "relationship to the person")
	cmd.Flags().StringVar(&country, "country", "", "2-letter country code")
	cmd.Flags().StringSliceVar(&interests, "interest", nil, "interest (repeatable)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form preferences")
	cmd.Flags().StringVar(&accountID, "account", "cli", "account id for rate limiting")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
