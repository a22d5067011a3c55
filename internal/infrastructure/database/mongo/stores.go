package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wishwell/wishwell/internal/domain/birthday"
	"github.com/wishwell/wishwell/internal/domain/gift"
	"github.com/wishwell/wishwell/pkg/errors"
)

const (
	collAccounts   = "accounts"
	collPeople     = "people"
	collSettings   = "notification_settings"
	collRateLimits = "rate_limits"
)

// Stores implements the document-store ports over one database.  Pages are
// cursored on _id, which the driver returns in a stable ascending order
// under the sort applied here.
type Stores struct {
	db *mongo.Database
}

// NewStores builds the port implementations over a connected client.
func NewStores(c *Client) *Stores {
	return &Stores{db: c.Database()}
}

// idPageFilter builds the resume filter for an _id-cursored scan.
func idPageFilter(base bson.M, cursor string) bson.M {
	if cursor == "" {
		return base
	}
	filter := bson.M{"_id": bson.M{"$gt": cursor}}
	for k, v := range base {
		filter[k] = v
	}
	return filter
}

// findOptions requests one extra row so the page can report HasMore
// without a second round trip.
func findOptions(pageSize int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(pageSize) + 1)
}

// ListAccounts implements birthday.AccountStore.
func (s *Stores) ListAccounts(ctx context.Context, cursor string, pageSize int) (birthday.AccountPage, error) {
	cur, err := s.db.Collection(collAccounts).Find(ctx, idPageFilter(bson.M{}, cursor), findOptions(pageSize))
	if err != nil {
		return birthday.AccountPage{}, errors.Wrap(err, errors.ErrCodeDatabaseError, "list accounts")
	}
	var rows []birthday.Account
	if err := cur.All(ctx, &rows); err != nil {
		return birthday.AccountPage{}, errors.Wrap(err, errors.ErrCodeDatabaseError, "decode accounts")
	}

	page := birthday.AccountPage{}
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		page.HasMore = true
	}
	page.Accounts = rows
	if len(rows) > 0 {
		page.NextCursor = rows[len(rows)-1].ID
	}
	return page, nil
}

// ListPeople implements birthday.PersonStore.
func (s *Stores) ListPeople(ctx context.Context, accountID, cursor string, pageSize int) (birthday.PersonPage, error) {
	filter := idPageFilter(bson.M{"accountId": accountID}, cursor)
	cur, err := s.db.Collection(collPeople).Find(ctx, filter, findOptions(pageSize))
	if err != nil {
		return birthday.PersonPage{}, errors.Wrap(err, errors.ErrCodeDatabaseError, "list people")
	}
	var rows []birthday.Person
	if err := cur.All(ctx, &rows); err != nil {
		return birthday.PersonPage{}, errors.Wrap(err, errors.ErrCodeDatabaseError, "decode people")
	}

	page := birthday.PersonPage{}
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		page.HasMore = true
	}
	page.People = rows
	if len(rows) > 0 {
		page.NextCursor = rows[len(rows)-1].ID
	}
	return page, nil
}

// GetSettings implements birthday.SettingsStore.
func (s *Stores) GetSettings(ctx context.Context, accountID string) (*birthday.NotificationSettings, error) {
	var settings birthday.NotificationSettings
	err := s.db.Collection(collSettings).FindOne(ctx, bson.M{"_id": accountID}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "get settings")
	}
	return &settings, nil
}

// UpdateSettings implements birthday.SettingsStore with merge semantics:
// only the fields present in the patch are touched.
func (s *Stores) UpdateSettings(ctx context.Context, accountID string, patch birthday.SettingsPatch) error {
	set := bson.M{}
	if patch.Enabled != nil {
		set["enabled"] = *patch.Enabled
	}
	if patch.FCMToken != nil {
		set["fcmToken"] = *patch.FCMToken
	}
	if len(set) == 0 {
		return nil
	}
	set["updatedAt"] = time.Now().UTC()
	_, err := s.db.Collection(collSettings).UpdateOne(ctx,
		bson.M{"_id": accountID},
		bson.M{"$set": set},
		options.Update().SetUpsert(true))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "update settings")
	}
	return nil
}

// GetRateLimit implements gift.RateLimitStore.
func (s *Stores) GetRateLimit(ctx context.Context, accountID string) (*gift.RateLimitRecord, error) {
	var record gift.RateLimitRecord
	err := s.db.Collection(collRateLimits).FindOne(ctx, bson.M{"_id": accountID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "get rate limit")
	}
	return &record, nil
}

// SetRateLimit implements gift.RateLimitStore.
func (s *Stores) SetRateLimit(ctx context.Context, accountID string, record gift.RateLimitRecord) error {
	_, err := s.db.Collection(collRateLimits).UpdateOne(ctx,
		bson.M{"_id": accountID},
		bson.M{"$set": bson.M{"timestamps": record.Timestamps}},
		options.Update().SetUpsert(true))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "set rate limit")
	}
	return nil
}

var (
	_ birthday.AccountStore  = (*Stores)(nil)
	_ birthday.PersonStore   = (*Stores)(nil)
	_ birthday.SettingsStore = (*Stores)(nil)
	_ gift.RateLimitStore    = (*Stores)(nil)
)
