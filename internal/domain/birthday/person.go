package birthday

import "time"

// PastGift records a gift given in a previous year, with an optional
// 1-5 star rating.
type PastGift struct {
	Year        int    `json:"year" bson:"year"`
	Description string `json:"description" bson:"description"`
	Rating      *int   `json:"rating,omitempty" bson:"rating,omitempty"`
}

// SocialLink points at a person's profile on an external platform.
type SocialLink struct {
	Platform string `json:"platform" bson:"platform"`
	URL      string `json:"url" bson:"url"`
}

// Person is a tracked contact.  DateOfBirth carries the canonical
// "YYYY-MM-DD" form ("0000" year when unknown); parse it with BirthDate at
// the point of use so a malformed record can be skipped rather than sinking
// a whole batch.
type Person struct {
	ID                  string       `json:"id" bson:"_id"`
	Name                string       `json:"name" bson:"name"`
	DateOfBirth         string       `json:"dateOfBirth" bson:"dateOfBirth"`
	Relationship        string       `json:"relationship,omitempty" bson:"relationship,omitempty"`
	Interests           []string     `json:"interests,omitempty" bson:"interests,omitempty"`
	GiftIdeas           []string     `json:"giftIdeas,omitempty" bson:"giftIdeas,omitempty"`
	PastGifts           []PastGift   `json:"pastGifts,omitempty" bson:"pastGifts,omitempty"`
	SocialLinks         []SocialLink `json:"socialLinks,omitempty" bson:"socialLinks,omitempty"`
	Notes               string       `json:"notes,omitempty" bson:"notes,omitempty"`
	NotificationTimings []Timing     `json:"notificationTimings,omitempty" bson:"notificationTimings,omitempty"`
	CreatedAt           time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// BirthDate parses the person's stored date of birth.
func (p Person) BirthDate() (PartialDate, error) {
	return ParseDate(p.DateOfBirth)
}

// Timings returns the person's reminder timings, falling back to the
// account defaults when the person has none of their own.
func (p Person) Timings(defaults []Timing) []Timing {
	if len(p.NotificationTimings) > 0 {
		return p.NotificationTimings
	}
	return defaults
}

// Account identifies a tenant whose people are scanned by the daily
// dispatch.
type Account struct {
	ID string `json:"id" bson:"_id"`
}

// NotificationSettings is an account's push-delivery state.  An empty
// FCMToken means no registered device.
type NotificationSettings struct {
	Enabled        bool     `json:"enabled" bson:"enabled"`
	DefaultTimings []Timing `json:"defaultTimings,omitempty" bson:"defaultTimings,omitempty"`
	FCMToken       string   `json:"fcmToken,omitempty" bson:"fcmToken,omitempty"`
}
