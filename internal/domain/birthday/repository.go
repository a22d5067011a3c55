package birthday

import "context"

// AccountPage is one page of a cursored account scan.  NextCursor is opaque
// and only meaningful when HasMore is true.
type AccountPage struct {
	Accounts   []Account
	NextCursor string
	HasMore    bool
}

// PersonPage is one page of a cursored person scan within an account.
type PersonPage struct {
	People     []Person
	NextCursor string
	HasMore    bool
}

// AccountStore lists accounts in stable order for batch scans.
type AccountStore interface {
	// ListAccounts returns up to pageSize accounts starting after cursor.
	// An empty cursor starts from the beginning.
	ListAccounts(ctx context.Context, cursor string, pageSize int) (AccountPage, error)
}

// PersonStore lists an account's people in stable order for batch scans.
type PersonStore interface {
	ListPeople(ctx context.Context, accountID, cursor string, pageSize int) (PersonPage, error)
}

// SettingsPatch is a partial update of NotificationSettings.  Nil fields
// are left untouched; a pointer to the empty string clears the token.
type SettingsPatch struct {
	Enabled  *bool
	FCMToken *string
}

// SettingsStore reads and patches per-account notification settings.
type SettingsStore interface {
	// GetSettings returns nil with no error when the account has no
	// settings document.
	GetSettings(ctx context.Context, accountID string) (*NotificationSettings, error)
	UpdateSettings(ctx context.Context, accountID string, patch SettingsPatch) error
}
