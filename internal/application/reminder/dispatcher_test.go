package reminder

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wishwell/wishwell/internal/domain/birthday"
	"github.com/wishwell/wishwell/internal/infrastructure/monitoring/logging"
	"github.com/wishwell/wishwell/pkg/errors"
)

var testNow = time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC)

type fakeStore struct {
	accounts []birthday.Account
	people   map[string][]birthday.Person
	settings map[string]*birthday.NotificationSettings
	patches  map[string][]birthday.SettingsPatch

	listAccountsErr error
	listPeopleErr   map[string]error
	panicAccounts   map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		people:        map[string][]birthday.Person{},
		settings:      map[string]*birthday.NotificationSettings{},
		patches:       map[string][]birthday.SettingsPatch{},
		listPeopleErr: map[string]error{},
		panicAccounts: map[string]bool{},
	}
}

func (f *fakeStore) ListAccounts(_ context.Context, cursor string, pageSize int) (birthday.AccountPage, error) {
	if f.listAccountsErr != nil {
		return birthday.AccountPage{}, f.listAccountsErr
	}
	start := 0
	if cursor != "" {
		fmt.Sscanf(cursor, "%d", &start)
	}
	end := start + pageSize
	if end > len(f.accounts) {
		end = len(f.accounts)
	}
	return birthday.AccountPage{
		Accounts:   f.accounts[start:end],
		NextCursor: fmt.Sprintf("%d", end),
		HasMore:    end < len(f.accounts),
	}, nil
}

func (f *fakeStore) ListPeople(_ context.Context, accountID, cursor string, pageSize int) (birthday.PersonPage, error) {
	if f.panicAccounts[accountID] {
		panic("corrupt account document")
	}
	if err := f.listPeopleErr[accountID]; err != nil {
		return birthday.PersonPage{}, err
	}
	people := f.people[accountID]
	start := 0
	if cursor != "" {
		fmt.Sscanf(cursor, "%d", &start)
	}
	end := start + pageSize
	if end > len(people) {
		end = len(people)
	}
	return birthday.PersonPage{
		People:     people[start:end],
		NextCursor: fmt.Sprintf("%d", end),
		HasMore:    end < len(people),
	}, nil
}

func (f *fakeStore) GetSettings(_ context.Context, accountID string) (*birthday.NotificationSettings, error) {
	return f.settings[accountID], nil
}

func (f *fakeStore) UpdateSettings(_ context.Context, accountID string, patch birthday.SettingsPatch) error {
	f.patches[accountID] = append(f.patches[accountID], patch)
	s := f.settings[accountID]
	if s != nil {
		if patch.Enabled != nil {
			s.Enabled = *patch.Enabled
		}
		if patch.FCMToken != nil {
			s.FCMToken = *patch.FCMToken
		}
	}
	return nil
}

type sentMessage struct {
	token string
	n     Notification
}

type fakeSender struct {
	sent    []sentMessage
	failFor map[string]error
}

func newFakeSender() *fakeSender {
	return &fakeSender{failFor: map[string]error{}}
}

func (f *fakeSender) Send(_ context.Context, token string, n Notification) error {
	if err, ok := f.failFor[token]; ok {
		return err
	}
	f.sent = append(f.sent, sentMessage{token: token, n: n})
	return nil
}

func newDispatcher(store *fakeStore, sender *fakeSender) *Dispatcher {
	d := NewDispatcher(store, store, store, sender, nil, logging.NewNopLogger(),
		Config{AccountPageSize: 2, PersonPageSize: 2})
	return d.WithClock(func() time.Time { return testNow })
}

func enabledSettings(token string, defaults ...birthday.Timing) *birthday.NotificationSettings {
	return &birthday.NotificationSettings{Enabled: true, FCMToken: token, DefaultTimings: defaults}
}

func TestDispatcherSendsMatchedReminders(t *testing.T) {
	store := newFakeStore()
	store.accounts = []birthday.Account{{ID: "a1"}}
	store.settings["a1"] = enabledSettings("tok-1", birthday.TimingOnTheDay)
	store.people["a1"] = []birthday.Person{
		{ID: "p1", Name: "Alice", DateOfBirth: "1990-03-15"},
		{ID: "p2", Name: "Bob", DateOfBirth: "1985-03-16",
			NotificationTimings: []birthday.Timing{birthday.TimingOneDay}},
		{ID: "p3", Name: "Carol", DateOfBirth: "1970-06-01"},
	}
	sender := newFakeSender()

	sum, err := newDispatcher(store, sender).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sum.RemindersSent != 2 {
		t.Fatalf("sent %d reminders, want 2", sum.RemindersSent)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("sender got %d messages, want 2", len(sender.sent))
	}
	if sender.sent[0].n.Title != "Birthday Reminder" {
		t.Errorf("title = %q", sender.sent[0].n.Title)
	}
	if sender.sent[0].n.Body != "Alice's birthday is today!" {
		t.Errorf("body = %q", sender.sent[0].n.Body)
	}
	if sender.sent[1].n.Body != "Bob's birthday is tomorrow!" {
		t.Errorf("body = %q", sender.sent[1].n.Body)
	}
}

func TestDispatcherSkipsUndeliverableAccounts(t *testing.T) {
	store := newFakeStore()
	store.accounts = []birthday.Account{{ID: "none"}, {ID: "off"}, {ID: "tokenless"}}
	store.settings["off"] = &birthday.NotificationSettings{Enabled: false, FCMToken: "tok"}
	store.settings["tokenless"] = &birthday.NotificationSettings{Enabled: true}
	for _, id := range []string{"none", "off", "tokenless"} {
		store.people[id] = []birthday.Person{{ID: "p", Name: "P", DateOfBirth: "1990-03-15",
			NotificationTimings: []birthday.Timing{birthday.TimingOnTheDay}}}
	}
	sender := newFakeSender()

	sum, err := newDispatcher(store, sender).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sum.AccountsScanned != 3 {
		t.Errorf("scanned %d, want 3", sum.AccountsScanned)
	}
	if len(sender.sent) != 0 {
		t.Errorf("sent %d messages, want 0", len(sender.sent))
	}
}

func TestDispatcherSkipsMalformedDates(t *testing.T) {
	store := newFakeStore()
	store.accounts = []birthday.Account{{ID: "a1"}}
	store.settings["a1"] = enabledSettings("tok", birthday.TimingOnTheDay)
	store.people["a1"] = []birthday.Person{
		{ID: "bad", Name: "Broken", DateOfBirth: "15/03/1990"},
		{ID: "ok", Name: "Alice", DateOfBirth: "1990-03-15"},
	}
	sender := newFakeSender()

	sum, err := newDispatcher(store, sender).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sum.PeopleSkipped != 1 {
		t.Errorf("skipped %d people, want 1", sum.PeopleSkipped)
	}
	if sum.RemindersSent != 1 {
		t.Errorf("sent %d reminders, want 1", sum.RemindersSent)
	}
}

func TestDispatcherDisablesDeadToken(t *testing.T) {
	store := newFakeStore()
	store.accounts = []birthday.Account{{ID: "a1"}}
	store.settings["a1"] = enabledSettings("dead-tok", birthday.TimingOnTheDay)
	store.people["a1"] = []birthday.Person{
		{ID: "p1", Name: "Alice", DateOfBirth: "1990-03-15"},
		{ID: "p2", Name: "Bob", DateOfBirth: "1991-03-15"},
	}
	sender := newFakeSender()
	sender.failFor["dead-tok"] = errors.New(errors.ErrCodeDeliveryTokenInvalid, "unregistered")

	sum, err := newDispatcher(store, sender).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sum.TokensInvalidated != 1 {
		t.Errorf("invalidated %d tokens, want 1", sum.TokensInvalidated)
	}
	if sum.RemindersSent != 0 {
		t.Errorf("sent %d reminders, want 0", sum.RemindersSent)
	}

	patches := store.patches["a1"]
	if len(patches) != 1 {
		t.Fatalf("got %d patches, want 1", len(patches))
	}
	p := patches[0]
	if p.Enabled == nil || *p.Enabled {
		t.Error("patch did not disable delivery")
	}
	if p.FCMToken == nil || *p.FCMToken != "" {
		t.Error("patch did not clear the token")
	}
	if s := store.settings["a1"]; s.Enabled || s.FCMToken != "" {
		t.Errorf("settings after patch = %+v", s)
	}
}

func TestDispatcherIsolatesFailingAccounts(t *testing.T) {
	store := newFakeStore()
	store.accounts = []birthday.Account{{ID: "boom"}, {ID: "panics"}, {ID: "a1"}}
	store.settings["boom"] = enabledSettings("tok-b", birthday.TimingOnTheDay)
	store.settings["panics"] = enabledSettings("tok-p", birthday.TimingOnTheDay)
	store.settings["a1"] = enabledSettings("tok-1", birthday.TimingOnTheDay)
	store.listPeopleErr["boom"] = fmt.Errorf("connection reset")
	store.panicAccounts["panics"] = true
	store.people["a1"] = []birthday.Person{{ID: "p1", Name: "Alice", DateOfBirth: "1990-03-15"}}
	sender := newFakeSender()

	sum, err := newDispatcher(store, sender).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sum.AccountsFailed != 2 {
		t.Errorf("failed %d accounts, want 2", sum.AccountsFailed)
	}
	if sum.RemindersSent != 1 {
		t.Errorf("sent %d reminders, want 1", sum.RemindersSent)
	}
}

func TestDispatcherContinuesAfterSendFailure(t *testing.T) {
	store := newFakeStore()
	store.accounts = []birthday.Account{{ID: "flaky"}, {ID: "a1"}}
	store.settings["flaky"] = enabledSettings("tok-f", birthday.TimingOnTheDay)
	store.settings["a1"] = enabledSettings("tok-1", birthday.TimingOnTheDay)
	store.people["flaky"] = []birthday.Person{{ID: "p1", Name: "Alice", DateOfBirth: "1990-03-15"}}
	store.people["a1"] = []birthday.Person{{ID: "p2", Name: "Bob", DateOfBirth: "1990-03-15"}}
	sender := newFakeSender()
	sender.failFor["tok-f"] = errors.New(errors.ErrCodeDeliveryFailed, "transport unavailable")

	sum, err := newDispatcher(store, sender).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sum.SendFailures != 1 {
		t.Errorf("send failures = %d, want 1", sum.SendFailures)
	}
	if sum.AccountsFailed != 0 {
		t.Errorf("accounts failed = %d, want 0", sum.AccountsFailed)
	}
	if sum.RemindersSent != 1 {
		t.Errorf("sent %d reminders, want 1", sum.RemindersSent)
	}
	// No settings patch for a transient failure.
	if len(store.patches["flaky"]) != 0 {
		t.Errorf("transient failure patched settings: %v", store.patches["flaky"])
	}
}

func TestDispatcherPaginates(t *testing.T) {
	store := newFakeStore()
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("a%d", i)
		store.accounts = append(store.accounts, birthday.Account{ID: id})
		store.settings[id] = enabledSettings("tok-"+id, birthday.TimingOnTheDay)
		for j := 0; j < 5; j++ {
			store.people[id] = append(store.people[id], birthday.Person{
				ID:          fmt.Sprintf("%s-p%d", id, j),
				Name:        fmt.Sprintf("Person %d", j),
				DateOfBirth: "1990-03-15",
			})
		}
	}
	sender := newFakeSender()

	// Page sizes of 2 force multiple pages on both scans.
	sum, err := newDispatcher(store, sender).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sum.AccountsScanned != 5 {
		t.Errorf("scanned %d accounts, want 5", sum.AccountsScanned)
	}
	if sum.RemindersSent != 25 {
		t.Errorf("sent %d reminders, want 25", sum.RemindersSent)
	}
}

func TestDispatcherSendsOneReminderPerMatchedTiming(t *testing.T) {
	store := newFakeStore()
	store.accounts = []birthday.Account{{ID: "a1"}}
	store.settings["a1"] = enabledSettings("tok-1")
	store.people["a1"] = []birthday.Person{{
		ID: "p1", Name: "Alice", DateOfBirth: "1990-03-15",
		NotificationTimings: []birthday.Timing{birthday.TimingOnTheDay, birthday.TimingOnTheDay},
	}}
	sender := newFakeSender()

	sum, err := newDispatcher(store, sender).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sum.RemindersSent != 2 {
		t.Fatalf("sent %d reminders, want one per matched timing", sum.RemindersSent)
	}
	for _, m := range sender.sent {
		if m.n.Body != "Alice's birthday is today!" {
			t.Errorf("body = %q", m.n.Body)
		}
	}
}

func TestDispatcherLogsDroppedRemindersOnDeadToken(t *testing.T) {
	store := newFakeStore()
	store.accounts = []birthday.Account{{ID: "a1"}}
	store.settings["a1"] = enabledSettings("dead-tok", birthday.TimingOnTheDay)
	store.people["a1"] = []birthday.Person{
		{ID: "p1", Name: "Alice", DateOfBirth: "1990-03-15"},
		{ID: "p2", Name: "Bob", DateOfBirth: "1991-03-15"},
		{ID: "p3", Name: "Carol", DateOfBirth: "1992-03-15"},
	}
	sender := newFakeSender()
	sender.failFor["dead-tok"] = errors.New(errors.ErrCodeDeliveryTokenInvalid, "unregistered")

	core, observed := observer.New(zapcore.WarnLevel)
	d := NewDispatcher(store, store, store, sender, nil, logging.NewLoggerFromCore(core),
		Config{AccountPageSize: 2, PersonPageSize: 2}).
		WithClock(func() time.Time { return testNow })

	if _, err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	entries := observed.FilterMessage("dead token, delivery disabled").All()
	if len(entries) != 1 {
		t.Fatalf("got %d dead-token warnings, want 1", len(entries))
	}
	if dropped, ok := entries[0].ContextMap()["reminders_dropped"]; !ok || dropped != int64(2) {
		t.Errorf("reminders_dropped = %v, want 2", dropped)
	}
}

func TestDispatcherAccountEnumerationError(t *testing.T) {
	store := newFakeStore()
	store.listAccountsErr = fmt.Errorf("primary stepped down")
	sender := newFakeSender()

	_, err := newDispatcher(store, sender).Run(context.Background())
	if err == nil {
		t.Fatal("Run succeeded, want error")
	}
	if !errors.IsCode(err, errors.ErrCodeDatabaseError) {
		t.Errorf("error code = %v", errors.GetCode(err))
	}
}
