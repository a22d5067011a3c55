// Package reminder implements the daily batch dispatch: walk every
// account, match each person's next anniversary against the configured
// lead times, and push at most one reminder per (person, timing) per run.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wishwell/wishwell/internal/domain/birthday"
	"github.com/wishwell/wishwell/internal/infrastructure/monitoring/logging"
	"github.com/wishwell/wishwell/pkg/errors"
)

// Notification is the rendered push payload.
type Notification struct {
	Title string
	Body  string
}

// Sender delivers a push notification to a device token.  A permanently
// dead token is reported with ErrCodeDeliveryTokenInvalid so the dispatcher can
// disable the account's delivery.
type Sender interface {
	Send(ctx context.Context, token string, n Notification) error
}

// Metrics receives dispatch counters.  Implementations must be safe for
// concurrent use.
type Metrics interface {
	AccountScanned()
	AccountFailed()
	ReminderSent()
	SendFailed()
	TokenInvalidated()
	RunCompleted(d time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) AccountScanned()              {}
func (nopMetrics) AccountFailed()               {}
func (nopMetrics) ReminderSent()                {}
func (nopMetrics) SendFailed()                  {}
func (nopMetrics) TokenInvalidated()            {}
func (nopMetrics) RunCompleted(_ time.Duration) {}

// NopMetrics discards all counters.
func NopMetrics() Metrics { return nopMetrics{} }

const reminderTitle = "Birthday Reminder"

// Summary totals one dispatch run.
type Summary struct {
	AccountsScanned   int
	AccountsFailed    int
	RemindersSent     int
	SendFailures      int
	TokensInvalidated int
	PeopleSkipped     int
}

// Config sizes the dispatcher's store scans.
type Config struct {
	AccountPageSize int
	PersonPageSize  int
}

// Dispatcher runs the daily reminder scan.
type Dispatcher struct {
	accounts birthday.AccountStore
	people   birthday.PersonStore
	settings birthday.SettingsStore
	sender   Sender
	metrics  Metrics
	logger   logging.Logger
	cfg      Config
	now      func() time.Time
}

// NewDispatcher wires a dispatcher.  metrics may be nil.
func NewDispatcher(
	accounts birthday.AccountStore,
	people birthday.PersonStore,
	settings birthday.SettingsStore,
	sender Sender,
	metrics Metrics,
	logger logging.Logger,
	cfg Config,
) *Dispatcher {
	if metrics == nil {
		metrics = NopMetrics()
	}
	return &Dispatcher{
		accounts: accounts,
		people:   people,
		settings: settings,
		sender:   sender,
		metrics:  metrics,
		logger:   logger.Named("dispatcher"),
		cfg:      cfg,
		now:      time.Now,
	}
}

// WithClock overrides the dispatcher's clock.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Run walks every account once.  A failing account never sinks the run;
// the error return is reserved for account enumeration itself.  There is
// no intra-day retry: a reminder lost to a transient delivery failure is
// re-evaluated by the next scheduled run.
func (d *Dispatcher) Run(ctx context.Context) (Summary, error) {
	start := d.now()
	runLog := d.logger.With(logging.String("run_id", uuid.NewString()))
	var sum Summary

	cursor := ""
	for {
		page, err := d.accounts.ListAccounts(ctx, cursor, d.cfg.AccountPageSize)
		if err != nil {
			return sum, errors.Wrap(err, errors.ErrCodeDatabaseError, "list accounts")
		}
		for _, acct := range page.Accounts {
			sum.AccountsScanned++
			d.metrics.AccountScanned()
			if err := d.processAccount(ctx, acct.ID, &sum); err != nil {
				sum.AccountsFailed++
				d.metrics.AccountFailed()
				runLog.Error("account dispatch failed",
					logging.String("account_id", acct.ID),
					logging.Err(err))
			}
		}
		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
	}

	elapsed := d.now().Sub(start)
	d.metrics.RunCompleted(elapsed)
	runLog.Info("dispatch run completed",
		logging.Int("accounts_scanned", sum.AccountsScanned),
		logging.Int("accounts_failed", sum.AccountsFailed),
		logging.Int("reminders_sent", sum.RemindersSent),
		logging.Int("send_failures", sum.SendFailures),
		logging.Int("tokens_invalidated", sum.TokensInvalidated),
		logging.Duration("elapsed", elapsed))
	return sum, nil
}

type pendingReminder struct {
	personName string
	timing     birthday.Timing
}

func (d *Dispatcher) processAccount(ctx context.Context, accountID string, sum *Summary) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf(errors.ErrCodeInternal, "panic: %v", r)
		}
	}()

	settings, err := d.settings.GetSettings(ctx, accountID)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "get settings")
	}
	if settings == nil || !settings.Enabled || settings.FCMToken == "" {
		return nil
	}

	pending, skipped, err := d.collectReminders(ctx, accountID, settings.DefaultTimings)
	if err != nil {
		return err
	}
	sum.PeopleSkipped += skipped

	for i, p := range pending {
		n := Notification{
			Title: reminderTitle,
			Body:  fmt.Sprintf("%s's birthday is %s!", p.personName, p.timing.Label()),
		}
		sendErr := d.sender.Send(ctx, settings.FCMToken, n)
		if sendErr == nil {
			sum.RemindersSent++
			d.metrics.ReminderSent()
			continue
		}
		if errors.IsCode(sendErr, errors.ErrCodeDeliveryTokenInvalid) {
			sum.TokensInvalidated++
			d.metrics.TokenInvalidated()
			if patchErr := d.disableDelivery(ctx, accountID); patchErr != nil {
				return patchErr
			}
			d.logger.Warn("dead token, delivery disabled",
				logging.String("account_id", accountID),
				logging.Int("reminders_dropped", len(pending)-i-1))
			// The remaining reminders cannot be delivered either.
			return nil
		}
		sum.SendFailures++
		d.metrics.SendFailed()
		d.logger.Error("reminder delivery failed",
			logging.String("account_id", accountID),
			logging.String("person", p.personName),
			logging.Err(sendErr))
	}
	return nil
}

// collectReminders scans the account's people and returns one pending
// reminder per matched (person, timing).  Malformed dates are counted and
// skipped rather than failing the account.
func (d *Dispatcher) collectReminders(ctx context.Context, accountID string, defaults []birthday.Timing) ([]pendingReminder, int, error) {
	now := d.now()
	var pending []pendingReminder
	skipped := 0

	cursor := ""
	for {
		page, err := d.people.ListPeople(ctx, accountID, cursor, d.cfg.PersonPageSize)
		if err != nil {
			return nil, skipped, errors.Wrap(err, errors.ErrCodeDatabaseError, "list people")
		}
		for _, person := range page.People {
			pd, err := person.BirthDate()
			if err != nil {
				skipped++
				d.logger.Warn("skipping person with malformed date of birth",
					logging.String("account_id", accountID),
					logging.String("person_id", person.ID))
				continue
			}
			days := birthday.DaysUntil(pd, now)
			for _, timing := range birthday.MatchTiming(days, person.Timings(defaults)) {
				pending = append(pending, pendingReminder{personName: person.Name, timing: timing})
			}
		}
		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
	}
	return pending, skipped, nil
}

// disableDelivery applies the idempotent dead-token patch: enabled off and
// the token cleared.
func (d *Dispatcher) disableDelivery(ctx context.Context, accountID string) error {
	enabled := false
	empty := ""
	patch := birthday.SettingsPatch{Enabled: &enabled, FCMToken: &empty}
	if err := d.settings.UpdateSettings(ctx, accountID, patch); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "disable delivery")
	}
	return nil
}
