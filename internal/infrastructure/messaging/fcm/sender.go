// Package fcm delivers push notifications through Firebase Cloud
// Messaging.
package fcm

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/wishwell/wishwell/internal/application/reminder"
	"github.com/wishwell/wishwell/internal/config"
	"github.com/wishwell/wishwell/pkg/errors"
)

// sendFunc matches messaging.Client.Send and is swapped out in tests.
type sendFunc func(ctx context.Context, message *messaging.Message) (string, error)

// Sender implements reminder.Sender over an FCM messaging client.
type Sender struct {
	send        sendFunc
	isDeadToken func(error) bool
}

// NewSender initialises the Firebase app and messaging client.
func NewSender(ctx context.Context, cfg config.FCMConfig) (*Sender, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUnavailable, "init firebase app")
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUnavailable, "init fcm client")
	}
	return &Sender{
		send:        client.Send,
		isDeadToken: messaging.IsRegistrationTokenNotRegistered,
	}, nil
}

// Send implements reminder.Sender.  A token FCM reports as no longer
// registered maps to the dead-token error code so the dispatcher can
// disable the account's delivery.
func (s *Sender) Send(ctx context.Context, token string, n reminder.Notification) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
	}
	_, err := s.send(ctx, msg)
	if err == nil {
		return nil
	}
	if s.isDeadToken(err) {
		return errors.Wrap(err, errors.ErrCodeDeliveryTokenInvalid, "token no longer registered")
	}
	return errors.Wrap(err, errors.ErrCodeDeliveryFailed, "fcm send")
}

var _ reminder.Sender = (*Sender)(nil)
