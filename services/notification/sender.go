package notification

import (
	"context"
	"fmt"

	"govconnect/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Sender delivers one notification. A nil error means the message was accepted.
type Sender interface {
	Send(ctx context.Context, n models.Notification) error
}

// FCMSender pushes to per-recipient topics ("user_<id>", "authority_<id>") which the
// mobile and desk clients subscribe to.
type FCMSender struct {
	Client *messaging.Client
	Logger *zap.Logger
}

func NewFCMSender(client *messaging.Client, logger *zap.Logger) *FCMSender {
	return &FCMSender{Client: client, Logger: logger}
}

func (s *FCMSender) Send(ctx context.Context, n models.Notification) error {
	data := map[string]string{"type": n.Type, "role": n.Target}
	for k, v := range n.Data {
		data[k] = v
	}

	msg := &messaging.Message{
		Topic: Topic(n.Target, n.TargetID),
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{"apns-priority": "10"},
			Payload: &messaging.APNSPayload{Aps: &messaging.Aps{Sound: "default"}},
		},
	}

	id, err := s.Client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	s.Logger.Debug("FCM message sent", zap.String("messageId", id), zap.String("topic", msg.Topic))
	return nil
}

// Topic names the FCM topic of a recipient.
func Topic(target, id string) string {
	return target + "_" + id
}

// LogSender records notifications in the structured log. Used when no push provider
// is configured.
type LogSender struct {
	Logger *zap.Logger
}

func (s *LogSender) Send(_ context.Context, n models.Notification) error {
	s.Logger.Info("Notification",
		zap.String("type", n.Type),
		zap.String("target", n.Target),
		zap.String("targetId", n.TargetID),
		zap.String("appointmentId", n.AppointmentID),
		zap.String("title", n.Title),
		zap.String("body", n.Body),
	)
	return nil
}
