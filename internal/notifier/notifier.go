// Package notifier is the outbound mail channel. Sends are best effort:
// callers log failures and move on, a missed mail never unwinds a
// committed state change.
package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/discoshop/backend/internal/models"
)

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender stands in when no mail provider is configured.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, to, subject, _ string) error {
	s.Logger.Info("mail_skipped", "to", to, "subject", subject, "reason", "no mail provider configured")
	return nil
}

// StatusMail builds the transition-specific subject and body for an order
// that just moved to status. Only paid, shipped and delivered carry mail.
func StatusMail(orderID uint, status models.OrderStatus) (subject, body string, ok bool) {
	switch status {
	case models.StatusPaid:
		return fmt.Sprintf("Order #%d payment confirmed", orderID),
			fmt.Sprintf("We received the payment for your order #%d. We are preparing it for shipping and will let you know as soon as it is on its way.", orderID),
			true
	case models.StatusShipped:
		return fmt.Sprintf("Order #%d shipped", orderID),
			fmt.Sprintf("Good news! Your order #%d has been shipped and is on its way to you.", orderID),
			true
	case models.StatusDelivered:
		return fmt.Sprintf("Order #%d delivered", orderID),
			fmt.Sprintf("Your order #%d has been delivered. Thank you for shopping with us!", orderID),
			true
	}
	return "", "", false
}
