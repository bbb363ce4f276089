package auth

import (
	"fmt"
	"log/slog"

	"github.com/clutch-swap/clutch-api/internal/domain"
)

// Delivery describes how a code reached (or didn't reach) the requester.
// Disclosed means the code rides back in the API response instead of email;
// that path only exists outside production.
type Delivery struct {
	Delivered bool
	Disclosed bool
	Code      string
}

type mailer interface {
	Configured() bool
	SendCode(to, code string) error
}

// Notifier picks the delivery channel for a one-time code. With no SMTP host
// configured, or when a send fails, non-production falls back to disclosing
// the code in the response; production fails the request instead.
type Notifier struct {
	mailer     mailer
	production bool
}

func NewNotifier(m mailer, production bool) *Notifier {
	return &Notifier{mailer: m, production: production}
}

func (n *Notifier) Send(email, code string) (*Delivery, error) {
	if !n.mailer.Configured() {
		if n.production {
			return nil, fmt.Errorf("no delivery channel: %w", domain.ErrDeliveryFailed)
		}
		return &Delivery{Disclosed: true, Code: code}, nil
	}

	if err := n.mailer.SendCode(email, code); err != nil {
		slog.Error("code email failed", "error", err)
		if n.production {
			return nil, fmt.Errorf("send code email: %w", domain.ErrDeliveryFailed)
		}
		return &Delivery{Disclosed: true, Code: code}, nil
	}
	return &Delivery{Delivered: true}, nil
}
