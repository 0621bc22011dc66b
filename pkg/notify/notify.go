// Package notify delivers best-effort email notifications about new leads.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/uplandimports/storefront/pkg/models"
)

var (
	// ErrNotConfigured is returned by every send when mail credentials or the
	// destination address are missing.
	ErrNotConfigured = errors.New("notify: mail not configured")
	ErrCircuitOpen   = errors.New("notify: circuit open")
)

// Notifier sends notifications about stored records. Callers treat errors
// as loggable only.
type Notifier interface {
	NotifyInquiry(ctx context.Context, n InquiryNotice) error
	NotifyQuote(ctx context.Context, q models.Quote) error
}

// InquiryNotice is a stored inquiry plus the configuration it references,
// when that configuration exists.
type InquiryNotice struct {
	Inquiry       models.Inquiry
	Configuration *models.Configuration
}

// Nop discards every notification.
type Nop struct{}

func (Nop) NotifyInquiry(context.Context, InquiryNotice) error { return nil }
func (Nop) NotifyQuote(context.Context, models.Quote) error    { return nil }

// package-level logger for pkg/notify; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by pkg/notify. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}
