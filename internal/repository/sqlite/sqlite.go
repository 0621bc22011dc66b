package sqlite

import (
	"io"
	"log/slog"
	"time"

	"github.com/uplandimports/storefront/internal/db"
	"github.com/uplandimports/storefront/pkg/repository"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
	now    func() time.Time
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.ProductRepo = (*SQLiteRepo)(nil)
var _ repository.ConfigurationRepo = (*SQLiteRepo)(nil)
var _ repository.InquiryRepo = (*SQLiteRepo)(nil)
var _ repository.QuoteRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &SQLiteRepo{conn: conn, logger: logger, now: time.Now}
}

// SetClock overrides the time source used for creation timestamps.
func (r *SQLiteRepo) SetClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
