package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/uplandimports/storefront/internal/metrics"
	"github.com/uplandimports/storefront/pkg/models"
	"github.com/uplandimports/storefront/pkg/notify"
	"github.com/uplandimports/storefront/pkg/repository"
)

type InquiriesHandler struct {
	inquiries repository.InquiryRepo
	configs   repository.ConfigurationRepo
	notifier  notify.Notifier
	metrics   *metrics.Metrics
}

// NewInquiriesHandler wires inquiry intake. configs is used only to enrich
// notifications and may be nil.
func NewInquiriesHandler(inquiries repository.InquiryRepo, configs repository.ConfigurationRepo, n notify.Notifier, m *metrics.Metrics) *InquiriesHandler {
	if n == nil {
		n = notify.Nop{}
	}
	return &InquiriesHandler{inquiries: inquiries, configs: configs, notifier: n, metrics: m}
}

type inquiryRequest struct {
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Company         *string `json:"company"`
	Email           string  `json:"email"`
	Phone           *string `json:"phone"`
	InquiryType     string  `json:"inquiryType"`
	Message         string  `json:"message"`
	ConfigurationID *int64  `json:"configurationId"`
	SelectedModel   *string `json:"selectedModel"`
	Quantity        *string `json:"quantity"`
	DesignComments  *string `json:"designComments"`
}

// CreateInquiry stores the inquiry, then attempts one notification. A
// notification failure is logged and never changes the response.
func (h *InquiriesHandler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var req inquiryRequest
	if !decodeValid(w, r, schemaInquiry, "Invalid inquiry data", &req) {
		return
	}

	created, err := h.inquiries.CreateInquiry(r.Context(), &models.Inquiry{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Company:         req.Company,
		Email:           req.Email,
		Phone:           req.Phone,
		InquiryType:     req.InquiryType,
		Message:         req.Message,
		ConfigurationID: req.ConfigurationID,
		SelectedModel:   req.SelectedModel,
		Quantity:        req.Quantity,
		DesignComments:  req.DesignComments,
	})
	if err != nil {
		logger.Error("create inquiry", slog.Any("err", err), slog.String("request_id", RequestID(r.Context())))
		writeError(w, http.StatusInternalServerError, "Failed to create inquiry")
		return
	}
	h.metrics.RecordCreated("inquiry")

	h.notify(r.Context(), *created)

	writeJSON(w, created, http.StatusCreated)
}

func (h *InquiriesHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.inquiries.ListInquiries(r.Context())
	if err != nil {
		logger.Error("list inquiries", slog.Any("err", err), slog.String("request_id", RequestID(r.Context())))
		writeError(w, http.StatusInternalServerError, "Failed to fetch inquiries")
		return
	}

	if inquiries == nil {
		inquiries = []models.Inquiry{}
	}
	writeJSON(w, inquiries, http.StatusOK)
}

func (h *InquiriesHandler) notify(ctx context.Context, inq models.Inquiry) {
	// A client disconnect must not abort the mail; the mailer bounds it.
	ctx = context.WithoutCancel(ctx)

	notice := notify.InquiryNotice{Inquiry: inq}
	if inq.ConfigurationID != nil && h.configs != nil {
		if c, err := h.configs.GetConfiguration(ctx, *inq.ConfigurationID); err == nil {
			notice.Configuration = c
		}
	}

	err := h.notifier.NotifyInquiry(ctx, notice)
	recordNotification(ctx, h.metrics, "inquiry", inq.ID, err)
}

// recordNotification logs and counts the outcome of a best-effort send.
func recordNotification(ctx context.Context, m *metrics.Metrics, kind string, id int64, err error) {
	attrs := []any{slog.String("kind", kind), slog.Int64("id", id), slog.String("request_id", RequestID(ctx))}
	switch {
	case err == nil:
		m.RecordNotification(kind, metrics.OutcomeSent)
	case errors.Is(err, notify.ErrNotConfigured):
		m.RecordNotification(kind, metrics.OutcomeSkipped)
		logger.Warn("notification skipped: mail not configured", attrs...)
	default:
		m.RecordNotification(kind, metrics.OutcomeFailed)
		logger.Error("notification failed", append(attrs, slog.Any("err", err))...)
	}
}
