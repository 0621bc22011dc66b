package models

import "time"

// TimestampLayout is the layout of Inquiry.CreatedAt: RFC 3339 in UTC with
// millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Domain models matching the database schema in db/migrations/0001_init.sql.
// JSON field names follow the storefront client's camelCase contract.

// Product categories carried by the seed catalog.
const (
	CategoryBullpup    = "bullpup"
	CategoryOverUnder  = "over-under"
	CategorySemiAuto   = "semi-auto"
	CategoryPumpAction = "pump-action"
	CategorySideBySide = "side-by-side"
)

// Configurator option values that carry a price add-on.
const (
	StockWalnut    = "walnut"
	StockSynthetic = "synthetic"

	FinishBlued        = "blued"
	FinishNickel       = "nickel"
	FinishCaseHardened = "case-hardened"
)

// Quote lifecycle states.
const (
	QuoteStatusPending   = "pending"
	QuoteStatusReviewing = "reviewing"
	QuoteStatusQuoted    = "quoted"
	QuoteStatusAccepted  = "accepted"
	QuoteStatusDeclined  = "declined"
	QuoteStatusExpired   = "expired"
)

// QuoteStatuses lists every status a quote may be moved to.
var QuoteStatuses = []string{
	QuoteStatusPending,
	QuoteStatusReviewing,
	QuoteStatusQuoted,
	QuoteStatusAccepted,
	QuoteStatusDeclined,
	QuoteStatusExpired,
}

type Product struct {
	ID             int64  `json:"id" db:"id"`
	Name           string `json:"name" db:"name"`
	Description    string `json:"description" db:"description"`
	Category       string `json:"category" db:"category"`
	Gauge          string `json:"gauge" db:"gauge"`
	BasePrice      string `json:"basePrice" db:"base_price"`
	ImageURL       string `json:"imageUrl" db:"image_url"`
	Specifications string `json:"specifications" db:"specifications"` // JSON-encoded document
	Available      bool   `json:"available" db:"available"`
}

// ConfigurationOptions is the subset of a configuration the pricer reads.
type ConfigurationOptions struct {
	ActionType     string `json:"actionType,omitempty"`
	Gauge          string `json:"gauge,omitempty"`
	BarrelLength   string `json:"barrelLength,omitempty"`
	StockMaterial  string `json:"stockMaterial,omitempty"`
	Finish         string `json:"finish,omitempty"`
	CustomBranding string `json:"customBranding,omitempty"`
}

type Configuration struct {
	ID              int64   `json:"id" db:"id"`
	ProductID       int64   `json:"productId" db:"product_id"`
	ActionType      string  `json:"actionType" db:"action_type"`
	Gauge           string  `json:"gauge" db:"gauge"`
	BarrelLength    string  `json:"barrelLength" db:"barrel_length"`
	StockMaterial   string  `json:"stockMaterial" db:"stock_material"`
	Finish          string  `json:"finish" db:"finish"`
	CustomBranding  *string `json:"customBranding" db:"custom_branding"`
	SpecialRequests *string `json:"specialRequests" db:"special_requests"`
	EstimatedPrice  string  `json:"estimatedPrice" db:"estimated_price"`
}

// Options returns the priced fields of the configuration.
func (c *Configuration) Options() ConfigurationOptions {
	opts := ConfigurationOptions{
		ActionType:    c.ActionType,
		Gauge:         c.Gauge,
		BarrelLength:  c.BarrelLength,
		StockMaterial: c.StockMaterial,
		Finish:        c.Finish,
	}
	if c.CustomBranding != nil {
		opts.CustomBranding = *c.CustomBranding
	}
	return opts
}

type Inquiry struct {
	ID              int64   `json:"id" db:"id"`
	FirstName       string  `json:"firstName" db:"first_name"`
	LastName        string  `json:"lastName" db:"last_name"`
	Company         *string `json:"company" db:"company"`
	Email           string  `json:"email" db:"email"`
	Phone           *string `json:"phone" db:"phone"`
	InquiryType     string  `json:"inquiryType" db:"inquiry_type"`
	Message         string  `json:"message" db:"message"`
	ConfigurationID *int64  `json:"configurationId" db:"configuration_id"`
	SelectedModel   *string `json:"selectedModel,omitempty" db:"selected_model"`
	Quantity        *string `json:"quantity,omitempty" db:"quantity"`
	DesignComments  *string `json:"designComments,omitempty" db:"design_comments"`
	CreatedAt       string  `json:"createdAt" db:"created_at"` // RFC 3339, set by the store
}

type Quote struct {
	ID                   int64      `json:"id" db:"id"`
	FirstName            string     `json:"firstName" db:"first_name"`
	LastName             string     `json:"lastName" db:"last_name"`
	Company              *string    `json:"company" db:"company"`
	Email                string     `json:"email" db:"email"`
	Phone                *string    `json:"phone" db:"phone"`
	ProductID            *int64     `json:"productId" db:"product_id"`
	ProductName          *string    `json:"productName" db:"product_name"`
	Quantity             int        `json:"quantity" db:"quantity"`
	Customizations       *string    `json:"customizations" db:"customizations"`
	BrandingRequirements *string    `json:"brandingRequirements" db:"branding_requirements"`
	TimelineRequirements *string    `json:"timelineRequirements" db:"timeline_requirements"`
	BudgetRange          *string    `json:"budgetRange" db:"budget_range"`
	AdditionalNotes      *string    `json:"additionalNotes" db:"additional_notes"`
	Status               string     `json:"status" db:"status"`
	BasePrice            *string    `json:"basePrice" db:"base_price"`
	CustomizationPrice   *string    `json:"customizationPrice" db:"customization_price"`
	TotalPrice           *string    `json:"totalPrice" db:"total_price"`
	ValidUntil           *time.Time `json:"validUntil" db:"valid_until"`
	CreatedAt            time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time  `json:"updatedAt" db:"updated_at"`
}

// QuotePricing is the admin-supplied price breakdown applied to a quote.
type QuotePricing struct {
	BasePrice          string
	CustomizationPrice string
	TotalPrice         string
	ValidUntil         time.Time
}
