package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"mime"
	"mime/quotedprintable"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/uplandimports/storefront/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var mailTemplate = template.Must(template.ParseFS(templateFS, "templates/notification.html"))

type field struct {
	Label string
	Value string
}

type mailView struct {
	Heading        string
	Fields         []field
	DetailsHeading string
	Details        []field
	Message        string
}

// InquirySubject is "New <type> Inquiry from <company>", falling back to the
// contact's full name when no company was given.
func InquirySubject(i models.Inquiry) string {
	from := strings.TrimSpace(deref(i.Company))
	if from == "" {
		from = strings.TrimSpace(i.FirstName + " " + i.LastName)
	}
	return fmt.Sprintf("New %s Inquiry from %s", i.InquiryType, from)
}

// QuoteSubject names the requester, and the total once the quote is priced.
func QuoteSubject(q models.Quote) string {
	from := strings.TrimSpace(deref(q.Company))
	if from == "" {
		from = strings.TrimSpace(q.FirstName + " " + q.LastName)
	}
	if q.TotalPrice != nil {
		return fmt.Sprintf("Quote #%d for %s priced at %s", q.ID, from, FormatUSD(*q.TotalPrice))
	}
	return fmt.Sprintf("New Quote Request from %s", from)
}

// FormatUSD renders a decimal amount string as US dollars with grouping,
// e.g. "1175" becomes "$1,175.00". Unparseable input is returned unchanged.
func FormatUSD(amount string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return amount
	}
	p := message.NewPrinter(language.AmericanEnglish)
	return p.Sprintf("$%v", number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

func renderInquiry(n InquiryNotice) (string, error) {
	i := n.Inquiry
	view := mailView{
		Heading: fmt.Sprintf("New %s Inquiry", i.InquiryType),
		Message: i.Message,
	}
	view.Fields = appendFields(nil,
		field{"Name", strings.TrimSpace(i.FirstName + " " + i.LastName)},
		field{"Company", deref(i.Company)},
		field{"Email", i.Email},
		field{"Phone", deref(i.Phone)},
		field{"Inquiry Type", i.InquiryType},
		field{"Model of Interest", deref(i.SelectedModel)},
		field{"Estimated Quantity", deref(i.Quantity)},
		field{"Design Comments", deref(i.DesignComments)},
		field{"Configuration", idString(i.ConfigurationID)},
		field{"Submitted", i.CreatedAt},
	)

	if c := n.Configuration; c != nil {
		view.DetailsHeading = fmt.Sprintf("Configuration #%d", c.ID)
		view.Details = appendFields(nil,
			field{"Action", c.ActionType},
			field{"Gauge", c.Gauge},
			field{"Barrel Length", c.BarrelLength},
			field{"Stock", c.StockMaterial},
			field{"Finish", c.Finish},
			field{"Custom Branding", deref(c.CustomBranding)},
			field{"Special Requests", deref(c.SpecialRequests)},
			field{"Estimated Price", FormatUSD(c.EstimatedPrice)},
		)
	}

	return render(view)
}

func renderQuote(q models.Quote) (string, error) {
	title := cases.Title(language.English)
	view := mailView{
		Heading: fmt.Sprintf("Quote #%d: %s", q.ID, title.String(q.Status)),
		Message: deref(q.AdditionalNotes),
	}
	view.Fields = appendFields(nil,
		field{"Name", strings.TrimSpace(q.FirstName + " " + q.LastName)},
		field{"Company", deref(q.Company)},
		field{"Email", q.Email},
		field{"Phone", deref(q.Phone)},
		field{"Product", deref(q.ProductName)},
		field{"Quantity", strconv.Itoa(q.Quantity)},
		field{"Customizations", deref(q.Customizations)},
		field{"Branding Requirements", deref(q.BrandingRequirements)},
		field{"Timeline", deref(q.TimelineRequirements)},
		field{"Budget Range", deref(q.BudgetRange)},
		field{"Submitted", q.CreatedAt.UTC().Format(models.TimestampLayout)},
	)

	if q.TotalPrice != nil {
		view.DetailsHeading = "Pricing"
		view.Details = appendFields(nil,
			field{"Base Price", usdPtr(q.BasePrice)},
			field{"Customization", usdPtr(q.CustomizationPrice)},
			field{"Total", FormatUSD(*q.TotalPrice)},
		)
		if q.ValidUntil != nil {
			view.Details = append(view.Details, field{"Valid Until", q.ValidUntil.UTC().Format("January 2, 2006")})
		}
	}

	return render(view)
}

func render(view mailView) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render mail: %w", err)
	}
	return buf.String(), nil
}

// buildMessage assembles an RFC 5322 HTML message. Header values are
// stripped of CR and LF so user input cannot add headers. The body is
// quoted-printable so no line exceeds 76 octets whatever the message length.
func buildMessage(from, to, replyTo, subject, htmlBody string, date time.Time) []byte {
	var b strings.Builder
	writeHeader(&b, "From", from)
	writeHeader(&b, "To", to)
	if replyTo != "" {
		writeHeader(&b, "Reply-To", replyTo)
	}
	writeHeader(&b, "Subject", mime.QEncoding.Encode("utf-8", headerSafe(subject)))
	writeHeader(&b, "Date", date.Format(time.RFC1123Z))
	writeHeader(&b, "MIME-Version", "1.0")
	writeHeader(&b, "Content-Type", `text/html; charset="UTF-8"`)
	writeHeader(&b, "Content-Transfer-Encoding", "quoted-printable")
	b.WriteString("\r\n")
	qp := quotedprintable.NewWriter(&b)
	// Writes to a strings.Builder cannot fail.
	_, _ = qp.Write([]byte(htmlBody))
	_ = qp.Close()
	return []byte(b.String())
}

func writeHeader(b *strings.Builder, name, value string) {
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(headerSafe(value))
	b.WriteString("\r\n")
}

func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

func appendFields(dst []field, fields ...field) []field {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) != "" {
			dst = append(dst, f)
		}
	}
	return dst
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func usdPtr(s *string) string {
	if s == nil {
		return ""
	}
	return FormatUSD(*s)
}

func idString(id *int64) string {
	if id == nil {
		return ""
	}
	return "#" + strconv.FormatInt(*id, 10)
}
