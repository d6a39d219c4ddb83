package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(
	template.New("").Funcs(template.FuncMap{"money": formatMoney}).ParseFS(templatesFS, "templates/*.html"),
)

const (
	minDeliveryDays = 5
	maxDeliveryDays = 7
)

// EmailSender sends the customer confirmation email.
type EmailSender struct {
	logger *slog.Logger
	mailer Mailer
}

func NewEmailSender(logger *slog.Logger, mailer Mailer) *EmailSender {
	return &EmailSender{
		logger: logger.With(slog.String("sender", "confirmation_email")),
		mailer: mailer,
	}
}

func (s *EmailSender) Name() string { return "confirmation_email" }

func (s *EmailSender) Send(ctx context.Context, order entities.Order) error {
	email, name := order.Recipient()
	if email == "" {
		s.logger.WarnContext(ctx, "order has no recipient email, confirmation skipped", slog.String("order_id", order.ID))
		return nil
	}

	html, err := render("confirmation.html", confirmationData{
		CustomerName:      name,
		Order:             order,
		EstimatedDelivery: estimatedDelivery(order.CreatedAt),
	})
	if err != nil {
		return err
	}

	return s.mailer.Send(ctx, Message{
		To:      []string{email},
		Subject: "Order Confirmation - " + order.OrderNumber,
		HTML:    html,
	})
}

// AdminNotifier emails the store operator about new orders.
type AdminNotifier struct {
	logger *slog.Logger
	mailer Mailer
	to     string
	appURL string
}

func NewAdminNotifier(logger *slog.Logger, mailer Mailer, adminEmail, appURL string) *AdminNotifier {
	return &AdminNotifier{
		logger: logger.With(slog.String("sender", "admin_email")),
		mailer: mailer,
		to:     adminEmail,
		appURL: strings.TrimRight(appURL, "/"),
	}
}

func (n *AdminNotifier) NotifyNewOrder(ctx context.Context, summary entities.OrderSummary) error {
	if n.to == "" {
		n.logger.WarnContext(ctx, "admin email not configured, skipping notification")
		return nil
	}

	html, err := render("admin_order.html", adminOrderData{
		OrderSummary: summary,
		DashboardURL: fmt.Sprintf("%s/dashboard/orders/%s", n.appURL, summary.OrderID),
	})
	if err != nil {
		return err
	}

	return n.mailer.Send(ctx, Message{
		To:      []string{n.to},
		Subject: "New Order Received - " + summary.OrderNumber,
		HTML:    html,
	})
}

type confirmationData struct {
	CustomerName      string
	Order             entities.Order
	EstimatedDelivery string
}

type adminOrderData struct {
	entities.OrderSummary
	DashboardURL string
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

func estimatedDelivery(created time.Time) string {
	from := created.AddDate(0, 0, minDeliveryDays)
	to := created.AddDate(0, 0, maxDeliveryDays)
	return from.Format("Jan 2") + " - " + to.Format("Jan 2, 2006")
}

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
}

func formatMoney(amount int64, currency string) string {
	if sym, ok := currencySymbols[currency]; ok {
		return sym + humanize.Comma(amount)
	}
	return humanize.Comma(amount) + " " + currency
}
