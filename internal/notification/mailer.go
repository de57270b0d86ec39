package notification

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/confmerch/checkout-backend/internal/order"
)

// Mailer sends the order confirmation email through SendGrid. Delivery is
// best effort: a failed send is logged and the order stands regardless.
type Mailer struct {
	client *sendgrid.Client
	from   string
}

func NewMailer(apiKey, from string) *Mailer {
	return &Mailer{client: sendgrid.NewSendClient(apiKey), from: from}
}

// OrderCompleted satisfies checkout.Notifier.
func (m *Mailer) OrderCompleted(ctx context.Context, ord order.Order) {
	from := mail.NewEmail("Conf Merch", m.from)
	to := mail.NewEmail(ord.Buyer.Name, ord.Buyer.Email)
	subject := "Order confirmation"
	body := fmt.Sprintf(
		"Thanks for your purchase! Order %s for a total of $%s has been received and will ship to %s.",
		ord.ID, ord.Total.StringFixed(2), ord.Buyer.Address)

	msg := mail.NewSingleEmail(from, subject, to, body, body)
	if _, err := m.client.SendWithContext(ctx, msg); err != nil {
		fmt.Printf("warning: confirmation email for order %s failed: %v\n", ord.ID, err)
	}
}
