package mail

import (
	"context"
	"fmt"

	"github.com/sipstop/backend/internal/dto"
)

const (
	Welcome        = "welcome.gohtml"
	OrderConfirmed = "order_confirmed.gohtml"
)

var templateSubjects = map[string]string{
	Welcome:        "Welcome to SipStop",
	OrderConfirmed: "Your SipStop order is confirmed",
}

type welcomeData struct {
	Name string
}

type orderConfirmedData struct {
	Name  string
	Order *dto.OrderConfirmation
}

// SendWelcome sends a welcome email to a freshly registered customer.
func (m *Mailer) SendWelcome(ctx context.Context, to, name string) error {
	req, err := m.buildMailRequest(to, name, Welcome, welcomeData{Name: name})
	if err != nil {
		return err
	}
	return m.queueAndSend(ctx, req)
}

// SendOrderConfirmation sends an order confirmation email.
func (m *Mailer) SendOrderConfirmation(ctx context.Context, to, name string, details *dto.OrderConfirmation) error {
	if details == nil || details.OrderNumber == "" {
		return fmt.Errorf("incomplete order details: %+v", details)
	}
	req, err := m.buildMailRequest(to, name, OrderConfirmed, orderConfirmedData{Name: name, Order: details})
	if err != nil {
		return err
	}
	return m.queueAndSend(ctx, req)
}
