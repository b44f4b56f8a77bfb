package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/msivanov/materialhub/internal/client/models"
)

// Payment runs the membership purchase flow: choose a method, create the
// order, and print either the bridge confirmation or the QR code URL to
// scan with the provider's app.
func (a *App) Payment(ctx context.Context) error {
	u := a.users.User()
	if u == nil {
		printlnFn("Please log in first")
		return nil
	}

	method, err := getSimpleText(a.reader, "Payment method (wechat, alipay)", os.Stdout)
	if err != nil {
		return err
	}
	switch models.PaymentMethod(method) {
	case models.PaymentMethodWechat, models.PaymentMethodAlipay:
		a.payments.SetMethod(models.PaymentMethod(method))
	case "":
		// keep the current method
	default:
		printlnFn("Unknown payment method:", method)
		return nil
	}

	order, err := a.payments.CreatePayment(ctx, u.ID)
	if err != nil {
		log.Printf("Payment unsuccessful: %s", a.payments.Error())
		return err
	}

	fmt.Printf("Order %s created, amount %.2f\n", order.OrderID, order.Amount)
	if qr := a.payments.QRCodeURL(); qr != "" {
		fmt.Printf("Scan to pay: %s\n", qr)
	} else {
		printlnFn("Payment handed to the provider app")
	}
	printlnFn("Use 'order' to check the payment status")
	return nil
}

// PaymentStatus polls the active order once and prints its status.
func (a *App) PaymentStatus(ctx context.Context) error {
	status, err := a.payments.PollStatus(ctx)
	if err != nil {
		log.Printf("Status check unsuccessful: %s", err.Error())
		return err
	}

	fmt.Printf("Order %s: %s\n", a.payments.Order().OrderID, status.Status)
	if status.Status == "paid" {
		a.payments.Reset()
		log.Printf("Membership activated")
	}
	return nil
}
