// Package payx abstracts the payment-provider bridge. When the application
// runs inside a provider's embedded environment the bridge can invoke the
// native payment flow directly; everywhere else the payment store falls
// back to rendering a QR code for the order's payment URL.
//
// The bridge is an injected capability chosen by the caller, never detected
// through ambient environment sniffing.
package payx

import (
	"context"
	"errors"
	"net/url"

	"github.com/msivanov/materialhub/internal/client/models"
)

var ErrBridgeUnavailable = errors.New("payment bridge unavailable")

// Bridge is the embedded payment capability.
type Bridge interface {
	// Available reports whether the native flow can be invoked here.
	Available() bool
	// Invoke hands the order to the provider's native payment flow.
	Invoke(ctx context.Context, order *models.PaymentOrder) error
}

// NoBridge is the default implementation for environments without an
// embedded provider: never available, Invoke always fails.
type NoBridge struct{}

func (NoBridge) Available() bool { return false }

func (NoBridge) Invoke(context.Context, *models.PaymentOrder) error {
	return ErrBridgeUnavailable
}

// FuncBridge adapts plain functions to the Bridge interface. Useful for
// tests and for wiring provider SDK callbacks without a named type.
type FuncBridge struct {
	AvailableFn bool
	InvokeFn    func(ctx context.Context, order *models.PaymentOrder) error
}

func (b FuncBridge) Available() bool { return b.AvailableFn }

func (b FuncBridge) Invoke(ctx context.Context, order *models.PaymentOrder) error {
	if b.InvokeFn == nil {
		return ErrBridgeUnavailable
	}
	return b.InvokeFn(ctx, order)
}

const qrEndpoint = "https://api.qrserver.com/v1/create-qr-code/"

// QRCodeURL builds the third-party QR image URL for a payment link.
func QRCodeURL(payURL string) string {
	q := url.Values{}
	q.Set("size", "200x200")
	q.Set("data", payURL)
	return qrEndpoint + "?" + q.Encode()
}
