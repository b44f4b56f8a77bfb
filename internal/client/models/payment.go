package models

import "time"

// PaymentMethod identifies the payment provider selected by the user.
type PaymentMethod string

const (
	PaymentMethodAlipay PaymentMethod = "alipay"
	PaymentMethodWechat PaymentMethod = "wechat"
)

// PaymentOrder mirrors the server-side order record. The client only ever
// reads it; status changes come from polling.
type PaymentOrder struct {
	OrderID     string        `json:"order_id"`
	Amount      float64       `json:"amount"`
	Description string        `json:"description"`
	Method      PaymentMethod `json:"method,omitempty"`
	Status      string        `json:"status,omitempty"`
	PayURL      string        `json:"pay_url,omitempty"`
	CreatedAt   time.Time     `json:"created_at,omitempty"`
}

func (o *PaymentOrder) Validate() error {
	if o.OrderID == "" {
		return ErrMissingID
	}
	return nil
}

// CreatePayment is the request body for creating a payment order.
// IdempotencyKey lets the server collapse duplicate submissions.
type CreatePayment struct {
	UserID         int64         `json:"user"`
	Amount         float64       `json:"amount"`
	Description    string        `json:"description"`
	Plan           string        `json:"plan"`
	Method         PaymentMethod `json:"method"`
	IdempotencyKey string        `json:"idempotency_key,omitempty"`
}

// PaymentStatus is returned by the order status polling endpoint.
type PaymentStatus struct {
	Status string        `json:"status"`
	Order  *PaymentOrder `json:"order"`
}
