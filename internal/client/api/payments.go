package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/msivanov/materialhub/internal/client/models"
)

func (c *HTTPClient) CreatePaymentOrder(ctx context.Context, req models.CreatePayment) (*models.PaymentOrder, error) {
	var order models.PaymentOrder
	if err := c.do(ctx, http.MethodPost, "/api/payments/create/", nil, req, &order); err != nil {
		return nil, err
	}
	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return &order, nil
}

func (c *HTTPClient) PaymentOrderStatus(ctx context.Context, orderID string) (*models.PaymentStatus, error) {
	var status models.PaymentStatus
	path := fmt.Sprintf("/api/orders/%s/status/", orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
