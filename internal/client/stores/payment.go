package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/msivanov/materialhub/internal/client/api"
	"github.com/msivanov/materialhub/internal/client/models"
	"github.com/msivanov/materialhub/internal/client/payx"
	"github.com/msivanov/materialhub/internal/logging"
)

// Membership order template. Price and plan are fixed server-side; the
// client only picks the payment method.
const (
	vipAmount      = 99.00
	vipPlan        = "vip_monthly"
	vipDescription = "VIP membership"
)

// PaymentStore drives the membership purchase flow: it creates a payment
// order, hands it to a native payment bridge when one is present, and
// falls back to showing a scannable QR code otherwise.
type PaymentStore struct {
	client api.Client
	bridge payx.Bridge
	log    logging.Logger

	mu         sync.Mutex
	method     models.PaymentMethod
	processing bool
	order      *models.PaymentOrder
	qrURL      string
	lastErr    string
}

type PaymentStoreConfig struct {
	Client api.Client
	// Bridge is the native payment integration. payx.NoBridge disables it.
	Bridge payx.Bridge
	Logger logging.Logger
}

func NewPaymentStore(cfg PaymentStoreConfig) *PaymentStore {
	bridge := cfg.Bridge
	if bridge == nil {
		bridge = payx.NoBridge{}
	}
	return &PaymentStore{
		client: cfg.Client,
		bridge: bridge,
		log:    cfg.Logger,
		method: models.PaymentMethodWechat,
	}
}

// SetMethod selects the payment method for the next order.
func (s *PaymentStore) SetMethod(m models.PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.method = m
}

// CreatePayment creates a membership order and starts the payment. When
// the native bridge is available it is tried first; any bridge failure
// degrades to the QR code path instead of failing the purchase.
func (s *PaymentStore) CreatePayment(ctx context.Context, userID int64) (*models.PaymentOrder, error) {
	s.mu.Lock()
	if s.processing {
		s.mu.Unlock()
		return nil, ErrOperationInProgress
	}
	s.processing = true
	s.lastErr = ""
	s.qrURL = ""
	method := s.method
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.processing = false
		s.mu.Unlock()
	}()

	req := models.CreatePayment{
		UserID:         userID,
		Amount:         vipAmount,
		Description:    vipDescription,
		Plan:           vipPlan,
		Method:         method,
		IdempotencyKey: uuid.NewString(),
	}

	order, err := s.client.CreatePaymentOrder(ctx, req)
	if err != nil {
		s.setError(userMessage(err, "payment order failed"))
		return nil, fmt.Errorf("create payment order: %w", err)
	}

	s.mu.Lock()
	s.order = order
	s.mu.Unlock()

	if method == models.PaymentMethodWechat && s.bridge.Available() {
		if err := s.bridge.Invoke(ctx, order); err == nil {
			return order, nil
		} else if s.log != nil {
			s.log.Warn(ctx, "payment bridge failed, falling back to QR", "order", order.OrderID, "err", err)
		}
	}

	s.mu.Lock()
	s.qrURL = payx.QRCodeURL(order.PayURL)
	s.mu.Unlock()
	return order, nil
}

// PollStatus fetches the current status of the active order.
func (s *PaymentStore) PollStatus(ctx context.Context) (*models.PaymentStatus, error) {
	s.mu.Lock()
	order := s.order
	s.mu.Unlock()
	if order == nil {
		return nil, ErrNoOrder
	}

	status, err := s.client.PaymentOrderStatus(ctx, order.OrderID)
	if err != nil {
		return nil, fmt.Errorf("payment status: %w", err)
	}

	s.mu.Lock()
	// Reset may have dropped the order while the request was in flight.
	if s.order != nil {
		s.order.Status = status.Status
	}
	s.mu.Unlock()
	return status, nil
}

// Reset forgets the active order and QR code.
func (s *PaymentStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.qrURL = ""
	s.lastErr = ""
}

func (s *PaymentStore) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

func (s *PaymentStore) Method() models.PaymentMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.method
}

func (s *PaymentStore) Order() *models.PaymentOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.order == nil {
		return nil
	}
	o := *s.order
	return &o
}

// QRCodeURL returns the fallback QR image URL, or "" when the bridge
// handled the payment.
func (s *PaymentStore) QRCodeURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qrURL
}

func (s *PaymentStore) IsProcessing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

func (s *PaymentStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
