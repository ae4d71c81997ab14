package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "pulseralux/internal/errors"
	"pulseralux/internal/metrics"
	"pulseralux/internal/model"
)

// phonePattern matches the storefront's contact format: +505 XXXX-XXXX,
// with the dash optional.
var phonePattern = regexp.MustCompile(`^\+505 [0-9]{4}-?[0-9]{4}$`)

const successResetDelay = 3 * time.Second

// CheckoutService submits the current cart to the external form relay.
// Per customer the submission runs Idle -> Submitting -> Succeeded|Failed;
// Succeeded returns to Idle after a fixed delay, Failed stays until the
// customer resubmits. No retries.
type CheckoutService interface {
	Submit(ctx context.Context, profile model.Profile, phone string) (*model.Order, error)
	Status(userID uint) model.SubmissionStatus
}

type checkoutService struct {
	cart       CartService
	relayURL   string
	formID     string
	client     *http.Client
	metrics    *metrics.Collector
	resetDelay time.Duration

	mu     sync.Mutex
	states map[uint]model.SubmissionStatus
}

// NewCheckoutService creates a checkout service posting to relayURL/formID.
func NewCheckoutService(cart CartService, relayURL, formID string, collector *metrics.Collector) CheckoutService {
	return &checkoutService{
		cart:       cart,
		relayURL:   strings.TrimRight(relayURL, "/"),
		formID:     formID,
		client:     &http.Client{Timeout: 30 * time.Second},
		metrics:    collector,
		resetDelay: successResetDelay,
		states:     make(map[uint]model.SubmissionStatus),
	}
}

// Status returns the customer's current submission state.
func (s *checkoutService) Status(userID uint) model.SubmissionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[userID]; ok {
		return st
	}
	return model.SubmissionStatusIdle
}

func (s *checkoutService) setState(userID uint, st model.SubmissionStatus) {
	s.mu.Lock()
	s.states[userID] = st
	s.mu.Unlock()
}

// resetIfSucceeded returns the customer to Idle only if the success is
// still the latest state, so a delayed reset never clobbers a submission
// the customer started in the meantime.
func (s *checkoutService) resetIfSucceeded(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.states[userID] == model.SubmissionStatusSucceeded {
		s.states[userID] = model.SubmissionStatusIdle
	}
}

// beginSubmit flips the customer to Submitting unless a submission is
// already in flight.
func (s *checkoutService) beginSubmit(userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.states[userID] == model.SubmissionStatusSubmitting {
		return apperrors.ErrSubmissionInFlight
	}
	s.states[userID] = model.SubmissionStatusSubmitting
	return nil
}

// Submit validates the phone, snapshots the cart and posts the order to the
// relay. A failed submission leaves the cart untouched for resubmission.
func (s *checkoutService) Submit(ctx context.Context, profile model.Profile, phone string) (*model.Order, error) {
	if !phonePattern.MatchString(phone) {
		return nil, apperrors.ErrInvalidPhone
	}

	cart, err := s.cart.Get(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	if err := s.beginSubmit(profile.ID); err != nil {
		return nil, err
	}

	order := &model.Order{
		Customer:  profile,
		Phone:     phone,
		Items:     cart.Items,
		Total:     cart.TotalPrice(),
		CreatedAt: time.Now(),
	}

	if err := s.post(ctx, order); err != nil {
		s.setState(profile.ID, model.SubmissionStatusFailed)
		s.metrics.RecordOrderFailed()
		return nil, err
	}

	s.setState(profile.ID, model.SubmissionStatusSucceeded)
	s.metrics.RecordOrderSubmitted()
	time.AfterFunc(s.resetDelay, func() {
		s.resetIfSucceeded(profile.ID)
	})

	return order, nil
}

// post sends the flat relay field set, one hidden-field equivalent per value.
func (s *checkoutService) post(ctx context.Context, order *model.Order) error {
	values := url.Values{}
	values.Set("_subject", "Nuevo Pedido - "+order.Customer.Name)
	values.Set("_replyto", order.Customer.Email)
	values.Set("customer_name", order.Customer.Name)
	values.Set("customer_email", order.Customer.Email)
	values.Set("customer_phone", order.Phone)
	values.Set("order_total", "$"+order.Total.StringFixed(2))
	values.Set("order_items_count", strconv.Itoa(len(order.Items)))
	values.Set("order_summary", buildOrderSummary(order))

	for i, item := range order.Items {
		prefix := fmt.Sprintf("product_%d_", i)
		values.Set(prefix+"name", item.Name)
		values.Set(prefix+"price", "$"+item.Price.String())
		values.Set(prefix+"quantity", strconv.Itoa(item.Quantity))
		values.Set(prefix+"subtotal", "$"+item.Subtotal().StringFixed(2))
	}

	endpoint := s.relayURL + "/" + s.formID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return apperrors.ErrSubmissionFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.ErrSubmissionFailed
	}
	return nil
}

// buildOrderSummary renders the preformatted text block the relay forwards
// by email.
func buildOrderSummary(order *model.Order) string {
	var b strings.Builder
	b.WriteString("NUEVO PEDIDO - PULSERALUX\n\n")
	b.WriteString("INFORMACIÓN DEL CLIENTE:\n")
	fmt.Fprintf(&b, "Nombre: %s\n", order.Customer.Name)
	fmt.Fprintf(&b, "Email: %s\n", order.Customer.Email)
	fmt.Fprintf(&b, "Teléfono: %s\n", order.Phone)
	fmt.Fprintf(&b, "Fecha: %s\n\n", order.CreatedAt.Format("02/01/2006"))
	b.WriteString("DETALLES DEL PEDIDO:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "• %s - $%s x %d = $%s\n",
			item.Name, item.Price.String(), item.Quantity, item.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTOTAL: $%s\n", order.Total.StringFixed(2))
	fmt.Fprintf(&b, "Productos: %d\n", len(order.Items))
	return b.String()
}
