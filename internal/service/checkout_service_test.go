package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "pulseralux/internal/errors"
	"pulseralux/internal/kv"
	"pulseralux/internal/model"
)

func newCheckoutFixture(t *testing.T, relayURL string) (CheckoutService, CartService) {
	t.Helper()
	cart := NewCartService(testCatalog(t), kv.NewMemory(), nil)
	svc := NewCheckoutService(cart, relayURL, "xgvrvarw", nil)
	svc.(*checkoutService).resetDelay = 10 * time.Millisecond
	return svc, cart
}

func TestCheckoutSubmitPayload(t *testing.T) {
	var (
		mu       sync.Mutex
		received url.Values
		path     string
	)
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		mu.Lock()
		received = r.PostForm
		path = r.URL.Path
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer relay.Close()

	svc, cart := newCheckoutFixture(t, relay.URL)
	ctx := context.Background()
	profile := model.Profile{ID: 7, Name: "Test User", Email: "a@x.com"}

	_, err := cart.Add(ctx, 7, 1)
	assert.NoError(t, err)
	_, err = cart.Add(ctx, 7, 1)
	assert.NoError(t, err)
	_, err = cart.Add(ctx, 7, 2)
	assert.NoError(t, err)

	order, err := svc.Submit(ctx, profile, "+505 8888-1234")
	assert.NoError(t, err)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "65.98", order.Total.StringFixed(2))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/xgvrvarw", path)
	assert.Equal(t, "Test User", received.Get("customer_name"))
	assert.Equal(t, "a@x.com", received.Get("customer_email"))
	assert.Equal(t, "a@x.com", received.Get("_replyto"))
	assert.Equal(t, "+505 8888-1234", received.Get("customer_phone"))
	assert.Equal(t, "$65.98", received.Get("order_total"))
	assert.Equal(t, "2", received.Get("order_items_count"))
	assert.Contains(t, received.Get("order_summary"), "TOTAL: $65.98")
	assert.Contains(t, received.Get("order_summary"), "Pulsera de cuarzo - $12.99 x 2 = $25.98")

	assert.Equal(t, "Pulsera de cuarzo", received.Get("product_0_name"))
	assert.Equal(t, "2", received.Get("product_0_quantity"))
	assert.Equal(t, "$25.98", received.Get("product_0_subtotal"))
	assert.Equal(t, "Pulsera de chakras", received.Get("product_1_name"))
	assert.Equal(t, "$40.00", received.Get("product_1_subtotal"))
}

func TestCheckoutInvalidPhone(t *testing.T) {
	svc, cart := newCheckoutFixture(t, "http://relay.invalid")
	ctx := context.Background()
	_, err := cart.Add(ctx, 7, 1)
	assert.NoError(t, err)

	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{name: "dashed form", phone: "+505 8888-1234", valid: true},
		{name: "dashless form", phone: "+505 88881234", valid: true},
		{name: "missing prefix", phone: "8888-1234", valid: false},
		{name: "wrong country code", phone: "+506 8888-1234", valid: false},
		{name: "too few digits", phone: "+505 888-1234", valid: false},
		{name: "empty", phone: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, model.Profile{ID: 7}, tt.phone)
			if tt.valid {
				// Reaches the relay, which is unreachable in this test.
				assert.Equal(t, apperrors.ErrSubmissionFailed, err)
			} else {
				assert.Equal(t, apperrors.ErrInvalidPhone, err)
			}
		})
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _ := newCheckoutFixture(t, "http://relay.invalid")

	_, err := svc.Submit(context.Background(), model.Profile{ID: 7}, "+505 8888-1234")
	assert.Equal(t, apperrors.ErrEmptyCart, err)
}

func TestCheckoutRejectsConcurrentSubmission(t *testing.T) {
	release := make(chan struct{})
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer relay.Close()

	svc, cart := newCheckoutFixture(t, relay.URL)
	ctx := context.Background()
	profile := model.Profile{ID: 7, Name: "Test User", Email: "a@x.com"}
	_, err := cart.Add(ctx, 7, 1)
	assert.NoError(t, err)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, profile, "+505 8888-1234")
		firstDone <- err
	}()

	// Wait for the first submission to be in flight.
	assert.Eventually(t, func() bool {
		return svc.Status(7) == model.SubmissionStatusSubmitting
	}, time.Second, 5*time.Millisecond)

	_, err = svc.Submit(ctx, profile, "+505 8888-1234")
	assert.Equal(t, apperrors.ErrSubmissionInFlight, err)

	close(release)
	assert.NoError(t, <-firstDone)
}

func TestCheckoutResetDoesNotClobberNextSubmission(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) > 1 {
			<-release
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer relay.Close()

	svc, cart := newCheckoutFixture(t, relay.URL)
	ctx := context.Background()
	profile := model.Profile{ID: 7, Name: "Test User", Email: "a@x.com"}
	_, err := cart.Add(ctx, 7, 1)
	assert.NoError(t, err)

	_, err = svc.Submit(ctx, profile, "+505 8888-1234")
	assert.NoError(t, err)
	assert.Equal(t, model.SubmissionStatusSucceeded, svc.Status(7))

	// Resubmit inside the reset window; the relay holds this one open.
	secondDone := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, profile, "+505 8888-1234")
		secondDone <- err
	}()
	assert.Eventually(t, func() bool {
		return svc.Status(7) == model.SubmissionStatusSubmitting
	}, time.Second, time.Millisecond)

	// The stale reset from the first success fires here; it must not
	// return the in-flight submission to Idle.
	time.Sleep(3 * svc.(*checkoutService).resetDelay)
	assert.Equal(t, model.SubmissionStatusSubmitting, svc.Status(7))

	_, err = svc.Submit(ctx, profile, "+505 8888-1234")
	assert.Equal(t, apperrors.ErrSubmissionInFlight, err)

	close(release)
	assert.NoError(t, <-secondDone)
	assert.Equal(t, model.SubmissionStatusSucceeded, svc.Status(7))

	assert.Eventually(t, func() bool {
		return svc.Status(7) == model.SubmissionStatusIdle
	}, time.Second, 5*time.Millisecond)
}

func TestCheckoutStateTransitions(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusBadGateway)
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer relay.Close()

	svc, cart := newCheckoutFixture(t, relay.URL)
	ctx := context.Background()
	profile := model.Profile{ID: 7, Name: "Test User", Email: "a@x.com"}
	_, err := cart.Add(ctx, 7, 1)
	assert.NoError(t, err)

	assert.Equal(t, model.SubmissionStatusIdle, svc.Status(7))

	// Relay rejection leaves the submission in Failed for a manual retry.
	_, err = svc.Submit(ctx, profile, "+505 8888-1234")
	assert.Equal(t, apperrors.ErrSubmissionFailed, err)
	assert.Equal(t, model.SubmissionStatusFailed, svc.Status(7))

	// The cart survives the failure for resubmission.
	snapshot, err := cart.Get(ctx, 7)
	assert.NoError(t, err)
	assert.Len(t, snapshot.Items, 1)

	// A later attempt succeeds, then returns to Idle after the reset delay.
	status.Store(http.StatusOK)
	_, err = svc.Submit(ctx, profile, "+505 8888-1234")
	assert.NoError(t, err)
	assert.Equal(t, model.SubmissionStatusSucceeded, svc.Status(7))

	assert.Eventually(t, func() bool {
		return svc.Status(7) == model.SubmissionStatusIdle
	}, time.Second, 5*time.Millisecond)
}
