package api

import (
	"context"
	"errors"
	"net/url"

	"stylekart/internal/model"

	"github.com/cenkalti/backoff/v4"
)

// PaymentIntent is the client-secret handle for an in-page card payment.
type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}

// CheckoutSession is the hosted-redirect payment page.
type CheckoutSession struct {
	URL string `json:"url"`
}

type paymentIntentRequest struct {
	Amount    float64          `json:"amount"`
	Currency  string           `json:"currency"`
	OrderData model.OrderDraft `json:"orderData"`
}

// CreatePaymentIntent creates a payment intent for the draft. A hung or
// flaky request here blocks checkout entirely, so each attempt runs under
// the payment timeout and transient failures are retried with exponential
// backoff; 4xx verdicts are terminal.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount float64, currency string, draft model.OrderDraft) (PaymentIntent, error) {
	req := paymentIntentRequest{Amount: amount, Currency: currency, OrderData: draft}

	var intent PaymentIntent
	operation := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, c.payment.Timeout)
		defer cancel()

		err := c.post(attemptCtx, "/api/payment/create-payment-intent", req, &intent)
		if err == nil {
			return nil
		}

		var status *StatusError
		if errors.As(err, &status) && status.Code < 500 {
			return backoff.Permanent(err)
		}
		if errors.Is(err, model.ErrUnauthorised) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.payment.MaxRetries)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return PaymentIntent{}, err
	}
	return intent, nil
}

// CreateCheckoutSession posts the order draft and returns the hosted payment
// URL to redirect the customer to.
func (c *Client) CreateCheckoutSession(ctx context.Context, draft model.OrderDraft) (CheckoutSession, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.payment.Timeout)
	defer cancel()

	var session CheckoutSession
	if err := c.post(attemptCtx, "/api/payment/create-checkout-session", draft, &session); err != nil {
		return CheckoutSession{}, err
	}
	return session, nil
}

type verifySessionRequest struct {
	SessionID string `json:"sessionId"`
}

type orderEnvelope struct {
	Order model.Order `json:"order"`
}

// VerifyCheckoutSession confirms a completed hosted payment on return from
// the provider and yields the placed order.
func (c *Client) VerifyCheckoutSession(ctx context.Context, sessionID string) (model.Order, error) {
	var envelope orderEnvelope
	if err := c.post(ctx, "/api/payment/verify-checkout-session", verifySessionRequest{SessionID: sessionID}, &envelope); err != nil {
		return model.Order{}, err
	}
	return envelope.Order, nil
}

// CreateOrder places the order directly (cash on delivery).
func (c *Client) CreateOrder(ctx context.Context, draft model.OrderDraft) (model.Order, error) {
	var envelope orderEnvelope
	if err := c.post(ctx, "/api/payment/orders", draft, &envelope); err != nil {
		return model.Order{}, err
	}
	return envelope.Order, nil
}

// ListOrders fetches orders (admin, or the customer's own).
func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.get(ctx, "/api/payment/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrder updates an order's status fields (admin).
func (c *Client) UpdateOrder(ctx context.Context, id string, fields map[string]any) (model.Order, error) {
	var order model.Order
	if err := c.put(ctx, "/api/payment/orders/"+url.PathEscape(id), fields, &order); err != nil {
		return model.Order{}, err
	}
	return order, nil
}
