// Package checkout drives the purchase flow as an explicit state machine:
//
//	CollectingInfo → CouponOptional → PaymentSelection → Submitting → Succeeded | Failed
//
// Illegal moves (submitting before validation, double submits) are rejected
// by the transition rules rather than left to UI flag juggling.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"stylekart/internal/api"
	"stylekart/internal/model"
	"stylekart/internal/money"
	"stylekart/internal/session"
	"stylekart/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// State is one node of the checkout state machine.
type State string

const (
	StateCollectingInfo   State = "collecting-info"
	StateCouponOptional   State = "coupon-optional"
	StatePaymentSelection State = "payment-selection"
	StateSubmitting       State = "submitting"
	StateSucceeded        State = "succeeded"
	StateFailed           State = "failed"
)

// ShippingChoice is the radio-selected shipping option.
type ShippingChoice string

const (
	ShippingFree  ShippingChoice = "free"
	ShippingLocal ShippingChoice = "local"
	ShippingFlat  ShippingChoice = "flat"
)

// Shipping costs and the free-shipping threshold, expressed in the
// threshold's native currency and converted per display currency.
const (
	localShippingCost     = 30
	flatShippingCost      = 40
	freeShippingThreshold = 150
)

var thresholdCurrency = money.INR

// Flow-control errors.
var (
	ErrAlreadySubmitting = errors.New("checkout: submission already in progress")
	ErrIllegalTransition = errors.New("checkout: operation not valid in current state")
	ErrCouponApplied     = errors.New("checkout: a coupon is already applied")
	ErrAddressRequired   = model.NewDomainError(model.ErrCodeValidation, "Please add an address first")
	ErrNoAddressSelected = model.NewDomainError(model.ErrCodeValidation, "Please select an address")
)

// Totals is the order summary in the display currency.
type Totals struct {
	Subtotal float64
	Discount float64
	Shipping float64
	Total    float64
}

// Result is the outcome of a submission: a hosted-payment URL to navigate
// to, or the placed order.
type Result struct {
	RedirectURL string
	Order       model.Order
}

// Orchestrator owns one checkout session's draft and drives it to a
// terminal state. It is created fresh per checkout and discarded after.
type Orchestrator struct {
	mu sync.Mutex

	state    State
	client   *api.Client
	cart     *store.CartStore
	currency *store.CurrencyStore
	guard    *session.Guard
	signedIn func() bool
	validate *validator.Validate
	logger   zerolog.Logger

	reference         uuid.UUID
	billing           model.BillingDetails
	addresses         []model.Address
	selectedAddressID string
	manualEntry       bool
	coupon            *model.AppliedCoupon
	legacyDiscount    float64
	shipping          ShippingChoice
	method            model.PaymentMethod
	order             model.Order
}

// New creates an orchestrator for one checkout session.
func New(client *api.Client, cart *store.CartStore, currency *store.CurrencyStore, sess *session.Store, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		state:    StateCollectingInfo,
		client:   client,
		cart:     cart,
		currency: currency,
		guard:    session.NewGuard(sess, logger),
		signedIn: sess.SignedIn,
		validate: validator.New(),
		logger:   logger.With().Str("component", "checkout").Logger(),

		reference: uuid.New(),
		shipping:  ShippingLocal,
		method:    model.PaymentStripe,
	}
}

// State returns the current machine state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Begin gates entry and, for signed-in customers, loads saved addresses and
// preselects the default (else first) one. Address-fetch failures do not
// block checkout; the customer falls back to manual entry.
func (o *Orchestrator) Begin(ctx context.Context) (session.Decision, error) {
	decision := o.guard.RequireAuth("/checkout")
	if !decision.Allowed {
		return decision, nil
	}

	addresses, err := o.client.ListAddresses(ctx)
	if err != nil {
		o.logger.Warn().Err(err).Msg("failed to fetch saved addresses")
		return decision, nil
	}

	o.mu.Lock()
	o.addresses = addresses
	for _, a := range addresses {
		if a.IsDefault {
			o.selectAddressLocked(a)
			break
		}
	}
	if o.selectedAddressID == "" && len(addresses) > 0 {
		o.selectAddressLocked(addresses[0])
	}
	o.mu.Unlock()

	return decision, nil
}

// selectAddressLocked copies a saved address into the billing draft. Email
// stays customer-entered; the backend does not store it on addresses.
func (o *Orchestrator) selectAddressLocked(a model.Address) {
	o.selectedAddressID = a.ID
	o.manualEntry = false

	first, last := splitFullName(a.FullName)
	email := o.billing.Email
	o.billing = model.BillingDetails{
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PhoneNumber:  a.PhoneNumber,
		Country:      a.Country,
		City:         a.City,
		Address:      a.AddressLine1,
		AddressLine2: a.AddressLine2,
		State:        a.State,
		PostalCode:   a.PostalCode,
	}
}

func splitFullName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// SelectAddress switches the billing source to a saved address.
func (o *Orchestrator) SelectAddress(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, a := range o.addresses {
		if a.ID == id {
			o.selectAddressLocked(a)
			return nil
		}
	}
	return fmt.Errorf("unknown address %s", id)
}

// Addresses returns the saved addresses loaded by Begin.
func (o *Orchestrator) Addresses() []model.Address {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]model.Address, len(o.addresses))
	copy(out, o.addresses)
	return out
}

// SetBilling replaces the draft's billing fields with manual entry.
func (o *Orchestrator) SetBilling(b model.BillingDetails) {
	o.mu.Lock()
	o.billing = b
	o.manualEntry = true
	o.selectedAddressID = ""
	o.mu.Unlock()
}

// SetEmail fills only the email field, used alongside a saved address.
func (o *Orchestrator) SetEmail(email string) {
	o.mu.Lock()
	o.billing.Email = email
	o.mu.Unlock()
}

// SaveAddress creates or updates a saved address through the backend and
// reloads the list, preselecting the saved entry. The first address a
// customer saves becomes their default.
func (o *Orchestrator) SaveAddress(ctx context.Context, a model.Address) error {
	o.mu.Lock()
	a.IsDefault = a.IsDefault || len(o.addresses) == 0
	o.mu.Unlock()

	var saved model.Address
	var err error
	if a.ID != "" {
		saved, err = o.client.UpdateAddress(ctx, a.ID, a)
	} else {
		saved, err = o.client.CreateAddress(ctx, a)
	}
	if err != nil {
		return err
	}

	addresses, err := o.client.ListAddresses(ctx)
	if err != nil {
		return err
	}

	o.mu.Lock()
	o.addresses = addresses
	o.selectAddressLocked(saved)
	o.mu.Unlock()
	return nil
}

// ConfirmInfo validates the billing draft and advances past CollectingInfo.
// The cart must be non-empty and every required field present; the email
// must look like an address.
func (o *Orchestrator) ConfirmInfo() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateCollectingInfo {
		return ErrIllegalTransition
	}

	if o.cart.ItemCount() == 0 {
		return model.ErrEmptyCart
	}

	if o.signedIn() && !o.manualEntry {
		if len(o.addresses) == 0 {
			return ErrAddressRequired
		}
		if o.selectedAddressID == "" {
			return ErrNoAddressSelected
		}
	}

	if err := o.validate.Struct(o.billing); err != nil {
		return model.NewDomainError(model.ErrCodeValidation, validationMessage(err))
	}

	o.state = StateCouponOptional
	return nil
}

// validationMessage flattens validator output into the message the UI
// toasts.
func validationMessage(err error) string {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return "Please fill in all required fields"
	}
	f := fields[0]
	if f.Field() == "Email" && f.Tag() == "email" {
		return "Please enter a valid email address"
	}
	return "Please fill in all required fields"
}

// ApplyCoupon submits the code with the current cart snapshot. A structured
// invalid verdict surfaces as an invalid-coupon domain error; a valid one
// locks further coupon entry until removed.
func (o *Orchestrator) ApplyCoupon(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return model.NewDomainError(model.ErrCodeInvalidCoupon, "Please enter a coupon code")
	}

	o.mu.Lock()
	if o.state != StateCouponOptional && o.state != StatePaymentSelection {
		o.mu.Unlock()
		return ErrIllegalTransition
	}
	if o.coupon != nil {
		o.mu.Unlock()
		return ErrCouponApplied
	}
	o.mu.Unlock()

	verdict, err := o.client.ValidateCoupon(ctx, code, o.cart.Total(), o.cart.Items())
	if err != nil {
		return err
	}
	if !verdict.Valid {
		msg := verdict.Message
		if msg == "" {
			msg = model.ErrInvalidCoupon.Message
		}
		return model.NewDomainError(model.ErrCodeInvalidCoupon, msg)
	}

	o.mu.Lock()
	coupon := verdict.Coupon
	o.coupon = &coupon
	o.mu.Unlock()

	o.logger.Info().Str("code", coupon.Code).Float64("discount", coupon.Discount).Msg("coupon applied")
	return nil
}

// RemoveCoupon clears the applied coupon and its discount.
func (o *Orchestrator) RemoveCoupon() {
	o.mu.Lock()
	o.coupon = nil
	o.mu.Unlock()
}

// AppliedCoupon returns the active coupon, if any.
func (o *Orchestrator) AppliedCoupon() *model.AppliedCoupon {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.coupon == nil {
		return nil
	}
	c := *o.coupon
	return &c
}

// SetLegacyDiscount records a discount carried over from the cart page URL.
// It only counts while no coupon is applied.
func (o *Orchestrator) SetLegacyDiscount(amount float64) {
	o.mu.Lock()
	o.legacyDiscount = amount
	o.mu.Unlock()
}

// ProceedToPayment advances past the coupon step.
func (o *Orchestrator) ProceedToPayment() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateCouponOptional {
		return ErrIllegalTransition
	}
	o.state = StatePaymentSelection
	return nil
}

// FreeShippingAvailable reports whether the subtotal has crossed the
// threshold, converted into the display currency.
func (o *Orchestrator) FreeShippingAvailable() bool {
	threshold := o.currency.Converter().Convert(freeShippingThreshold, thresholdCurrency)
	return o.cart.Total() >= threshold
}

// SelectShipping picks the shipping option. Free shipping is gated on the
// threshold.
func (o *Orchestrator) SelectShipping(choice ShippingChoice) error {
	if choice == ShippingFree && !o.FreeShippingAvailable() {
		return model.NewDomainError(model.ErrCodeValidation, "Order does not qualify for free shipping")
	}

	o.mu.Lock()
	o.shipping = choice
	o.mu.Unlock()
	return nil
}

// SelectPaymentMethod picks between the hosted redirect and cash on
// delivery.
func (o *Orchestrator) SelectPaymentMethod(method model.PaymentMethod) {
	o.mu.Lock()
	o.method = method
	o.mu.Unlock()
}

// Totals computes the order summary in the display currency. The discount
// never drives the goods total below zero.
func (o *Orchestrator) Totals() Totals {
	o.mu.Lock()
	coupon := o.coupon
	legacy := o.legacyDiscount
	shipping := o.shipping
	o.mu.Unlock()

	subtotal := decimal.NewFromFloat(o.cart.Total())

	discount := decimal.Zero
	if coupon != nil {
		discount = decimal.NewFromFloat(coupon.Discount)
	} else if legacy > 0 {
		discount = decimal.NewFromFloat(legacy)
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	ship := decimal.Zero
	switch shipping {
	case ShippingLocal:
		ship = decimal.NewFromInt(localShippingCost)
	case ShippingFlat:
		ship = decimal.NewFromInt(flatShippingCost)
	}

	total := subtotal.Sub(discount).Add(ship)

	out := Totals{}
	out.Subtotal, _ = subtotal.Round(2).Float64()
	out.Discount, _ = discount.Round(2).Float64()
	out.Shipping, _ = ship.Round(2).Float64()
	out.Total, _ = total.Round(2).Float64()
	return out
}

// draft assembles the order payload from the cart and the session's
// selections.
func (o *Orchestrator) draft() model.OrderDraft {
	totals := o.Totals()

	o.mu.Lock()
	defer o.mu.Unlock()

	lines := o.cart.Items()
	items := make([]model.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = model.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
			Image:     line.Image,
		}
	}

	draft := model.OrderDraft{
		Reference:    o.reference,
		CustomerInfo: o.billing,
		Items:        items,
		Subtotal:     totals.Subtotal,
		Discount:     totals.Discount,
		Shipping:     totals.Shipping,
		Total:        totals.Total,
		Currency:     string(o.currency.Selected()),
	}
	if o.coupon != nil {
		draft.CouponCode = o.coupon.Code
	}
	return draft
}

// Submit dispatches the selected payment flow. It refuses to run outside
// PaymentSelection and refuses re-entry while a submission is in flight,
// which is what prevents double-click duplicate orders.
func (o *Orchestrator) Submit(ctx context.Context) (Result, error) {
	o.mu.Lock()
	switch o.state {
	case StateSubmitting:
		o.mu.Unlock()
		return Result{}, ErrAlreadySubmitting
	case StatePaymentSelection:
	default:
		o.mu.Unlock()
		return Result{}, ErrIllegalTransition
	}
	o.state = StateSubmitting
	method := o.method
	o.mu.Unlock()

	if method == model.PaymentCashOnDelivery {
		return o.submitCashOnDelivery(ctx)
	}
	return o.submitHostedRedirect(ctx)
}

// submitHostedRedirect creates the hosted checkout session. On success the
// caller navigates to the URL and later completes the flow through
// VerifyHostedReturn; on failure the machine returns to PaymentSelection so
// the customer can retry in place.
func (o *Orchestrator) submitHostedRedirect(ctx context.Context) (Result, error) {
	sessionResp, err := o.client.CreateCheckoutSession(ctx, o.draft())
	if err != nil {
		o.logger.Error().Err(err).Msg("failed to create checkout session")
		o.mu.Lock()
		o.state = StatePaymentSelection
		o.mu.Unlock()
		return Result{}, fmt.Errorf("failed to initialise payment: %w", err)
	}

	o.logger.Info().Str("reference", o.reference.String()).Msg("redirecting to hosted payment")
	return Result{RedirectURL: sessionResp.URL}, nil
}

// submitCashOnDelivery places the order directly.
func (o *Orchestrator) submitCashOnDelivery(ctx context.Context) (Result, error) {
	draft := o.draft()
	draft.PaymentMethod = model.PaymentCashOnDelivery

	order, err := o.client.CreateOrder(ctx, draft)
	if err != nil {
		o.logger.Error().Err(err).Msg("failed to place cash-on-delivery order")
		o.mu.Lock()
		o.state = StateFailed
		o.mu.Unlock()
		return Result{}, fmt.Errorf("failed to place order: %w", err)
	}

	o.complete(order)
	return Result{Order: order}, nil
}

// VerifyHostedReturn completes a hosted payment on return from the
// provider: the session is verified, the cart cleared, and the machine
// reaches Succeeded with the server-issued order.
func (o *Orchestrator) VerifyHostedReturn(ctx context.Context, sessionID string) (model.Order, error) {
	order, err := o.client.VerifyCheckoutSession(ctx, sessionID)
	if err != nil {
		o.mu.Lock()
		o.state = StateFailed
		o.mu.Unlock()
		return model.Order{}, fmt.Errorf("failed to verify payment: %w", err)
	}

	o.complete(order)
	return order, nil
}

func (o *Orchestrator) complete(order model.Order) {
	o.cart.Clear()
	o.mu.Lock()
	o.order = order
	o.state = StateSucceeded
	o.mu.Unlock()
	o.logger.Info().Str("order_number", order.OrderNumber).Msg("order placed")
}

// Order returns the placed order once the machine has succeeded.
func (o *Orchestrator) Order() (model.Order, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.order, o.state == StateSucceeded
}

// Retry returns a failed submission to PaymentSelection.
func (o *Orchestrator) Retry() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateFailed {
		return ErrIllegalTransition
	}
	o.state = StatePaymentSelection
	return nil
}
