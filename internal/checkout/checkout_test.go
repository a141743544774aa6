package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stylekart/internal/api"
	"stylekart/internal/config"
	"stylekart/internal/model"
	"stylekart/internal/money"
	"stylekart/internal/session"
	"stylekart/internal/storage"
	"stylekart/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	orch     *Orchestrator
	cart     *store.CartStore
	currency *store.CurrencyStore
	session  *session.Store
	mux      *http.ServeMux
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	st := storage.NewMemStore()
	currency := store.NewCurrencyStore(st, money.INR, zerolog.Nop())
	cart := store.NewCartStore(st, currency, zerolog.Nop())
	sess := session.NewStore(st, zerolog.Nop())
	sess.Set("token-123", model.User{ID: "U1", Email: "jo@example.com"})

	client := api.NewClient(
		config.APIConfig{BaseURL: server.URL, Timeout: 5 * time.Second},
		config.PaymentConfig{Timeout: 2 * time.Second, MaxRetries: 1},
		sess, zerolog.Nop(),
	)

	return &fixture{
		orch:     New(client, cart, currency, sess, zerolog.Nop()),
		cart:     cart,
		currency: currency,
		session:  sess,
		mux:      mux,
	}
}

func billedProduct() model.Product {
	return model.Product{
		ID:       "P001",
		Name:     "Linen Shirt",
		Price:    1000,
		Currency: "INR",
		Variations: []model.Variation{
			{Size: "M", Color: "Black", Stock: 10},
		},
	}
}

func validBilling() model.BillingDetails {
	return model.BillingDetails{
		FirstName:   "Jo",
		LastName:    "Meyer",
		Email:       "jo@example.com",
		PhoneNumber: "5551234",
		Country:     "DE",
		City:        "Berlin",
		Address:     "Hauptstr. 1",
		State:       "BE",
		PostalCode:  "10115",
	}
}

// advance walks the fixture to PaymentSelection with a valid draft.
func (f *fixture) advance(t *testing.T) {
	t.Helper()
	require.NoError(t, f.cart.AddToCart(billedProduct(), "M", "Black"))
	f.orch.SetBilling(validBilling())
	require.NoError(t, f.orch.ConfirmInfo())
	require.NoError(t, f.orch.ProceedToPayment())
}

func TestConfirmInfo_EmptyCartRejected(t *testing.T) {
	f := newFixture(t)
	f.orch.SetBilling(validBilling())

	err := f.orch.ConfirmInfo()
	assert.ErrorIs(t, err, model.ErrEmptyCart)
	assert.Equal(t, StateCollectingInfo, f.orch.State())
}

func TestConfirmInfo_MissingFieldsRejected(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.AddToCart(billedProduct(), "M", "Black"))

	billing := validBilling()
	billing.City = ""
	f.orch.SetBilling(billing)

	err := f.orch.ConfirmInfo()
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
	assert.Equal(t, StateCollectingInfo, f.orch.State())
}

func TestConfirmInfo_BadEmailRejected(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.AddToCart(billedProduct(), "M", "Black"))

	billing := validBilling()
	billing.Email = "not-an-email"
	f.orch.SetBilling(billing)

	err := f.orch.ConfirmInfo()
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Contains(t, domainErr.Message, "valid email")
}

func TestConfirmInfo_AdvancesToCouponStep(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.AddToCart(billedProduct(), "M", "Black"))
	f.orch.SetBilling(validBilling())

	require.NoError(t, f.orch.ConfirmInfo())
	assert.Equal(t, StateCouponOptional, f.orch.State())
}

func TestConfirmInfo_SignedInWithoutAddressRejected(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.AddToCart(billedProduct(), "M", "Black"))

	// no SetBilling call: the customer never switched to manual entry and
	// has no saved addresses
	err := f.orch.ConfirmInfo()
	assert.ErrorIs(t, err, ErrAddressRequired)
}

func TestBegin_RedirectsWhenSignedOut(t *testing.T) {
	f := newFixture(t)
	f.session.Clear()

	decision, err := f.orch.Begin(context.Background())
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, "/login?redirect=%2Fcheckout", decision.RedirectTo)
}

func TestBegin_PreselectsDefaultAddress(t *testing.T) {
	f := newFixture(t)
	f.mux.HandleFunc("GET /api/addresses", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Address{
			{ID: "A1", FullName: "Jo Meyer", City: "Berlin"},
			{ID: "A2", FullName: "Jo Meyer", City: "Hamburg", IsDefault: true},
		})
	})

	decision, err := f.orch.Begin(context.Background())
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	require.Len(t, f.orch.Addresses(), 2)

	require.NoError(t, f.orch.SelectAddress("A1"))
	assert.Error(t, f.orch.SelectAddress("A9"))
}

func TestBegin_AddressFetchFailureDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.mux.HandleFunc("GET /api/addresses", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	decision, err := f.orch.Begin(context.Background())
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Empty(t, f.orch.Addresses())
}

func TestApplyCoupon_InvalidVerdict(t *testing.T) {
	f := newFixture(t)
	f.advance(t)
	f.mux.HandleFunc("POST /api/coupons/validate", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"valid": false, "message": "Coupon has expired"})
	})

	err := f.orch.ApplyCoupon(context.Background(), "OLD10")
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeInvalidCoupon, domainErr.Code)
	assert.Equal(t, "Coupon has expired", domainErr.Message)
	assert.Nil(t, f.orch.AppliedCoupon())
}

func TestApplyCoupon_ValidLocksFurtherEntry(t *testing.T) {
	f := newFixture(t)
	f.advance(t)
	f.mux.HandleFunc("POST /api/coupons/validate", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"valid":  true,
			"coupon": map[string]any{"code": "SAVE10", "discount": 100},
		})
	})

	require.NoError(t, f.orch.ApplyCoupon(context.Background(), "SAVE10"))
	require.NotNil(t, f.orch.AppliedCoupon())
	assert.Equal(t, "SAVE10", f.orch.AppliedCoupon().Code)

	err := f.orch.ApplyCoupon(context.Background(), "SAVE20")
	assert.ErrorIs(t, err, ErrCouponApplied)

	f.orch.RemoveCoupon()
	assert.Nil(t, f.orch.AppliedCoupon())
}

func TestTotals_CouponOverridesLegacyDiscount(t *testing.T) {
	f := newFixture(t)
	f.advance(t)
	f.mux.HandleFunc("POST /api/coupons/validate", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"valid":  true,
			"coupon": map[string]any{"code": "SAVE100", "discount": 100},
		})
	})

	f.orch.SetLegacyDiscount(50)
	totals := f.orch.Totals()
	assert.InDelta(t, 50, totals.Discount, 0.001)

	require.NoError(t, f.orch.ApplyCoupon(context.Background(), "SAVE100"))
	totals = f.orch.Totals()
	assert.InDelta(t, 100, totals.Discount, 0.001)

	f.orch.RemoveCoupon()
	totals = f.orch.Totals()
	assert.InDelta(t, 50, totals.Discount, 0.001)
}

func TestTotals_DiscountClampedToSubtotal(t *testing.T) {
	f := newFixture(t)
	f.advance(t)

	f.orch.SetLegacyDiscount(5000)
	require.NoError(t, f.orch.SelectShipping(ShippingFlat))

	totals := f.orch.Totals()
	assert.InDelta(t, 1000, totals.Subtotal, 0.001)
	assert.InDelta(t, 1000, totals.Discount, 0.001)
	assert.InDelta(t, 40, totals.Total, 0.001)
}

func TestTotals_ShippingChoices(t *testing.T) {
	f := newFixture(t)
	f.advance(t)

	require.NoError(t, f.orch.SelectShipping(ShippingLocal))
	assert.InDelta(t, 1030, f.orch.Totals().Total, 0.001)

	require.NoError(t, f.orch.SelectShipping(ShippingFlat))
	assert.InDelta(t, 1040, f.orch.Totals().Total, 0.001)

	// subtotal 1000 INR clears the 150 INR threshold
	require.NoError(t, f.orch.SelectShipping(ShippingFree))
	assert.InDelta(t, 1000, f.orch.Totals().Total, 0.001)
}

func TestSelectShipping_FreeGatedOnThreshold(t *testing.T) {
	f := newFixture(t)
	p := billedProduct()
	p.Price = 100 // below the 150 INR threshold
	require.NoError(t, f.cart.AddToCart(p, "M", "Black"))

	assert.False(t, f.orch.FreeShippingAvailable())
	err := f.orch.SelectShipping(ShippingFree)
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
}

func TestFreeShippingThreshold_ConvertedToDisplayCurrency(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.currency.SetCurrency(money.USD))

	p := billedProduct()
	p.Price = 200 // 200 INR is about $2.41, threshold about $1.80
	require.NoError(t, f.cart.AddToCart(p, "M", "Black"))

	assert.True(t, f.orch.FreeShippingAvailable())
}

func TestSubmit_CashOnDeliveryPlacesOrderAndClearsCart(t *testing.T) {
	f := newFixture(t)
	f.advance(t)
	f.orch.SelectPaymentMethod(model.PaymentCashOnDelivery)

	var draft model.OrderDraft
	f.mux.HandleFunc("POST /api/payment/orders", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		json.NewEncoder(w).Encode(map[string]any{
			"order": map[string]any{"orderNumber": "ORD-1001", "status": "pending"},
		})
	})

	result, err := f.orch.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ORD-1001", result.Order.OrderNumber)
	assert.Equal(t, StateSucceeded, f.orch.State())
	assert.Zero(t, f.cart.ItemCount())

	assert.Equal(t, model.PaymentCashOnDelivery, draft.PaymentMethod)
	assert.NotEqual(t, uuid.Nil, draft.Reference)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, "P001", draft.Items[0].ProductID)

	order, ok := f.orch.Order()
	require.True(t, ok)
	assert.Equal(t, "ORD-1001", order.OrderNumber)
}

func TestSubmit_CashOnDeliveryFailureReachesFailedAndRetries(t *testing.T) {
	f := newFixture(t)
	f.advance(t)
	f.orch.SelectPaymentMethod(model.PaymentCashOnDelivery)

	f.mux.HandleFunc("POST /api/payment/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := f.orch.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateFailed, f.orch.State())
	assert.Equal(t, 1, f.cart.ItemCount())

	require.NoError(t, f.orch.Retry())
	assert.Equal(t, StatePaymentSelection, f.orch.State())
}

func TestSubmit_HostedRedirectReturnsURL(t *testing.T) {
	f := newFixture(t)
	f.advance(t)

	f.mux.HandleFunc("POST /api/payment/create-checkout-session", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"url": "https://pay.example.com/cs_123"})
	})

	result, err := f.orch.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/cs_123", result.RedirectURL)
	assert.Equal(t, StateSubmitting, f.orch.State())
	// cart survives until the provider confirms payment
	assert.Equal(t, 1, f.cart.ItemCount())
}

func TestSubmit_HostedFailureReturnsToPaymentSelection(t *testing.T) {
	f := newFixture(t)
	f.advance(t)

	f.mux.HandleFunc("POST /api/payment/create-checkout-session", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := f.orch.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StatePaymentSelection, f.orch.State())
}

func TestSubmit_RejectedWhileSubmitting(t *testing.T) {
	f := newFixture(t)
	f.advance(t)

	f.mux.HandleFunc("POST /api/payment/create-checkout-session", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"url": "https://pay.example.com/cs_123"})
	})

	_, err := f.orch.Submit(context.Background())
	require.NoError(t, err)

	_, err = f.orch.Submit(context.Background())
	assert.ErrorIs(t, err, ErrAlreadySubmitting)
}

func TestSubmit_RejectedBeforePaymentSelection(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.AddToCart(billedProduct(), "M", "Black"))
	f.orch.SetBilling(validBilling())

	_, err := f.orch.Submit(context.Background())
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestVerifyHostedReturn_CompletesOrder(t *testing.T) {
	f := newFixture(t)
	f.advance(t)

	f.mux.HandleFunc("POST /api/payment/create-checkout-session", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"url": "https://pay.example.com/cs_123"})
	})
	f.mux.HandleFunc("POST /api/payment/verify-checkout-session", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "cs_123", req["sessionId"])
		json.NewEncoder(w).Encode(map[string]any{
			"order": map[string]any{"orderNumber": "ORD-2002", "paymentStatus": "paid"},
		})
	})

	_, err := f.orch.Submit(context.Background())
	require.NoError(t, err)

	order, err := f.orch.VerifyHostedReturn(context.Background(), "cs_123")
	require.NoError(t, err)
	assert.Equal(t, "ORD-2002", order.OrderNumber)
	assert.Equal(t, StateSucceeded, f.orch.State())
	assert.Zero(t, f.cart.ItemCount())
}

func TestSaveAddress_FirstAddressBecomesDefault(t *testing.T) {
	f := newFixture(t)

	var created model.Address
	f.mux.HandleFunc("POST /api/addresses", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
		created.ID = "A1"
		json.NewEncoder(w).Encode(created)
	})
	f.mux.HandleFunc("GET /api/addresses", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Address{created})
	})

	err := f.orch.SaveAddress(context.Background(), model.Address{
		FullName: "Jo Meyer", AddressLine1: "Hauptstr. 1", City: "Berlin",
		State: "BE", PostalCode: "10115", Country: "DE", PhoneNumber: "5551234",
	})
	require.NoError(t, err)
	assert.True(t, created.IsDefault)
	require.Len(t, f.orch.Addresses(), 1)
}
