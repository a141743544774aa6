package api

import (
	"context"
	"net/url"

	"stylekart/internal/model"
	"stylekart/internal/store"
)

// CouponValidation is the structured verdict of the validation endpoint. An
// invalid code is not an error: the backend answers {valid:false, message}.
type CouponValidation struct {
	Valid   bool                `json:"valid"`
	Coupon  model.AppliedCoupon `json:"coupon"`
	Message string              `json:"message,omitempty"`
}

// couponValidateRequest carries the cart snapshot the backend prices the
// coupon against.
type couponValidateRequest struct {
	Code      string           `json:"code"`
	CartTotal float64          `json:"cartTotal"`
	Products  []store.CartLine `json:"products"`
}

// ValidateCoupon asks the backend whether code applies to the given cart.
func (c *Client) ValidateCoupon(ctx context.Context, code string, cartTotal float64, lines []store.CartLine) (CouponValidation, error) {
	req := couponValidateRequest{Code: code, CartTotal: cartTotal, Products: lines}

	var verdict CouponValidation
	if err := c.post(ctx, "/api/coupons/validate", req, &verdict); err != nil {
		return CouponValidation{}, err
	}
	return verdict, nil
}

// AvailableCoupons lists coupons the storefront may advertise at checkout.
func (c *Client) AvailableCoupons(ctx context.Context) ([]model.Coupon, error) {
	var coupons []model.Coupon
	if err := c.get(ctx, "/api/coupons/available", &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

// ListCoupons fetches all coupons (admin).
func (c *Client) ListCoupons(ctx context.Context) ([]model.Coupon, error) {
	var coupons []model.Coupon
	if err := c.get(ctx, "/api/coupons", &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

// CreateCoupon creates a coupon (admin).
func (c *Client) CreateCoupon(ctx context.Context, coupon model.Coupon) (model.Coupon, error) {
	var created model.Coupon
	if err := c.post(ctx, "/api/coupons", coupon, &created); err != nil {
		return model.Coupon{}, err
	}
	return created, nil
}

// UpdateCoupon replaces a coupon (admin).
func (c *Client) UpdateCoupon(ctx context.Context, id string, coupon model.Coupon) (model.Coupon, error) {
	var updated model.Coupon
	if err := c.put(ctx, "/api/coupons/"+url.PathEscape(id), coupon, &updated); err != nil {
		return model.Coupon{}, err
	}
	return updated, nil
}

// DeleteCoupon removes a coupon (admin).
func (c *Client) DeleteCoupon(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/coupons/"+url.PathEscape(id))
}
