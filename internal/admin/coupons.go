package admin

import (
	"context"
	"fmt"
	"time"

	"stylekart/internal/api"
	"stylekart/internal/model"
)

// CouponsService manages discount codes. The client never evaluates
// discount rules; it only maintains the records the backend prices against.
type CouponsService struct {
	client *api.Client
}

// List fetches coupons filtered by a case-insensitive substring query over
// code and description.
func (s *CouponsService) List(ctx context.Context, query string) ([]model.Coupon, error) {
	coupons, err := s.client.ListCoupons(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Coupon, 0, len(coupons))
	for _, c := range coupons {
		if matches(query, c.Code, c.Description) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Create adds a coupon after sanity-checking its window and value.
func (s *CouponsService) Create(ctx context.Context, coupon model.Coupon) (model.Coupon, error) {
	if err := validateCoupon(coupon); err != nil {
		return model.Coupon{}, err
	}
	return s.client.CreateCoupon(ctx, coupon)
}

// Update replaces a coupon.
func (s *CouponsService) Update(ctx context.Context, id string, coupon model.Coupon) (model.Coupon, error) {
	if err := validateCoupon(coupon); err != nil {
		return model.Coupon{}, err
	}
	return s.client.UpdateCoupon(ctx, id, coupon)
}

// Delete removes a coupon.
func (s *CouponsService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteCoupon(ctx, id)
}

func validateCoupon(c model.Coupon) error {
	if c.Code == "" {
		return fmt.Errorf("coupon code is required")
	}
	if c.DiscountValue <= 0 {
		return fmt.Errorf("discount value must be positive")
	}
	if c.DiscountType == model.DiscountPercentage && c.DiscountValue > 100 {
		return fmt.Errorf("percentage discount cannot exceed 100")
	}
	if !c.ValidUntil.IsZero() && !c.ValidFrom.IsZero() && c.ValidUntil.Before(c.ValidFrom) {
		return fmt.Errorf("coupon expires before it becomes valid")
	}
	return nil
}

// Expired reports whether a coupon's validity window has passed.
func Expired(c model.Coupon, now time.Time) bool {
	return !c.ValidUntil.IsZero() && now.After(c.ValidUntil)
}
