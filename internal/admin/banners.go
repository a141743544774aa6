package admin

import (
	"context"
	"fmt"

	"stylekart/internal/api"
	"stylekart/internal/model"
)

// BannersService manages promotional banners.
type BannersService struct {
	client *api.Client
}

// List fetches every banner regardless of placement or active state.
func (s *BannersService) List(ctx context.Context) ([]model.Banner, error) {
	return s.client.ListBanners(ctx)
}

// Active fetches the live banners for one placement.
func (s *BannersService) Active(ctx context.Context, bannerType model.BannerType) ([]model.Banner, error) {
	return s.client.ActiveBanners(ctx, bannerType)
}

// Create adds a banner.
func (s *BannersService) Create(ctx context.Context, b model.Banner) (model.Banner, error) {
	return s.client.CreateBanner(ctx, b)
}

// Update replaces a banner.
func (s *BannersService) Update(ctx context.Context, id string, b model.Banner) (model.Banner, error) {
	return s.client.UpdateBanner(ctx, id, b)
}

// SetActive toggles whether a banner is rendered.
func (s *BannersService) SetActive(ctx context.Context, id string, active bool) (model.Banner, error) {
	banners, err := s.client.ListBanners(ctx)
	if err != nil {
		return model.Banner{}, err
	}
	for _, b := range banners {
		if b.ID == id {
			b.IsActive = active
			return s.client.UpdateBanner(ctx, id, b)
		}
	}
	return model.Banner{}, fmt.Errorf("banner %s not found", id)
}

// Delete removes a banner.
func (s *BannersService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteBanner(ctx, id)
}
