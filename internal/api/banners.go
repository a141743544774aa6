package api

import (
	"context"
	"net/url"

	"stylekart/internal/model"
)

// ActiveBanners fetches the live banners for a placement.
func (c *Client) ActiveBanners(ctx context.Context, bannerType model.BannerType) ([]model.Banner, error) {
	var banners []model.Banner
	if err := c.get(ctx, "/api/banners/active?type="+url.QueryEscape(string(bannerType)), &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

// ListBanners fetches all banners (admin).
func (c *Client) ListBanners(ctx context.Context) ([]model.Banner, error) {
	var banners []model.Banner
	if err := c.get(ctx, "/api/banners", &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

// CreateBanner creates a banner (admin).
func (c *Client) CreateBanner(ctx context.Context, b model.Banner) (model.Banner, error) {
	var created model.Banner
	if err := c.post(ctx, "/api/banners", b, &created); err != nil {
		return model.Banner{}, err
	}
	return created, nil
}

// UpdateBanner replaces a banner (admin).
func (c *Client) UpdateBanner(ctx context.Context, id string, b model.Banner) (model.Banner, error) {
	var updated model.Banner
	if err := c.put(ctx, "/api/banners/"+url.PathEscape(id), b, &updated); err != nil {
		return model.Banner{}, err
	}
	return updated, nil
}

// DeleteBanner removes a banner (admin).
func (c *Client) DeleteBanner(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/banners/"+url.PathEscape(id))
}
