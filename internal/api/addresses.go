package api

import (
	"context"
	"net/url"

	"stylekart/internal/model"
)

// ListAddresses fetches the signed-in customer's saved addresses.
func (c *Client) ListAddresses(ctx context.Context) ([]model.Address, error) {
	var addresses []model.Address
	if err := c.get(ctx, "/api/addresses", &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// CreateAddress saves a new address.
func (c *Client) CreateAddress(ctx context.Context, a model.Address) (model.Address, error) {
	var created model.Address
	if err := c.post(ctx, "/api/addresses", a, &created); err != nil {
		return model.Address{}, err
	}
	return created, nil
}

// UpdateAddress replaces a saved address.
func (c *Client) UpdateAddress(ctx context.Context, id string, a model.Address) (model.Address, error) {
	var updated model.Address
	if err := c.put(ctx, "/api/addresses/"+url.PathEscape(id), a, &updated); err != nil {
		return model.Address{}, err
	}
	return updated, nil
}

// DeleteAddress removes a saved address.
func (c *Client) DeleteAddress(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/addresses/"+url.PathEscape(id))
}
