package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"stylekart/internal/model"
)

// ListProducts fetches the catalogue, normalizing each document at the
// boundary.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/products", &raw); err != nil {
		return nil, err
	}

	products, err := model.NormalizeProducts(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize product list: %w", err)
	}
	return products, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (model.Product, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/products/"+url.PathEscape(id), &raw); err != nil {
		return model.Product{}, err
	}

	p, err := model.NormalizeProduct(raw)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to normalize product %s: %w", id, err)
	}
	return p, nil
}

// CreateProduct creates a catalogue entry (admin).
func (c *Client) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	var raw json.RawMessage
	if err := c.post(ctx, "/api/products", p, &raw); err != nil {
		return model.Product{}, err
	}
	return model.NormalizeProduct(raw)
}

// UpdateProduct replaces a catalogue entry (admin).
func (c *Client) UpdateProduct(ctx context.Context, id string, p model.Product) (model.Product, error) {
	var raw json.RawMessage
	if err := c.put(ctx, "/api/products/"+url.PathEscape(id), p, &raw); err != nil {
		return model.Product{}, err
	}
	return model.NormalizeProduct(raw)
}

// DeleteProduct removes a catalogue entry (admin).
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/products/"+url.PathEscape(id))
}
