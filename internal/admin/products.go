package admin

import (
	"context"
	"fmt"
	"io"

	"stylekart/internal/api"
	"stylekart/internal/model"

	"github.com/rs/zerolog"
)

// ProductsService manages the catalogue from the back office.
type ProductsService struct {
	client *api.Client
	logger zerolog.Logger
}

// List fetches the catalogue filtered by a case-insensitive substring query
// over name and category.
func (s *ProductsService) List(ctx context.Context, query string) ([]model.Product, error) {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return FilterProducts(products, query), nil
}

// FilterProducts keeps products whose name or category contains query.
func FilterProducts(products []model.Product, query string) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if matches(query, p.Name, p.Category) {
			out = append(out, p)
		}
	}
	return out
}

// Create adds a catalogue entry.
func (s *ProductsService) Create(ctx context.Context, p model.Product) (model.Product, error) {
	return s.client.CreateProduct(ctx, p)
}

// CreateWithImage uploads the product image first and creates the entry
// with the stored URL as its thumbnail. If the create fails the uploaded
// image is removed again so the image store does not accumulate orphans.
func (s *ProductsService) CreateWithImage(ctx context.Context, p model.Product, filename string, image io.Reader) (model.Product, error) {
	upload, err := s.client.UploadImage(ctx, filename, image)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to upload product image: %w", err)
	}

	p.ThumbImage = upload.URL
	p.Images = append(p.Images, upload.URL)

	created, err := s.client.CreateProduct(ctx, p)
	if err != nil {
		if cleanupErr := s.client.DeleteImage(ctx, upload.Filename); cleanupErr != nil {
			s.logger.Warn().Err(cleanupErr).Str("filename", upload.Filename).Msg("failed to remove orphaned upload")
		}
		return model.Product{}, err
	}
	return created, nil
}

// Update replaces a catalogue entry.
func (s *ProductsService) Update(ctx context.Context, id string, p model.Product) (model.Product, error) {
	return s.client.UpdateProduct(ctx, id, p)
}

// ReplaceImage uploads a new image and points the product's thumbnail at
// it.
func (s *ProductsService) ReplaceImage(ctx context.Context, id string, filename string, image io.Reader) (model.Product, error) {
	p, err := s.client.GetProduct(ctx, id)
	if err != nil {
		return model.Product{}, err
	}

	upload, err := s.client.UploadImage(ctx, filename, image)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to upload product image: %w", err)
	}

	p.ThumbImage = upload.URL
	return s.client.UpdateProduct(ctx, id, p)
}

// Delete removes a catalogue entry.
func (s *ProductsService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteProduct(ctx, id)
}

// SetActive toggles a product's visibility on the storefront.
func (s *ProductsService) SetActive(ctx context.Context, id string, active bool) (model.Product, error) {
	p, err := s.client.GetProduct(ctx, id)
	if err != nil {
		return model.Product{}, err
	}

	p.IsActive = active
	return s.client.UpdateProduct(ctx, id, p)
}
