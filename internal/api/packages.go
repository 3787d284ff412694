package api

import (
	"context"
	"fmt"

	"travel-booking/internal/dto/response"
)

// ListPackages fetches the full package catalog. The backend does not
// paginate this endpoint.
func (c *Client) ListPackages(ctx context.Context) ([]response.TourPackage, error) {
	var packages []response.TourPackage
	if err := c.getJSON(ctx, "users/packages/", &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

// GetPackage fetches a single package by identifier.
func (c *Client) GetPackage(ctx context.Context, id int) (*response.TourPackage, error) {
	var pkg response.TourPackage
	if err := c.getJSON(ctx, fmt.Sprintf("users/packages/%d/", id), &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}
