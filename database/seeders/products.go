package seeders

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/shopdesk/app/services"
)

var starterProducts = []services.CreateProductInput{
	{Name: "Ballpoint pen", Price: 20.99},
	{Name: "Notebook", Price: 13.69},
	{Name: "Desk lamp", Price: 34.50},
	{Name: "Stapler", Price: 8.25},
}

func init() {
	Register("products", SeedProducts)
}

// SeedProducts adds the starter catalogue, skipping names already present.
func SeedProducts(ctx context.Context, d Deps) error {
	existing, err := d.Products.ReadAll(ctx, services.ProductFilter{})
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, p := range existing {
		have[strings.ToLower(p.Name)] = true
	}

	for _, in := range starterProducts {
		if have[strings.ToLower(in.Name)] {
			continue
		}
		if _, err := d.Products.Create(ctx, in); err != nil {
			return err
		}
	}
	return nil
}
