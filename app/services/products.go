package services

import (
	"context"
	"strings"

	"github.com/go-faster/errors"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/repositories"
	"github.com/shashiranjanraj/shopdesk/pkg/apperr"
	"github.com/shashiranjanraj/shopdesk/pkg/validate"
)

type CreateProductInput struct {
	Name  string  `json:"name"  validate:"required,max=255"`
	Price float64 `json:"price" validate:"gte=0"`
}

// UpdateProductInput changes the name, the price, or both.
type UpdateProductInput struct {
	Name  *string  `json:"name"  validate:"nullable,max=255"`
	Price *float64 `json:"price" validate:"nullable,gte=0"`
}

// ProductFilter narrows ReadAll. Name is a case-insensitive substring.
type ProductFilter struct {
	Name     string
	MinPrice *float64
	MaxPrice *float64
}

// ProductService manages the catalogue. Price changes never touch existing
// orders; totals are only recomputed when an order's products are written.
type ProductService struct {
	products repositories.ProductRepository
}

func NewProductService(products repositories.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Product{}, apperr.Invalid(errs)
	}

	p := models.Product{Name: in.Name, Price: in.Price}
	if err := s.products.Insert(ctx, &p); err != nil {
		return models.Product{}, errors.Wrap(err, "products: insert")
	}
	return p, nil
}

func (s *ProductService) Read(ctx context.Context, id string) (models.Product, error) {
	pid, err := models.ParseID(id)
	if err != nil {
		return models.Product{}, apperr.Wrap(apperr.InvalidID, err, "invalid product id")
	}
	return s.ReadByID(ctx, pid)
}

func (s *ProductService) ReadByID(ctx context.Context, id models.ID) (models.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, notFound(err, "product", "products: find")
	}
	return p, nil
}

func (s *ProductService) ReadAll(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return []models.Product{}, nil
	}
	products, err := s.products.FindAll(ctx, repositories.ProductQuery{
		Name:     strings.TrimSpace(f.Name),
		MinPrice: f.MinPrice,
		MaxPrice: f.MaxPrice,
	})
	if err != nil {
		return nil, errors.Wrap(err, "products: find all")
	}
	return products, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in UpdateProductInput) (models.Product, error) {
	if in.Name == nil && in.Price == nil {
		return models.Product{}, apperr.New(apperr.InvalidPayload, "You must provide at least one product attribute!")
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return models.Product{}, apperr.Invalid(map[string]string{"name": "The name field is required."})
		}
		in.Name = &name
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Product{}, apperr.Invalid(errs)
	}

	p, err := s.Read(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		p.Price = *in.Price
	}

	if err := s.products.Update(ctx, &p); err != nil {
		return models.Product{}, notFound(err, "product", "products: update")
	}
	return p, nil
}

// Delete removes a product and returns it as it was. Orders referencing it
// keep their stored totals.
func (s *ProductService) Delete(ctx context.Context, id string) (models.Product, error) {
	p, err := s.Read(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if err := s.products.Delete(ctx, p.ID); err != nil {
		return models.Product{}, notFound(err, "product", "products: delete")
	}
	return p, nil
}
