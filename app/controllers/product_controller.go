package controllers

import (
	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/pkg/ctx"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// Index handles GET /api/products?name&minPrice&maxPrice.
func (p *ProductController) Index(c *ctx.Context) {
	minPrice, err := c.QueryFloat("minPrice")
	if err != nil {
		c.Fail(err)
		return
	}
	maxPrice, err := c.QueryFloat("maxPrice")
	if err != nil {
		c.Fail(err)
		return
	}

	products, err := p.products.ReadAll(c.Context(), services.ProductFilter{
		Name:     c.Query("name"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	})
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(products)
}

func (p *ProductController) Show(c *ctx.Context) {
	product, err := p.products.Read(c.Context(), c.Param("id"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(product)
}

func (p *ProductController) Store(c *ctx.Context) {
	var in services.CreateProductInput
	if !c.DecodeJSON(&in) {
		return
	}
	product, err := p.products.Create(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(product)
}

func (p *ProductController) Update(c *ctx.Context) {
	var in services.UpdateProductInput
	if !c.DecodeJSON(&in) {
		return
	}
	product, err := p.products.Update(c.Context(), c.Param("id"), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(product)
}

func (p *ProductController) Destroy(c *ctx.Context) {
	product, err := p.products.Delete(c.Context(), c.Param("id"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(product)
}
