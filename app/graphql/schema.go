// Package graphql exposes a read-only GraphQL view of orders and products.
// Order queries apply the same authorization rules as the REST routes.
package graphql

import (
	"context"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/services"
	gql "github.com/shashiranjanraj/shopdesk/pkg/graphql"
)

// CallerFunc resolves the authenticated caller of a request.
type CallerFunc func(ctx context.Context) (models.Caller, error)

// Resolvers bundles what the schema reads from.
type Resolvers struct {
	Orders   *services.OrderService
	Products *services.ProductService
	Caller   CallerFunc
}

// NewSchema builds the schema over r.
func NewSchema(r Resolvers) (graphql.Schema, error) {
	product := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: productField(func(p models.Product) any { return p.ID.String() })},
			"name":  &graphql.Field{Type: graphql.String, Resolve: productField(func(p models.Product) any { return p.Name })},
			"price": &graphql.Field{Type: graphql.Float, Resolve: productField(func(p models.Product) any { return p.Price })},
		},
	})

	lineItem := graphql.NewObject(graphql.ObjectConfig{
		Name: "LineItem",
		Fields: graphql.Fields{
			"product": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					li, _ := p.Source.(models.LineItem)
					return li.Product.String(), nil
				},
			},
			"quantity": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					li, _ := p.Source.(models.LineItem)
					return li.Quantity, nil
				},
			},
		},
	})

	order := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: orderField(func(o models.Order) any { return o.ID.String() })},
			"status":    &graphql.Field{Type: graphql.String, Resolve: orderField(func(o models.Order) any { return string(o.Status) })},
			"total":     &graphql.Field{Type: graphql.Float, Resolve: orderField(func(o models.Order) any { return o.Total })},
			"customer":  &graphql.Field{Type: graphql.ID, Resolve: orderField(func(o models.Order) any { return o.Customer.String() })},
			"products":  &graphql.Field{Type: graphql.NewList(lineItem), Resolve: orderField(func(o models.Order) any { return o.Products })},
			"createdAt": &graphql.Field{Type: graphql.DateTime, Resolve: orderField(func(o models.Order) any { return o.CreatedAt })},
			"updatedAt": &graphql.Field{Type: graphql.DateTime, Resolve: orderField(func(o models.Order) any { return o.UpdatedAt })},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"orders": &graphql.Field{
				Type: graphql.NewList(order),
				Args: graphql.FieldConfigArgument{
					"customer": &graphql.ArgumentConfig{Type: graphql.String},
					"status":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					caller, err := r.Caller(p.Context)
					if err != nil {
						return nil, err
					}
					customer, _ := p.Args["customer"].(string)
					status, _ := p.Args["status"].(string)
					return r.Orders.Visible(p.Context, caller, services.OrderFilter{Customer: customer, Status: status})
				},
			},
			"order": &graphql.Field{
				Type: order,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					caller, err := r.Caller(p.Context)
					if err != nil {
						return nil, err
					}
					id, _ := p.Args["id"].(string)
					return r.Orders.Read(p.Context, id, caller)
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(product),
				Args: graphql.FieldConfigArgument{
					"name":     &graphql.ArgumentConfig{Type: graphql.String},
					"minPrice": &graphql.ArgumentConfig{Type: graphql.Float},
					"maxPrice": &graphql.ArgumentConfig{Type: graphql.Float},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					f := services.ProductFilter{}
					f.Name, _ = p.Args["name"].(string)
					if v, ok := p.Args["minPrice"].(float64); ok {
						f.MinPrice = &v
					}
					if v, ok := p.Args["maxPrice"].(float64); ok {
						f.MaxPrice = &v
					}
					return r.Products.ReadAll(p.Context, f)
				},
			},
			"product": &graphql.Field{
				Type: product,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, _ := p.Args["id"].(string)
					return r.Products.Read(p.Context, id)
				},
			},
		},
	})

	return gql.NewSchema(query)
}

func orderField(get func(models.Order) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		o, ok := p.Source.(models.Order)
		if !ok {
			return nil, nil
		}
		return get(o), nil
	}
}

func productField(get func(models.Product) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		pr, ok := p.Source.(models.Product)
		if !ok {
			return nil, nil
		}
		return get(pr), nil
	}
}
