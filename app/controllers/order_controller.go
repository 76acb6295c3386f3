package controllers

import (
	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/pkg/ctx"
)

type OrderController struct {
	orders *services.OrderService
	users  *services.UserService
}

func NewOrderController(orders *services.OrderService, users *services.UserService) *OrderController {
	return &OrderController{orders: orders, users: users}
}

// Index handles GET /api/orders?customer&status.
func (o *OrderController) Index(c *ctx.Context) {
	caller, ok := resolveCaller(c, o.users)
	if !ok {
		return
	}
	orders, err := o.orders.Visible(c.Context(), caller, services.OrderFilter{
		Customer: c.Query("customer"),
		Status:   c.Query("status"),
	})
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(orders)
}

// Show handles GET /api/orders/{id}.
func (o *OrderController) Show(c *ctx.Context) {
	caller, ok := resolveCaller(c, o.users)
	if !ok {
		return
	}
	order, err := o.orders.Read(c.Context(), c.Param("id"), caller)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(order)
}

// Store handles POST /api/orders.
func (o *OrderController) Store(c *ctx.Context) {
	var in services.CreateOrderInput
	if !c.DecodeJSON(&in) {
		return
	}
	order, err := o.orders.Create(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(order)
}

// Update handles PUT /api/orders/{id}.
func (o *OrderController) Update(c *ctx.Context) {
	var in services.UpdateOrderInput
	if !c.DecodeJSON(&in) {
		return
	}
	caller, ok := resolveCaller(c, o.users)
	if !ok {
		return
	}
	order, err := o.orders.Update(c.Context(), c.Param("id"), caller, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(order)
}

// Destroy handles DELETE /api/orders/{id}.
func (o *OrderController) Destroy(c *ctx.Context) {
	caller, ok := resolveCaller(c, o.users)
	if !ok {
		return
	}
	order, err := o.orders.Delete(c.Context(), c.Param("id"), caller)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(order)
}
