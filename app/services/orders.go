package services

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/repositories"
	"github.com/shashiranjanraj/shopdesk/pkg/apperr"
	"github.com/shashiranjanraj/shopdesk/pkg/collection"
)

// Order lifecycle events emitted after each successful write.
const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
	EventOrderDeleted = "order.deleted"
)

// LineItemInput is a line item as received from a client. Product stays a
// string so that a malformed id is reported as a domain error rather than
// a decoding failure.
type LineItemInput struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// CreateOrderInput is the payload of OrderService.Create. A nil Products
// means the field was absent.
type CreateOrderInput struct {
	Customer string          `json:"customer"`
	Products []LineItemInput `json:"products"`
}

// UpdateOrderInput is the payload of OrderService.Update. A nil Products
// leaves the line items alone; an empty Status leaves the status alone.
type UpdateOrderInput struct {
	Products *[]LineItemInput `json:"products"`
	Status   string           `json:"status"`
}

// OrderFilter narrows ReadAll. Customer is an exact id match, Status is
// compared case-insensitively.
type OrderFilter struct {
	Customer string `json:"customer,omitempty"`
	Status   string `json:"status,omitempty"`
}

// Customers resolves order owners.
type Customers interface {
	ReadByID(ctx context.Context, id models.ID) (models.User, error)
}

// Catalog resolves product prices.
type Catalog interface {
	ReadByID(ctx context.Context, id models.ID) (models.Product, error)
}

// Notifier receives order lifecycle events.
type Notifier interface {
	Notify(ctx context.Context, event string, order models.Order)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, models.Order) {}

// OrderService validates and persists orders, computes their totals and
// enforces ownership.
type OrderService struct {
	customers Customers
	catalog   Catalog
	orders    repositories.OrderRepository
	notifier  Notifier
}

// NewOrderService wires the engine. notifier may be nil.
func NewOrderService(customers Customers, catalog Catalog, orders repositories.OrderRepository, notifier Notifier) *OrderService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &OrderService{
		customers: customers,
		catalog:   catalog,
		orders:    orders,
		notifier:  notifier,
	}
}

// Create validates the customer and the line items, prices the order and
// stores it as ACTIVE.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (models.Order, error) {
	customer := in.Customer
	if customer == "" && in.Products == nil {
		return models.Order{}, apperr.New(apperr.InvalidPayload, "missing payload")
	}
	if customer == "" {
		return models.Order{}, apperr.New(apperr.MissingCustomer, "Every order must have a customer attributed to it!")
	}
	if in.Products == nil {
		return models.Order{}, apperr.New(apperr.InvalidPayload, "products are required")
	}

	owner, err := s.resolveCustomer(ctx, customer)
	if err != nil {
		return models.Order{}, err
	}

	items, total, err := s.price(ctx, in.Products, createLookupErrors)
	if err != nil {
		return models.Order{}, err
	}

	o := models.Order{
		Status:   models.StatusActive,
		Total:    total,
		Customer: owner,
		Products: items,
	}
	if err := s.orders.Insert(ctx, &o); err != nil {
		return models.Order{}, errors.Wrap(err, "orders: insert")
	}

	s.notifier.Notify(ctx, EventOrderCreated, o)
	return o, nil
}

// Read returns an order to an ADMIN or to its owner.
func (s *OrderService) Read(ctx context.Context, id string, caller models.Caller) (models.Order, error) {
	o, err := s.find(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if caller.CanManage(o.Customer) {
		return o, nil
	}
	return models.Order{}, apperr.New(apperr.Forbidden, "unauthorized access")
}

// ReadAll lists orders matching f. It performs no authorization; callers
// that act on behalf of a user go through Visible. A filter that matches
// nothing, including an unparsable customer id, yields an empty list.
func (s *OrderService) ReadAll(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	all, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "orders: find all")
	}

	var customer models.ID
	if f.Customer != "" {
		customer, err = models.ParseID(f.Customer)
		if err != nil {
			return []models.Order{}, nil
		}
	}

	return collection.Filter(all, func(o models.Order) bool {
		if f.Customer != "" && o.Customer != customer {
			return false
		}
		if f.Status != "" && !strings.EqualFold(string(o.Status), f.Status) {
			return false
		}
		return true
	}), nil
}

// Visible lists the orders caller may see. An ADMIN lists freely. Anyone
// else must filter by a customer, and that customer must be themselves.
// A customer filter that names no user yields an empty list.
func (s *OrderService) Visible(ctx context.Context, caller models.Caller, f OrderFilter) ([]models.Order, error) {
	if caller.IsAdmin() {
		return s.ReadAll(ctx, f)
	}
	if f.Customer == "" {
		return nil, apperr.New(apperr.Forbidden, "unauthorized access")
	}

	id, err := models.ParseID(f.Customer)
	if err != nil {
		return []models.Order{}, nil
	}
	u, err := s.customers.ReadByID(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) || errors.Is(err, repositories.ErrNotFound) {
			return []models.Order{}, nil
		}
		return nil, err
	}
	if u.ID != caller.ID {
		return nil, apperr.New(apperr.Forbidden, "unauthorized access")
	}
	return s.ReadAll(ctx, f)
}

// Update changes the status, the line items, or both, of an order owned
// by caller. Writing line items recomputes the total from current prices.
func (s *OrderService) Update(ctx context.Context, id string, caller models.Caller, in UpdateOrderInput) (models.Order, error) {
	if in.Products == nil && in.Status == "" {
		return models.Order{}, apperr.New(apperr.InvalidPayload, "empty payload!")
	}

	o, err := s.find(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if !o.OwnedBy(caller.ID) {
		return models.Order{}, apperr.New(apperr.Forbidden, "unauthorized update")
	}

	var status models.Status
	if in.Products == nil || in.Status != "" {
		var ok bool
		if status, ok = models.ParseStatus(in.Status); !ok {
			return models.Order{}, apperr.New(apperr.InvalidStatus, "invalid status attribute")
		}
	}

	if in.Products != nil {
		items, total, err := s.price(ctx, *in.Products, updateLookupErrors)
		if err != nil {
			return models.Order{}, err
		}
		o.Products = items
		o.Total = total
	}
	if status != "" {
		o.Status = status
	}

	if err := s.orders.Update(ctx, &o); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Order{}, apperr.Wrap(apperr.OrderNotFound, err, "invalid order ID")
		}
		return models.Order{}, errors.Wrap(err, "orders: update")
	}

	s.notifier.Notify(ctx, EventOrderUpdated, o)
	return o, nil
}

// Delete removes an order owned by caller and returns it as it was.
func (s *OrderService) Delete(ctx context.Context, id string, caller models.Caller) (models.Order, error) {
	o, err := s.find(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if !o.OwnedBy(caller.ID) {
		return models.Order{}, apperr.New(apperr.Forbidden, "unauthorized deletion")
	}

	if err := s.orders.Delete(ctx, o.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Order{}, apperr.Wrap(apperr.OrderNotFound, err, "invalid order ID")
		}
		return models.Order{}, errors.Wrap(err, "orders: delete")
	}

	s.notifier.Notify(ctx, EventOrderDeleted, o)
	return o, nil
}

func (s *OrderService) find(ctx context.Context, id string) (models.Order, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return models.Order{}, apperr.Wrap(apperr.OrderNotFound, err, "invalid order ID")
	}
	o, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Order{}, apperr.Wrap(apperr.OrderNotFound, err, "invalid order ID")
		}
		return models.Order{}, errors.Wrap(err, "orders: find")
	}
	return o, nil
}

func (s *OrderService) resolveCustomer(ctx context.Context, customer string) (models.ID, error) {
	id, err := models.ParseID(customer)
	if err != nil {
		return models.ID{}, apperr.Wrap(apperr.UnknownCustomer, err, "customer does not exist")
	}
	if _, err := s.customers.ReadByID(ctx, id); err != nil {
		if apperr.Is(err, apperr.NotFound) || errors.Is(err, repositories.ErrNotFound) {
			return models.ID{}, apperr.Wrap(apperr.UnknownCustomer, err, "customer does not exist")
		}
		return models.ID{}, err
	}
	return id, nil
}

// lookupErrors chooses the kinds reported for a product that cannot be
// resolved: malformed id, and well-formed but absent.
type lookupErrors struct {
	malformed, absent apperr.Kind
	malformedMsg      string
	absentMsg         string
}

var (
	createLookupErrors = lookupErrors{
		malformed:    apperr.UnknownProduct,
		malformedMsg: "invalid product attribute!",
		absent:       apperr.ProductNotFound,
		absentMsg:    "non-existing product attribute",
	}
	updateLookupErrors = lookupErrors{
		malformed:    apperr.InvalidProduct,
		malformedMsg: "invalid product attribute!",
		absent:       apperr.InvalidProduct,
		absentMsg:    "invalid product attribute!",
	}
)

// price validates line items and returns them with the order total. All
// quantities are checked before any product is looked up.
func (s *OrderService) price(ctx context.Context, in []LineItemInput, lookup lookupErrors) ([]models.LineItem, float64, error) {
	if collection.Any(in, func(item LineItemInput) bool { return item.Quantity <= 0 }) {
		return nil, 0, apperr.New(apperr.InvalidQuantity, "quantity must be positive!")
	}

	items := make([]models.LineItem, 0, len(in))
	total := decimal.Zero
	for _, item := range in {
		pid, err := models.ParseID(item.Product)
		if err != nil {
			return nil, 0, apperr.Wrap(lookup.malformed, err, lookup.malformedMsg)
		}
		p, err := s.catalog.ReadByID(ctx, pid)
		if err != nil {
			if apperr.Is(err, apperr.NotFound) || errors.Is(err, repositories.ErrNotFound) {
				return nil, 0, apperr.Wrap(lookup.absent, err, lookup.absentMsg)
			}
			return nil, 0, err
		}

		qty := decimal.NewFromInt(int64(item.Quantity))
		total = total.Add(decimal.NewFromFloat(p.Price).Mul(qty))
		items = append(items, models.LineItem{Product: pid, Quantity: item.Quantity})
	}

	return items, total.Round(2).InexactFloat64(), nil
}
