package mongostore

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/repositories"
)

type users struct {
	col *mongo.Collection
}

func (r *users) Insert(ctx context.Context, u *models.User) error {
	defer observe("insert")()
	stamp(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	_, err := r.col.InsertOne(ctx, u)
	return translate(err, "users: insert")
}

func (r *users) FindByID(ctx context.Context, id models.ID) (models.User, error) {
	defer observe("select")()
	return findOne[models.User](ctx, r.col, byID(id), "users: find by id")
}

func (r *users) FindByUsername(ctx context.Context, username string) (models.User, error) {
	defer observe("select")()
	return findOne[models.User](ctx, r.col, bson.M{"username": username}, "users: find by username")
}

func (r *users) FindAll(ctx context.Context, q repositories.UserQuery) ([]models.User, error) {
	defer observe("select")()
	filter := bson.M{}
	if q.Username != "" {
		filter["username"] = q.Username
	}
	if q.Role != "" {
		filter["role"] = q.Role
	}
	return findAll[models.User](ctx, r.col, filter, "users: find all")
}

func (r *users) Update(ctx context.Context, u *models.User) error {
	defer observe("update")()
	stamp(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return replace(ctx, r.col, u.ID, u, "users: update")
}

func (r *users) Delete(ctx context.Context, id models.ID) error {
	defer observe("delete")()
	return remove(ctx, r.col, id, "users: delete")
}

type products struct {
	col *mongo.Collection
}

func (r *products) Insert(ctx context.Context, p *models.Product) error {
	defer observe("insert")()
	stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	_, err := r.col.InsertOne(ctx, p)
	return translate(err, "products: insert")
}

func (r *products) FindByID(ctx context.Context, id models.ID) (models.Product, error) {
	defer observe("select")()
	return findOne[models.Product](ctx, r.col, byID(id), "products: find by id")
}

func (r *products) FindAll(ctx context.Context, q repositories.ProductQuery) ([]models.Product, error) {
	defer observe("select")()
	filter := bson.M{}
	if q.Name != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Name), Options: "i"}
	}
	price := bson.M{}
	if q.MinPrice != nil {
		price["$gte"] = *q.MinPrice
	}
	if q.MaxPrice != nil {
		price["$lte"] = *q.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}
	return findAll[models.Product](ctx, r.col, filter, "products: find all")
}

func (r *products) Update(ctx context.Context, p *models.Product) error {
	defer observe("update")()
	stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return replace(ctx, r.col, p.ID, p, "products: update")
}

func (r *products) Delete(ctx context.Context, id models.ID) error {
	defer observe("delete")()
	return remove(ctx, r.col, id, "products: delete")
}

type orders struct {
	col *mongo.Collection
}

func (r *orders) Insert(ctx context.Context, o *models.Order) error {
	defer observe("insert")()
	stamp(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if o.Products == nil {
		o.Products = []models.LineItem{}
	}
	_, err := r.col.InsertOne(ctx, o)
	return translate(err, "orders: insert")
}

func (r *orders) FindByID(ctx context.Context, id models.ID) (models.Order, error) {
	defer observe("select")()
	return findOne[models.Order](ctx, r.col, byID(id), "orders: find by id")
}

func (r *orders) FindAll(ctx context.Context) ([]models.Order, error) {
	defer observe("select")()
	return findAll[models.Order](ctx, r.col, bson.M{}, "orders: find all")
}

func (r *orders) Update(ctx context.Context, o *models.Order) error {
	defer observe("update")()
	stamp(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	return replace(ctx, r.col, o.ID, o, "orders: update")
}

func (r *orders) Delete(ctx context.Context, id models.ID) error {
	defer observe("delete")()
	return remove(ctx, r.col, id, "orders: delete")
}
