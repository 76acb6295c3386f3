package models

import "time"

// Status is the lifecycle state of an order.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusComplete Status = "COMPLETE"
)

// ParseStatus accepts only the exact spellings ACTIVE and COMPLETE.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusActive, StatusComplete:
		return Status(s), true
	}
	return "", false
}

// LineItem is one (product, quantity) pair of an order.
type LineItem struct {
	Product  ID  `json:"product"  bson:"product"`
	Quantity int `json:"quantity" bson:"quantity"`
}

// Order belongs to exactly one customer. Total is derived from the line
// items and the product prices at the time of the last write.
type Order struct {
	ID        ID         `gorm:"primaryKey;type:varchar(24)"  json:"_id"       bson:"_id"`
	Status    Status     `gorm:"size:16;not null;index"       json:"status"    bson:"status"`
	Total     float64    `gorm:"not null;default:0"           json:"total"     bson:"total"`
	Customer  ID         `gorm:"type:varchar(24);not null;index" json:"customer" bson:"customer"`
	Products  []LineItem `gorm:"type:text;serializer:json"    json:"products"  bson:"products"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// OwnedBy reports whether the order's customer is id.
func (o Order) OwnedBy(id ID) bool { return o.Customer == id }
