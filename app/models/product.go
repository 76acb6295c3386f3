package models

import "time"

// Product represents a product in the catalogue.
type Product struct {
	ID        ID        `gorm:"primaryKey;type:varchar(24)" json:"_id"   bson:"_id"`
	Name      string    `gorm:"size:255;not null;index"     json:"name"  bson:"name"`
	Price     float64   `gorm:"not null;default:0"          json:"price" bson:"price"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
