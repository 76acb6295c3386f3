package models

import "time"

// Role is the authorisation level carried by a user and by their tokens.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// User is an account that can authenticate and own orders.
type User struct {
	ID        ID        `gorm:"primaryKey;type:varchar(24)"       json:"_id"       bson:"_id"`
	Username  string    `gorm:"uniqueIndex;size:64;not null"      json:"username"  bson:"username"`
	Password  string    `gorm:"size:255;not null"                 json:"-"         bson:"password"` // bcrypt hash, never serialised
	Role      Role      `gorm:"size:16;not null;default:CUSTOMER" json:"role"      bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Caller is the resolved identity behind an authenticated request.
type Caller struct {
	ID       ID
	Username string
	Role     Role
}

// CallerOf builds the Caller for a stored user.
func CallerOf(u User) Caller {
	return Caller{ID: u.ID, Username: u.Username, Role: u.Role}
}

// IsAdmin reports whether the caller holds the ADMIN role.
func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }

// CanManage reports whether the caller may act on the account or records
// of user id: admins always, everyone else only on their own.
func (c Caller) CanManage(id ID) bool { return c.IsAdmin() || c.ID == id }
