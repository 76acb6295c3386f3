package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID is returned when a string is not a well-formed identifier.
var ErrInvalidID = errors.New("models: invalid id")

// ID is the opaque identifier shared by every record. It has the shape of a
// MongoDB ObjectID and compares with ==, so it can be used as a map key.
//
// JSON renders it as 24 lowercase hex characters; BSON stores the native
// ObjectID; SQL stores the hex string.
type ID primitive.ObjectID

// NewID generates a fresh identifier.
func NewID() ID { return ID(primitive.NewObjectID()) }

// ParseID parses the 24-character hex form.
func ParseID(s string) (ID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return ID{}, errors.Wrapf(ErrInvalidID, "%q", s)
	}
	return ID(oid), nil
}

// MustParseID is ParseID for constants and tests.
func MustParseID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) String() string { return primitive.ObjectID(id).Hex() }

// IsZero reports whether id was never assigned.
func (id ID) IsZero() bool { return primitive.ObjectID(id).IsZero() }

// ── JSON ─────────────────────────────────────────────────────────────────────

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *ID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(ErrInvalidID, "expected a string")
	}
	if s == "" {
		*id = ID{}
		return nil
	}
	parsed, err := ParseID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ── BSON ─────────────────────────────────────────────────────────────────────

func (id ID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(primitive.ObjectID(id))
}

func (id *ID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	if oid, ok := raw.ObjectIDOK(); ok {
		*id = ID(oid)
		return nil
	}
	if s, ok := raw.StringValueOK(); ok {
		parsed, err := ParseID(s)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}
	return errors.Wrapf(ErrInvalidID, "cannot decode bson type %s", t)
}

// ── SQL ──────────────────────────────────────────────────────────────────────

// Value implements driver.Valuer.
func (id ID) Value() (driver.Value, error) {
	return id.String(), nil
}

// Scan implements sql.Scanner.
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*id = ID{}
		return nil
	case string:
		return id.scanString(v)
	case []byte:
		return id.scanString(string(v))
	default:
		return fmt.Errorf("models: scan id from %T", src)
	}
}

func (id *ID) scanString(s string) error {
	parsed, err := ParseID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
