package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Product is a catalog or new-arrival book. JSON and column names are part of the wire contract.
type Product struct {
	ID                    string  `json:"_id" db:"_id"`
	BookName              string  `json:"bookName" db:"bookName"`
	Author                string  `json:"author" db:"author"`
	OriginalPrice         float64 `json:"originalPrice" db:"originalPrice"`
	DiscountedPrice       float64 `json:"discountedPrice" db:"discountedPrice"`
	DiscountPercent       int     `json:"discountPercent" db:"discountPercent"`
	ImgSrc                string  `json:"imgSrc" db:"imgSrc"`
	ImgAlt                string  `json:"imgAlt" db:"imgAlt"`
	BadgeText             string  `json:"badgeText" db:"badgeText"`
	OutOfStock            Flag    `json:"outOfStock" db:"outOfStock"`
	FastDeliveryAvailable Flag    `json:"fastDeliveryAvailable" db:"fastDeliveryAvailable"`
	Genre                 string  `json:"genre" db:"genre"`
	Rating                int     `json:"rating" db:"rating"`
	Description           string  `json:"description" db:"description"`
}

// ProductFields lists the product attributes in storage column order.
var ProductFields = [...]string{
	"_id", "bookName", "author", "originalPrice", "discountedPrice", "discountPercent",
	"imgSrc", "imgAlt", "badgeText", "outOfStock", "fastDeliveryAvailable", "genre",
	"rating", "description",
}

// Flag is a boolean that also accepts 0/1 on input, as older clients and SQLite store it.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	switch v := string(bytes.TrimSpace(b)); v {
	case "true":
		*f = true
	case "false", "null":
		*f = false
	default:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid boolean %s", b)
		}
		*f = n != 0
	}
	return nil
}

// Scan treats any non-zero number as true; rows written by other clients may hold 2 or 1.0.
func (f *Flag) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(v)
	case int64:
		*f = v != 0
	case float64:
		*f = v != 0
	case []byte:
		return f.scanText(string(v))
	case string:
		return f.scanText(v)
	default:
		return fmt.Errorf("cannot scan %T into Flag", src)
	}
	return nil
}

func (f *Flag) scanText(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*f = false
		return nil
	}
	if b, err := strconv.ParseBool(s); err == nil {
		*f = Flag(b)
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid boolean %q", s)
	}
	*f = n != 0
	return nil
}

func (f Flag) Value() (driver.Value, error) { return bool(f), nil }

// MissingFieldError reports a product attribute absent from a payload.
type MissingFieldError struct{ Field string }

func (e *MissingFieldError) Error() string { return "missing field " + e.Field }

// ProductDetails is a product payload as received, keeping track of which keys were sent.
type ProductDetails map[string]json.RawMessage

// HasID reports whether the payload names a product with a usable _id.
func (d ProductDetails) HasID() bool {
	_, err := d.ID()
	return err == nil
}

// ID decodes the _id key. Numeric ids are kept in their textual form.
// A null or blank _id counts as missing.
func (d ProductDetails) ID() (string, error) {
	raw, ok := d["_id"]
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return "", &MissingFieldError{Field: "_id"}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return "", &MissingFieldError{Field: "_id"}
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid _id %s", raw)
	}
	return n.String(), nil
}

// OnlyID reports whether _id is the sole key, i.e. a bare reference to a product.
func (d ProductDetails) OnlyID() bool { return d.HasID() && len(d) == 1 }

// Product requires every attribute in ProductFields and decodes them.
func (d ProductDetails) Product() (Product, error) {
	for _, f := range ProductFields {
		if _, ok := d[f]; !ok {
			return Product{}, &MissingFieldError{Field: f}
		}
	}
	id, err := d.ID()
	if err != nil {
		return Product{}, err
	}
	rest := make(map[string]json.RawMessage, len(ProductFields)-1)
	for _, f := range ProductFields[1:] {
		rest[f] = d[f]
	}
	for _, f := range wholeNumberFields {
		raw, err := wholeNumber(rest[f])
		if err != nil {
			return Product{}, fmt.Errorf("invalid %s: %w", f, err)
		}
		rest[f] = raw
	}
	b, err := json.Marshal(rest)
	if err != nil {
		return Product{}, err
	}
	var p Product
	if err := json.Unmarshal(b, &p); err != nil {
		return Product{}, fmt.Errorf("invalid product: %w", err)
	}
	p.ID = id
	return p, nil
}

// wholeNumberFields are the integer attributes; clients may send them as 20.0.
var wholeNumberFields = [...]string{"discountPercent", "rating"}

// wholeNumber rewrites a JSON number with no fractional part (4.0, 2e1) as an integer literal.
// Anything that is not a bare number is returned unchanged for the struct decoder to judge.
func wholeNumber(raw json.RawMessage) (json.RawMessage, error) {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 || t[0] == '"' {
		return raw, nil
	}
	var n json.Number
	if err := json.Unmarshal(t, &n); err != nil || n == "" {
		return raw, nil
	}
	if _, err := n.Int64(); err == nil {
		return raw, nil
	}
	v, err := n.Float64()
	if err != nil || v != math.Trunc(v) || math.Abs(v) > 1<<53 {
		return nil, fmt.Errorf("%s is not a whole number", n)
	}
	return json.RawMessage(strconv.FormatInt(int64(v), 10)), nil
}

// UserLists is the wishlist and cart contents returned by /api/user.
type UserLists struct {
	Wishlist []Product `json:"wishlist"`
	Cart     []Product `json:"cart"`
}
