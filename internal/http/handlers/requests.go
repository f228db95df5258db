package handlers

import (
	"encoding/json"

	"bookstore/internal/domain"
)

// Request bodies are decoded by exact key: catalog bodies nest the product under
// "productDetails", list bodies under "productdetails", and the two must not be confused.
type body map[string]json.RawMessage

func decodeBody(raw []byte) (body, error) {
	var b body
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, err
	}
	return b, nil
}

func (b body) details(key string) (domain.ProductDetails, bool) {
	raw, ok := b[key]
	if !ok {
		return nil, false
	}
	var d domain.ProductDetails
	if err := json.Unmarshal(raw, &d); err != nil || !d.HasID() {
		return nil, false
	}
	return d, true
}

// str returns the string under key; absent, null, empty and non-string values all count as missing.
func (b body) str(key string) (string, bool) {
	raw, ok := b[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

type productRequest struct {
	Details domain.ProductDetails
}

func (r *productRequest) UnmarshalJSON(raw []byte) error {
	b, err := decodeBody(raw)
	if err != nil {
		return err
	}
	r.Details, _ = b.details("productDetails")
	return nil
}

type listEntryRequest struct {
	Details domain.ProductDetails
}

func (r *listEntryRequest) UnmarshalJSON(raw []byte) error {
	b, err := decodeBody(raw)
	if err != nil {
		return err
	}
	r.Details, _ = b.details("productdetails")
	return nil
}

type signupRequest struct {
	Username string
	Email    string
	Password string
}

func (r *signupRequest) UnmarshalJSON(raw []byte) error {
	b, err := decodeBody(raw)
	if err != nil {
		return err
	}
	r.Username, _ = b.str("newUserName")
	r.Email, _ = b.str("newUserEmail")
	r.Password, _ = b.str("newUserPassword")
	return nil
}

func (r signupRequest) complete() bool {
	return r.Username != "" && r.Email != "" && r.Password != ""
}

type loginRequest struct {
	Email    string
	Password string
}

func (r *loginRequest) UnmarshalJSON(raw []byte) error {
	b, err := decodeBody(raw)
	if err != nil {
		return err
	}
	r.Email, _ = b.str("userEmail")
	r.Password, _ = b.str("userPassword")
	return nil
}

func (r loginRequest) complete() bool { return r.Email != "" && r.Password != "" }

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type loginResponse struct {
	Status string `json:"status"`
	User   int64  `json:"user"`
}

type userResponse struct {
	User domain.UserLists `json:"user"`
}
