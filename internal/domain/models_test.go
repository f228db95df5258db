package domain_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"bookstore/internal/domain"
)

func details(t *testing.T, s string) domain.ProductDetails {
	t.Helper()
	var d domain.ProductDetails
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestFlagScan(t *testing.T) {
	cases := []struct {
		src  any
		want bool
	}{
		{nil, false},
		{int64(0), false},
		{int64(1), true},
		{int64(2), true},
		{int64(-1), true},
		{float64(0), false},
		{float64(1.0), true},
		{true, true},
		{[]byte("1"), true},
		{"0", false},
		{"true", true},
		{"", false},
	}
	for _, tc := range cases {
		var f domain.Flag
		if err := f.Scan(tc.src); err != nil {
			t.Fatalf("%#v: %v", tc.src, err)
		}
		if bool(f) != tc.want {
			t.Fatalf("%#v: want %v, got %v", tc.src, tc.want, f)
		}
	}
	var f domain.Flag
	if err := f.Scan("maybe"); err == nil {
		t.Fatal("non-boolean text accepted")
	}
}

func TestBlankIDIsMissing(t *testing.T) {
	for _, s := range []string{`{"_id":null}`, `{"_id":""}`, `{"_id":"  "}`, `{"_id":{}}`, `{}`} {
		d := details(t, s)
		if d.HasID() {
			t.Fatalf("%s: HasID should be false", s)
		}
		if d.OnlyID() {
			t.Fatalf("%s: OnlyID should be false", s)
		}
	}
	if id, err := details(t, `{"_id":42}`).ID(); err != nil || id != "42" {
		t.Fatalf("numeric id: %q %v", id, err)
	}

	_, err := details(t, `{"_id":null,"bookName":"X","author":"Y","originalPrice":1,"discountedPrice":1,
	  "discountPercent":0,"imgSrc":"","imgAlt":"","badgeText":"","outOfStock":false,
	  "fastDeliveryAvailable":false,"genre":"g","rating":1,"description":"d"}`).Product()
	var mf *domain.MissingFieldError
	if !errors.As(err, &mf) || mf.Field != "_id" {
		t.Fatalf("want missing _id, got %v", err)
	}
}

func TestWholeNumberFields(t *testing.T) {
	const tmpl = `{"_id":"b1","bookName":"X","author":"Y","originalPrice":10,"discountedPrice":8,
	  "discountPercent":%s,"imgSrc":"","imgAlt":"","badgeText":"","outOfStock":2,
	  "fastDeliveryAvailable":true,"genre":"g","rating":%s,"description":"d"}`
	build := func(pct, rating string) domain.ProductDetails {
		return details(t, fmt.Sprintf(tmpl, pct, rating))
	}

	p, err := build("20.0", "4.0").Product()
	if err != nil {
		t.Fatal(err)
	}
	if p.DiscountPercent != 20 || p.Rating != 4 || !bool(p.OutOfStock) {
		t.Fatalf("unexpected product %+v", p)
	}
	if p, err := build("2e1", "4").Product(); err != nil || p.DiscountPercent != 20 {
		t.Fatalf("exponent form: %+v %v", p, err)
	}
	for _, bad := range [][2]string{{"20", "4.5"}, {`"20"`, "4"}, {"20", "true"}} {
		if _, err := build(bad[0], bad[1]).Product(); err == nil {
			t.Fatalf("discountPercent=%s rating=%s accepted", bad[0], bad[1])
		}
	}
}
