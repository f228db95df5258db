package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"bookstore/internal/apperr"
	"bookstore/internal/auth"
	"bookstore/internal/domain"
	"bookstore/internal/repos"
	"bookstore/internal/services"
)

type failingStore struct{ calls int }

var errDisk = errors.New("disk I/O error")

func (f *failingStore) ListAll(context.Context) ([]domain.Product, error) {
	f.calls++
	return nil, errDisk
}
func (f *failingStore) Upsert(context.Context, domain.Product) error { f.calls++; return errDisk }
func (f *failingStore) DeleteByID(context.Context, string) error     { f.calls++; return errDisk }
func (f *failingStore) Add(context.Context, string, *domain.Product) error {
	f.calls++
	return errDisk
}
func (f *failingStore) Remove(context.Context, string) error { f.calls++; return errDisk }
func (f *failingStore) Products(context.Context) ([]domain.Product, error) {
	f.calls++
	return nil, errDisk
}

func details(t *testing.T, s string) domain.ProductDetails {
	t.Helper()
	var d domain.ProductDetails
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		t.Fatal(err)
	}
	return d
}

const fullProduct = `{"_id":"b1","bookName":"X","author":"Y","originalPrice":10.0,"discountedPrice":8.0,
  "discountPercent":20,"imgSrc":"","imgAlt":"","badgeText":"","outOfStock":0,
  "fastDeliveryAvailable":1,"genre":"Fiction","rating":4,"description":"d"}`

func TestStorageErrorsAreClassified(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{}
	catalog := services.NewCatalogService(store, "products", nil)
	list := services.NewListService(store, "cart", nil)

	checks := map[string]error{}
	_, checks["list"] = catalog.List(ctx)
	_, checks["save"] = catalog.Save(ctx, details(t, fullProduct))
	checks["remove"] = catalog.Remove(ctx, "b1")
	checks["add"] = list.Add(ctx, details(t, fullProduct))
	checks["unlist"] = list.Remove(ctx, "b1")
	_, checks["aggregate"] = services.NewUserService(list, list).Lists(ctx)

	for name, err := range checks {
		if apperr.KindOf(err) != apperr.Storage {
			t.Fatalf("%s: want storage error, got %v", name, err)
		}
		if !errors.Is(err, errDisk) {
			t.Fatalf("%s: cause dropped: %v", name, err)
		}
	}
}

func TestMissingFieldRejectedBeforeWrite(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{}
	catalog := services.NewCatalogService(store, "products", nil)

	_, err := catalog.Save(ctx, details(t, `{"_id":"b1","bookName":"X"}`))
	if apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("want validation error, got %v", err)
	}
	var mf *domain.MissingFieldError
	if !errors.As(err, &mf) || mf.Field != "author" {
		t.Fatalf("want missing author, got %v", err)
	}

	_, err = catalog.Save(ctx, details(t, `{"_id":"b1","bookName":"X","author":"Y","originalPrice":"ten",
	  "discountedPrice":8,"discountPercent":20,"imgSrc":"","imgAlt":"","badgeText":"","outOfStock":false,
	  "fastDeliveryAvailable":true,"genre":"g","rating":4,"description":"d"}`))
	if apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("malformed price: want validation error, got %v", err)
	}
	if store.calls != 0 {
		t.Fatalf("store touched %d times", store.calls)
	}
}

func TestListAddBareReference(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	ctx := context.Background()
	wish := services.NewListService(repos.NewListRepo(db, repos.Wishlist), "wishlist", nil)

	if err := wish.Add(ctx, details(t, `{"_id":"b1"}`)); err != nil {
		t.Fatal(err)
	}
	all, _ := repos.NewProductRepo(db, repos.Catalog).ListAll(ctx)
	if len(all) != 0 {
		t.Fatalf("bare reference must not create a product: %+v", all)
	}
	if err := wish.Add(ctx, details(t, fullProduct)); err != nil {
		t.Fatal(err)
	}
	got, _ := wish.Products(ctx)
	if len(got) != 1 || got[0].ID != "b1" || !bool(got[0].FastDeliveryAvailable) || bool(got[0].OutOfStock) {
		t.Fatalf("unexpected wishlist %+v", got)
	}
}

func TestSignupLogin(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	ctx := context.Background()
	svc := services.NewAuthService(repos.NewUserRepo(db), auth.Hasher{Cost: 4}, nil)

	id, err := svc.Signup(ctx, "bob", "bob@example.com", "pw-123456")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Signup(ctx, "bobby", "bob@example.com", "x"); apperr.KindOf(err) != apperr.Conflict {
		t.Fatalf("want conflict, got %v", err)
	}

	var stored string
	if err := db.Get(&stored, `SELECT password FROM users WHERE id = ?`, id); err != nil {
		t.Fatal(err)
	}
	if stored == "pw-123456" || !auth.IsBcrypt(stored) {
		t.Fatalf("password not hashed: %q", stored)
	}

	u, err := svc.Login(ctx, "bob@example.com", "pw-123456")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != id {
		t.Fatalf("want id %d, got %d", id, u.ID)
	}
	for _, tc := range [][2]string{{"bob@example.com", "wrong"}, {"nobody@example.com", "pw-123456"}} {
		_, err := svc.Login(ctx, tc[0], tc[1])
		if apperr.KindOf(err) != apperr.Auth || !errors.Is(err, services.ErrBadCreds) {
			t.Fatalf("%v: want auth error, got %v", tc, err)
		}
	}
}
