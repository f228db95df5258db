package repos

import (
	"context"

	"bookstore/internal/domain"

	"github.com/jmoiron/sqlx"
)

// Table names one of the two product tables. They share a layout but not their rows.
type Table string

const (
	Catalog     Table = "products"
	NewArrivals Table = "newArrivalList"
)

type writeMode int

const (
	replace writeMode = iota
	insertIfAbsent
)

const productColumns = `
    COALESCE(_id,'') AS _id,
    COALESCE(bookName,'') AS bookName,
    COALESCE(author,'') AS author,
    COALESCE(originalPrice,0) AS originalPrice,
    COALESCE(discountedPrice,0) AS discountedPrice,
    COALESCE(discountPercent,0) AS discountPercent,
    COALESCE(imgSrc,'') AS imgSrc,
    COALESCE(imgAlt,'') AS imgAlt,
    COALESCE(badgeText,'') AS badgeText,
    COALESCE(outOfStock,0) AS outOfStock,
    COALESCE(fastDeliveryAvailable,0) AS fastDeliveryAvailable,
    COALESCE(genre,'') AS genre,
    COALESCE(rating,0) AS rating,
    COALESCE(description,'') AS description`

type ProductRepo struct {
	db    *sqlx.DB
	table Table
}

func NewProductRepo(db *sqlx.DB, table Table) *ProductRepo {
	return &ProductRepo{db: db, table: table}
}

// ListAll returns every row in insertion order.
func (r *ProductRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `SELECT`+productColumns+` FROM `+string(r.table)+` ORDER BY rowid`)
	return out, err
}

// Upsert inserts p or replaces every column of the row with the same _id.
func (r *ProductRepo) Upsert(ctx context.Context, p domain.Product) error {
	return writeProduct(ctx, r.db, r.table, replace, p)
}

// DeleteByID is a no-op when id does not exist.
func (r *ProductRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM `+string(r.table)+` WHERE _id = ?`, id)
	return err
}

func writeProduct(ctx context.Context, ex sqlx.ExecerContext, table Table, mode writeMode, p domain.Product) error {
	q := `
	  INSERT INTO ` + string(table) + ` (
	    _id, bookName, author, originalPrice, discountedPrice, discountPercent,
	    imgSrc, imgAlt, badgeText, outOfStock, fastDeliveryAvailable, genre,
	    rating, description
	  ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	switch mode {
	case replace:
		// Updating in place keeps the row's position in ListAll.
		q += `
	  ON CONFLICT(_id) DO UPDATE SET
	    bookName = excluded.bookName,
	    author = excluded.author,
	    originalPrice = excluded.originalPrice,
	    discountedPrice = excluded.discountedPrice,
	    discountPercent = excluded.discountPercent,
	    imgSrc = excluded.imgSrc,
	    imgAlt = excluded.imgAlt,
	    badgeText = excluded.badgeText,
	    outOfStock = excluded.outOfStock,
	    fastDeliveryAvailable = excluded.fastDeliveryAvailable,
	    genre = excluded.genre,
	    rating = excluded.rating,
	    description = excluded.description`
	case insertIfAbsent:
		q += `
	  ON CONFLICT(_id) DO NOTHING`
	}
	_, err := ex.ExecContext(ctx, q,
		p.ID, p.BookName, p.Author, p.OriginalPrice, p.DiscountedPrice, p.DiscountPercent,
		p.ImgSrc, p.ImgAlt, p.BadgeText, p.OutOfStock, p.FastDeliveryAvailable, p.Genre,
		p.Rating, p.Description,
	)
	return err
}
