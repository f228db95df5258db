package repos

import (
	"context"

	"bookstore/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ListTable names a per-store list of book references.
type ListTable string

const (
	Wishlist ListTable = "wishlist"
	Cart     ListTable = "cart"
)

type ListRepo struct {
	db    *sqlx.DB
	table ListTable
}

func NewListRepo(db *sqlx.DB, table ListTable) *ListRepo {
	return &ListRepo{db: db, table: table}
}

// Add records bookID in the list once. When p is non-nil it is first stored in the
// catalog unless a product with that id already exists. Both writes share one transaction.
func (r *ListRepo) Add(ctx context.Context, bookID string, p *domain.Product) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if p != nil {
		if err := writeProduct(ctx, tx, Catalog, insertIfAbsent, *p); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `
	  INSERT INTO `+string(r.table)+`(book_id)
	  SELECT ?
	  WHERE NOT EXISTS (SELECT 1 FROM `+string(r.table)+` WHERE book_id = ?)
	`, bookID, bookID); err != nil {
		return err
	}
	return tx.Commit()
}

// Remove deletes every entry for bookID.
func (r *ListRepo) Remove(ctx context.Context, bookID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM `+string(r.table)+` WHERE book_id = ?`, bookID)
	return err
}

// Products returns the catalog products referenced by the list, once each, in the order
// they were first added. References to unknown products are skipped.
func (r *ListRepo) Products(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT`+productColumns+`
	  FROM products p
	  JOIN (
	    SELECT book_id, MIN(id) AS first_id
	    FROM `+string(r.table)+`
	    GROUP BY book_id
	  ) l ON l.book_id = p._id
	  ORDER BY l.first_id
	`)
	return out, err
}
