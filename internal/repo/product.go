package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type productRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewProductRepo(db *sqlx.DB) *productRepo {
	return &productRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *productRepo) selectProducts() sq.SelectBuilder {
	return r.qb.Select(
		"p.id", "p.name", "p.slug", "p.description", "p.price", "p.image",
		"p.stock", "p.is_active", "p.featured", "p.category_id",
		"c.name AS category_name", "c.slug AS category_slug", "p.created_at").
		From("products p").
		LeftJoin("categories c ON c.id = p.category_id")
}

// ProductsByIDs returns the products that exist, active or not. Missing ids
// are simply absent from the result.
func (r *productRepo) ProductsByIDs(ctx context.Context, ids []string) ([]entities.Product, error) {
	if len(ids) == 0 {
		return []entities.Product{}, nil
	}

	query, args := r.selectProducts().
		Where(sq.Eq{"p.id": ids}).
		MustSql()

	var rows []Product
	if err := trm.Conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}

	products := make([]entities.Product, 0, len(rows))
	for _, p := range rows {
		products = append(products, ProductToEntity(p))
	}
	return products, nil
}

func (r *productRepo) ProductBySlug(ctx context.Context, slug string) (entities.Product, error) {
	query, args := r.selectProducts().
		Where(sq.Eq{"p.slug": slug, "p.is_active": true}).
		MustSql()

	var row Product
	err := trm.Conn(ctx, r.db).GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, entities.ErrProductNotFound
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return ProductToEntity(row), nil
}

func (r *productRepo) LatestProducts(ctx context.Context, count int) ([]entities.Product, error) {
	query, args := r.selectProducts().
		Where(sq.Eq{"p.is_active": true}).
		OrderBy("p.created_at DESC").
		Limit(uint64(count)).
		MustSql()

	var rows []Product
	if err := trm.Conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select latest products: %w", err)
	}

	products := make([]entities.Product, 0, len(rows))
	for _, p := range rows {
		products = append(products, ProductToEntity(p))
	}
	return products, nil
}

// ListProducts returns one page of active products matching the filter,
// newest first, together with the total number of matches.
func (r *productRepo) ListProducts(ctx context.Context, f entities.ProductFilter) ([]entities.Product, int, error) {
	where := sq.And{sq.Eq{"p.is_active": true}}

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		where = append(where, sq.Or{
			sq.ILike{"p.name": pattern},
			sq.ILike{"p.description": pattern},
		})
	}
	if len(f.CategoryIDs) > 0 {
		where = append(where, sq.Eq{"p.category_id": f.CategoryIDs})
	}
	if f.MinPrice != nil {
		where = append(where, sq.GtOrEq{"p.price": *f.MinPrice})
	}
	if f.MaxPrice != nil {
		where = append(where, sq.LtOrEq{"p.price": *f.MaxPrice})
	}

	conn := trm.Conn(ctx, r.db)

	query, args := r.qb.Select("COUNT(*)").
		From("products p").
		Where(where).
		MustSql()

	var total int
	if err := conn.GetContext(ctx, &total, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}
	if total == 0 {
		return []entities.Product{}, 0, nil
	}

	query, args = r.selectProducts().
		Where(where).
		OrderBy("p.created_at DESC", "p.id").
		Limit(uint64(f.Limit)).
		Offset(uint64((f.Page - 1) * f.Limit)).
		MustSql()

	var rows []Product
	if err := conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to select products: %w", err)
	}

	products := make([]entities.Product, 0, len(rows))
	for _, p := range rows {
		products = append(products, ProductToEntity(p))
	}
	return products, total, nil
}

func (r *productRepo) ListCategories(ctx context.Context) ([]entities.Category, error) {
	query, args := r.qb.Select(
		"c.id", "c.name", "c.slug",
		"COUNT(p.id) FILTER (WHERE p.is_active) AS product_count").
		From("categories c").
		LeftJoin("products p ON p.category_id = c.id").
		GroupBy("c.id", "c.name", "c.slug").
		OrderBy("c.name").
		MustSql()

	var rows []Category
	if err := trm.Conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}

	categories := make([]entities.Category, 0, len(rows))
	for _, c := range rows {
		categories = append(categories, CategoryToEntity(c))
	}
	return categories, nil
}
