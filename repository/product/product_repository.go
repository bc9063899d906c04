package product

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/community-market/constant"
	"github.com/muhammadheryan/community-market/model"
	"github.com/muhammadheryan/community-market/utils/errors"
)

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	Create(ctx context.Context, data *model.ProductEntity) (*model.ProductEntity, error)
	GetByID(ctx context.Context, id uint64) (*model.ProductDetail, error)
	List(ctx context.Context, filter *model.ProductFilter) ([]model.ProductDetail, int64, error)
	Update(ctx context.Context, data *model.ProductEntity) error
	UpdateStock(ctx context.Context, id uint64, stock int64) error
	Delete(ctx context.Context, id uint64) error

	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ProductStock, error)
	DecrementStockTx(ctx context.Context, tx *sqlx.Tx, id uint64, quantity int64) error
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	productColumns = `p.id, p.user_id, p.title, p.description, p.price, p.category, p.type, p.address, p.coordinate, p.stock_quantity, p.is_recommend, p.created_at, p.updated_at, u.name as owner_name`

	insertProductQuery = `INSERT INTO product (user_id, title, description, price, category, type, address, coordinate, stock_quantity, is_recommend, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`

	getProductBase = `SELECT ` + productColumns + `
FROM product p
JOIN user u ON p.user_id = u.id
WHERE true`

	countProductBase = `SELECT COUNT(*) FROM product p WHERE true`

	updateProductQuery = `UPDATE product SET title = ?, description = ?, price = ?, category = ?, type = ?, address = ?, coordinate = ?, is_recommend = ?, updated_at = NOW() WHERE id = ?`

	updateStockQuery = `UPDATE product SET stock_quantity = ?, updated_at = NOW() WHERE id = ?`

	deleteProductQuery = `DELETE FROM product WHERE id = ?`

	getStockForUpdate = `SELECT id, user_id, stock_quantity FROM product WHERE id = ? FOR UPDATE`

	// The guard keeps stock_quantity non-negative even without the row lock.
	decrementStockQuery = `UPDATE product SET stock_quantity = stock_quantity - ?, updated_at = NOW() WHERE id = ? AND stock_quantity >= ?`
)

func (s *SQL) Create(ctx context.Context, data *model.ProductEntity) (*model.ProductEntity, error) {
	res, err := s.conn.ExecContext(ctx, insertProductQuery,
		data.UserID, data.Title, data.Description, data.Price, data.Category, data.Type,
		data.Address, data.Coordinate, data.StockQuantity, data.IsRecommend)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	data.ID = uint64(id)
	return data, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ProductDetail, error) {
	var detail model.ProductDetail
	if err := s.conn.QueryRowxContext(ctx, getProductBase+" AND p.id = ?", id).StructScan(&detail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

// buildFilter returns the WHERE suffix and its args for the given filter
func buildFilter(filter *model.ProductFilter) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, 5)

	if filter.OwnerID != 0 {
		sb.WriteString(" AND p.user_id = ?")
		args = append(args, filter.OwnerID)
	}
	if filter.Type != "" {
		sb.WriteString(" AND p.type = ?")
		args = append(args, filter.Type)
	}
	if filter.Category != "" {
		sb.WriteString(" AND p.category = ?")
		args = append(args, filter.Category)
	}
	if filter.IsRecommend != nil {
		sb.WriteString(" AND p.is_recommend = ?")
		args = append(args, *filter.IsRecommend)
	}
	if filter.Search != "" {
		sb.WriteString(" AND (p.title LIKE ? OR p.description LIKE ?)")
		like := "%" + filter.Search + "%"
		args = append(args, like, like)
	}
	return sb.String(), args
}

func (s *SQL) List(ctx context.Context, filter *model.ProductFilter) ([]model.ProductDetail, int64, error) {
	where, args := buildFilter(filter)
	offset := (filter.Page - 1) * filter.PerPage

	query := getProductBase + where + " ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?"
	rows, err := s.conn.QueryxContext(ctx, query, append(args, filter.PerPage, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]model.ProductDetail, 0)
	for rows.Next() {
		var it model.ProductDetail
		if err := rows.StructScan(&it); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.conn.GetContext(ctx, &total, countProductBase+where, args...); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Update writes the descriptive columns. stock_quantity is left alone; it
// changes only through UpdateStock and DecrementStockTx.
func (s *SQL) Update(ctx context.Context, data *model.ProductEntity) error {
	res, err := s.conn.ExecContext(ctx, updateProductQuery,
		data.Title, data.Description, data.Price, data.Category, data.Type,
		data.Address, data.Coordinate, data.IsRecommend, data.ID)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (s *SQL) UpdateStock(ctx context.Context, id uint64, stock int64) error {
	res, err := s.conn.ExecContext(ctx, updateStockQuery, stock, id)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	res, err := s.conn.ExecContext(ctx, deleteProductQuery, id)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

// GetForUpdateTx locks the product row until tx ends
func (s *SQL) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ProductStock, error) {
	var stock model.ProductStock
	if err := tx.QueryRowxContext(ctx, getStockForUpdate, id).StructScan(&stock); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}

func (s *SQL) DecrementStockTx(ctx context.Context, tx *sqlx.Tx, id uint64, quantity int64) error {
	res, err := tx.ExecContext(ctx, decrementStockQuery, quantity, id, quantity)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return errors.SetCustomError(constant.ErrInsufficientStock)
	}
	return nil
}

// requireOneRow maps "no row matched" to sql.ErrNoRows. The DSN sets
// clientFoundRows so an unchanged but matched row still counts.
func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
