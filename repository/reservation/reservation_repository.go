package reservation

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/community-market/constant"
	"github.com/muhammadheryan/community-market/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ReservationRepository interface {
	Create(ctx context.Context, data *model.ReservationEntity) (*model.ReservationEntity, error)
	GetByID(ctx context.Context, id uint64) (*model.ReservationDetail, error)
	List(ctx context.Context, filter *model.ReservationFilter) ([]model.ReservationDetail, int64, error)
	CountByStatus(ctx context.Context, filter *model.ReservationFilter) ([]model.StatusCount, error)
	UpdatePending(ctx context.Context, data *model.ReservationEntity) (bool, error)
	CancelPending(ctx context.Context, id uint64) (bool, error)
	UpdateStatus(ctx context.Context, id uint64, status constant.ReservationStatus) error
	Delete(ctx context.Context, id uint64) error

	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ReservationDetail, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.ReservationStatus) error
}

func NewReservationRepository(conn *sqlx.DB) ReservationRepository {
	return &SQL{conn: conn}
}

const (
	reservationColumns = `r.reservation_id, r.user_id, r.product_id, r.quantity, r.note, r.shipping_address, r.status, r.created_at, r.updated_at`

	insertReservationQuery = `INSERT INTO reservation (user_id, product_id, quantity, note, shipping_address, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, NOW())`

	getReservationBase = `SELECT ` + reservationColumns + `, p.title as product_title, p.price as product_price, p.user_id as product_owner_id, o.name as owner_name, c.name as customer_name
FROM reservation r
JOIN product p ON r.product_id = p.id
JOIN user o ON p.user_id = o.id
JOIN user c ON r.user_id = c.id
WHERE true`

	countReservationBase = `SELECT COUNT(*)
FROM reservation r
JOIN product p ON r.product_id = p.id
WHERE true`

	countByStatusBase = `SELECT r.status, COUNT(*) as total
FROM reservation r
JOIN product p ON r.product_id = p.id
WHERE true`

	// Locks the reservation and its product row, in that order.
	getReservationForUpdate = `SELECT ` + reservationColumns + `, p.user_id as product_owner_id
FROM reservation r
JOIN product p ON r.product_id = p.id
WHERE r.reservation_id = ?
FOR UPDATE`

	updateStatusQuery = `UPDATE reservation SET status = ?, updated_at = NOW() WHERE reservation_id = ?`

	cancelPendingQuery = `UPDATE reservation SET status = ?, updated_at = NOW() WHERE reservation_id = ? AND status = ?`

	updatePendingQuery = `UPDATE reservation SET quantity = ?, note = ?, shipping_address = ?, updated_at = NOW() WHERE reservation_id = ? AND status = ?`

	deleteReservationQuery = `DELETE FROM reservation WHERE reservation_id = ?`
)

func (s *SQL) Create(ctx context.Context, data *model.ReservationEntity) (*model.ReservationEntity, error) {
	res, err := s.conn.ExecContext(ctx, insertReservationQuery,
		data.UserID, data.ProductID, data.Quantity, data.Note, data.ShippingAddress, data.Status)
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

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ReservationDetail, error) {
	var detail model.ReservationDetail
	if err := s.conn.QueryRowxContext(ctx, getReservationBase+" AND r.reservation_id = ?", id).StructScan(&detail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

func buildFilter(filter *model.ReservationFilter) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, 4)

	if filter.CustomerID != 0 {
		sb.WriteString(" AND r.user_id = ?")
		args = append(args, filter.CustomerID)
	}
	if filter.ProductOwnerID != 0 {
		sb.WriteString(" AND p.user_id = ?")
		args = append(args, filter.ProductOwnerID)
	}
	if filter.ProductID != 0 {
		sb.WriteString(" AND r.product_id = ?")
		args = append(args, filter.ProductID)
	}
	if filter.Status != "" {
		sb.WriteString(" AND r.status = ?")
		args = append(args, filter.Status)
	}
	return sb.String(), args
}

func (s *SQL) List(ctx context.Context, filter *model.ReservationFilter) ([]model.ReservationDetail, int64, error) {
	where, args := buildFilter(filter)
	offset := (filter.Page - 1) * filter.PerPage

	query := getReservationBase + where + " ORDER BY r.created_at DESC, r.reservation_id DESC LIMIT ? OFFSET ?"
	rows, err := s.conn.QueryxContext(ctx, query, append(args, filter.PerPage, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]model.ReservationDetail, 0)
	for rows.Next() {
		var it model.ReservationDetail
		if err := rows.StructScan(&it); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.conn.GetContext(ctx, &total, countReservationBase+where, args...); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *SQL) CountByStatus(ctx context.Context, filter *model.ReservationFilter) ([]model.StatusCount, error) {
	where, args := buildFilter(filter)
	counts := make([]model.StatusCount, 0, 3)
	if err := s.conn.SelectContext(ctx, &counts, countByStatusBase+where+" GROUP BY r.status", args...); err != nil {
		return nil, err
	}
	return counts, nil
}

// UpdatePending rewrites the customer-editable fields of a pending reservation.
// It reports false when the reservation is missing or no longer pending.
func (s *SQL) UpdatePending(ctx context.Context, data *model.ReservationEntity) (bool, error) {
	res, err := s.conn.ExecContext(ctx, updatePendingQuery,
		data.Quantity, data.Note, data.ShippingAddress, data.ID, constant.ReservationStatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// CancelPending moves a pending reservation to cancelled in a single statement,
// so it cannot overwrite a confirmation that committed first.
func (s *SQL) CancelPending(ctx context.Context, id uint64) (bool, error) {
	res, err := s.conn.ExecContext(ctx, cancelPendingQuery,
		constant.ReservationStatusCancelled, id, constant.ReservationStatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *SQL) UpdateStatus(ctx context.Context, id uint64, status constant.ReservationStatus) error {
	res, err := s.conn.ExecContext(ctx, updateStatusQuery, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	res, err := s.conn.ExecContext(ctx, deleteReservationQuery, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *SQL) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ReservationDetail, error) {
	var detail model.ReservationDetail
	if err := tx.QueryRowxContext(ctx, getReservationForUpdate, id).StructScan(&detail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

func (s *SQL) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.ReservationStatus) error {
	_, err := tx.ExecContext(ctx, updateStatusQuery, status, id)
	return err
}
