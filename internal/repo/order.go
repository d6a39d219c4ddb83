package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type orderRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewOrderRepo(db *sqlx.DB) *orderRepo {
	return &orderRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var orderColumns = []string{
	"o.id", "o.order_number", "o.user_id",
	"o.subtotal", "o.shipping", "o.tax", "o.total", "o.currency",
	"o.guest_first_name", "o.guest_last_name", "o.guest_email", "o.guest_phone",
	"o.shipping_address", "o.billing_address", "o.shipping_method", "o.notes",
	"o.payment_method", "o.payment_status", "o.status",
	"o.payment_session_id", "o.payment_transaction_id", "o.payment_signature",
	"u.name AS account_name", "u.email AS account_email",
	"o.created_at", "o.updated_at",
}

func (r *orderRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return entities.Order{}, entities.ErrOrderNotFound
	}

	conn := trm.Conn(ctx, r.db)

	// Заказ вместе с аккаунтом покупателя
	query, args := r.qb.Select(orderColumns...).
		From("orders o").
		LeftJoin("users u ON u.id = o.user_id").
		Where(sq.Eq{"o.id": orderID}).
		MustSql()

	var order Order
	err := conn.GetContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	// Позиции в порядке корзины
	query, args = r.qb.Select(
		"order_id", "position", "product_id", "name", "price", "quantity", "total").
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("position").
		MustSql()

	var items []Item
	if err := conn.SelectContext(ctx, &items, query, args...); err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order items: %w", err)
	}

	return OrderToEntity(order, items)
}

func (r *orderRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	shipping, err := AddressToJSON(o.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}
	billing, err := AddressToJSON(o.BillingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal billing address: %w", err)
	}

	query, args := r.qb.Insert("orders").
		Columns(
			"id", "order_number", "user_id",
			"subtotal", "shipping", "tax", "total", "currency",
			"guest_first_name", "guest_last_name", "guest_email", "guest_phone",
			"shipping_address", "billing_address", "shipping_method", "notes",
			"payment_method", "payment_status", "status",
			"created_at", "updated_at",
		).
		Values(
			o.ID, o.OrderNumber, nullString(o.UserID),
			o.Subtotal, o.Shipping, o.Tax, o.Total, o.Currency,
			o.Customer.FirstName, nullString(o.Customer.LastName), o.Customer.Email, nullString(o.Customer.Phone),
			shipping, billing, nullString(o.ShippingMethod), nullString(o.Notes),
			string(o.PaymentMethod), string(o.PaymentStatus), string(o.Status),
			o.CreatedAt, o.UpdatedAt,
		).
		MustSql()

	_, err = trm.Conn(ctx, r.db).ExecContext(ctx, query, args...)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == "orders_order_number_key" {
		return entities.ErrDuplicateOrderNumber
	}
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *orderRepo) SaveItems(ctx context.Context, orderID string, items []entities.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").
		Columns("order_id", "position", "product_id", "name", "price", "quantity", "total")

	for i, it := range items {
		q = q.Values(orderID, i, it.ProductID, it.Name, it.Price, it.Quantity, it.Total)
	}

	query, args := q.MustSql()
	if _, err := trm.Conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order items: %w", err)
	}
	return nil
}

// SetPaymentSession attaches the gateway session to an order that has none yet.
func (r *orderRepo) SetPaymentSession(ctx context.Context, orderID, sessionID string) error {
	query, args := r.qb.Update("orders").
		Set("payment_session_id", sessionID).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": orderID, "payment_session_id": nil}).
		MustSql()

	res, err := trm.Conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to set payment session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return entities.ErrOrderNotFound
	}
	return nil
}

// CompletePayment moves a PENDING order with a payable payment to COMPLETED/CONFIRMED and records
// the payment evidence in one statement. It reports whether this call
// performed the transition; concurrent duplicates see false.
func (r *orderRepo) CompletePayment(ctx context.Context, orderID, sessionID, paymentID, signature string) (bool, error) {
	query, args := r.qb.Update("orders").
		Set("payment_status", string(entities.PaymentStatusCompleted)).
		Set("status", string(entities.OrderStatusConfirmed)).
		Set("payment_transaction_id", paymentID).
		Set("payment_signature", signature).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{
			"id":                 orderID,
			"payment_session_id": sessionID,
			"payment_status":     payableStatuses(),
			"status":             string(entities.OrderStatusPending),
		}).
		MustSql()

	res, err := trm.Conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to complete payment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected == 1, nil
}

func payableStatuses() []string {
	statuses := make([]string, 0, len(entities.PayableStatuses))
	for _, s := range entities.PayableStatuses {
		statuses = append(statuses, string(s))
	}
	return statuses
}
