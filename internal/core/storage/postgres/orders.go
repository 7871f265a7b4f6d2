package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopadmin/shopadmin/internal/core/storage"
)

// FindOrders returns the orders matching f, oldest first unless f.Newest is set.
func (a *Adapter) FindOrders(ctx context.Context, f storage.OrderFilter) ([]storage.Order, error) {
	w := orderWhere(f)

	query := querySelectOrders + w.String()
	if f.Newest {
		query += " ORDER BY created_at DESC, id ASC"
	} else {
		query += " ORDER BY created_at ASC, id ASC"
	}
	args := append([]interface{}{}, w.args...)
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]storage.Order, 0)
	for rows.Next() {
		o, err := scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return orders, nil
}

// CountOrders counts the orders matching f. Limit and Newest are ignored.
func (a *Adapter) CountOrders(ctx context.Context, f storage.OrderFilter) (int64, error) {
	return a.count(ctx, queryCountOrders, orderWhere(f))
}

// GetOrder returns one order or storage.ErrNotFound.
func (a *Adapter) GetOrder(ctx context.Context, id string) (*storage.Order, error) {
	o, err := scanOrderRow(a.db.QueryRowContext(ctx, queryGetOrder, id))
	if err != nil {
		return nil, notFound("order", id, err)
	}
	return o, nil
}

// CreateOrder inserts o.
func (a *Adapter) CreateOrder(ctx context.Context, o *storage.Order) error {
	shippingJSON, itemsJSON, err := marshalOrderJSON(o)
	if err != nil {
		return err
	}

	_, err = a.db.ExecContext(ctx, queryInsertOrder,
		o.ID,
		o.UserID,
		shippingJSON,
		itemsJSON,
		o.Subtotal,
		o.Tax,
		o.ShippingCharges,
		o.Discount,
		o.Total,
		o.Status,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	slog.Debug("[Postgres] Saved order", "order_id", o.ID, "user_id", o.UserID)
	return nil
}

// UpdateOrder overwrites the mutable fields of o.
func (a *Adapter) UpdateOrder(ctx context.Context, o *storage.Order) error {
	shippingJSON, itemsJSON, err := marshalOrderJSON(o)
	if err != nil {
		return err
	}

	res, err := a.db.ExecContext(ctx, queryUpdateOrder,
		o.ID,
		shippingJSON,
		itemsJSON,
		o.Subtotal,
		o.Tax,
		o.ShippingCharges,
		o.Discount,
		o.Total,
		o.Status,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return requireAffected(res, "order", o.ID)
}

// DeleteOrder removes an order.
func (a *Adapter) DeleteOrder(ctx context.Context, id string) error {
	res, err := a.db.ExecContext(ctx, queryDeleteOrder, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return requireAffected(res, "order", id)
}
