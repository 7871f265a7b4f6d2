package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopadmin/shopadmin/internal/core/storage"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProductRow(row scanner) (*storage.Product, error) {
	var p storage.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Photo,
		&p.Category,
		&p.Price,
		&p.Stock,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan product row: %w", err)
	}
	return &p, nil
}

func scanUserRow(row scanner) (*storage.User, error) {
	var u storage.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Photo,
		&u.Role,
		&u.Gender,
		&u.DOB,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	return &u, nil
}

// scanOrderRow scans an order row. shipping_info and order_items are JSONB.
func scanOrderRow(row scanner) (*storage.Order, error) {
	var o storage.Order
	var shippingJSON, itemsJSON []byte

	err := row.Scan(
		&o.ID,
		&o.UserID,
		&shippingJSON,
		&itemsJSON,
		&o.Subtotal,
		&o.Tax,
		&o.ShippingCharges,
		&o.Discount,
		&o.Total,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan order row: %w", err)
	}

	if len(shippingJSON) > 0 {
		if err := json.Unmarshal(shippingJSON, &o.ShippingInfo); err != nil {
			return nil, fmt.Errorf("failed to unmarshal shipping info: %w", err)
		}
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
		}
	}
	return &o, nil
}

// marshalOrderJSON marshals the JSONB columns of an order.
func marshalOrderJSON(o *storage.Order) (shippingJSON, itemsJSON []byte, err error) {
	shippingJSON, err = json.Marshal(o.ShippingInfo)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal shipping info: %w", err)
	}
	items := o.Items
	if items == nil {
		items = []storage.OrderItem{}
	}
	itemsJSON, err = json.Marshal(items)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal order items: %w", err)
	}
	return shippingJSON, itemsJSON, nil
}

// notFound maps sql.ErrNoRows to storage.ErrNotFound.
func notFound(kind, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %q: %w", kind, id, storage.ErrNotFound)
	}
	return err
}

// requireAffected returns storage.ErrNotFound when a write touched no row.
func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
