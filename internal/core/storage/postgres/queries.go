package postgres

// SQL for the catalog tables. Filtered SELECTs append a WHERE clause built by
// whereBuilder, so the base queries end without one.

const (
	productColumns = `id, name, photo, category, price, stock, created_at, updated_at`
	userColumns    = `id, name, email, photo, role, gender, dob, created_at, updated_at`
	orderColumns   = `id, user_id, shipping_info, order_items, subtotal, tax, shipping_charges, discount, total, status, created_at, updated_at`

	querySelectProducts = `SELECT ` + productColumns + ` FROM products`
	queryCountProducts  = `SELECT COUNT(*) FROM products`
	queryGetProduct     = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	queryDistinctCategories = `SELECT DISTINCT category FROM products ORDER BY category ASC`

	queryLatestProducts = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id ASC LIMIT $1`

	queryInsertProduct = `
		INSERT INTO products (id, name, photo, category, price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	queryUpdateProduct = `
		UPDATE products
		SET name = $2, photo = $3, category = $4, price = $5, stock = $6, updated_at = $7
		WHERE id = $1
	`

	queryDeleteProduct = `DELETE FROM products WHERE id = $1`

	querySelectUsers = `SELECT ` + userColumns + ` FROM users`
	queryCountUsers  = `SELECT COUNT(*) FROM users`
	queryGetUser     = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	queryInsertUser = `
		INSERT INTO users (id, name, email, photo, role, gender, dob, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	queryDeleteUser = `DELETE FROM users WHERE id = $1`

	querySelectOrders = `SELECT ` + orderColumns + ` FROM orders`
	queryCountOrders  = `SELECT COUNT(*) FROM orders`
	queryGetOrder     = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	queryInsertOrder = `
		INSERT INTO orders (
			id, user_id, shipping_info, order_items, subtotal, tax,
			shipping_charges, discount, total, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	queryUpdateOrder = `
		UPDATE orders
		SET shipping_info = $2, order_items = $3, subtotal = $4, tax = $5,
			shipping_charges = $6, discount = $7, total = $8, status = $9, updated_at = $10
		WHERE id = $1
	`

	queryDeleteOrder = `DELETE FROM orders WHERE id = $1`
)
