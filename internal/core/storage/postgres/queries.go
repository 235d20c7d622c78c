package postgres

// Raw table reads. Every scan streams a whole table in id order; the rollup
// definitions do their own grouping.
const (
	queryScanOrders = `
		SELECT id, user_id, total_amount, status, order_date
		FROM orders
		ORDER BY id ASC
	`

	queryScanOrderItems = `
		SELECT id, order_id, product_id, quantity, unit_price, subtotal
		FROM order_items
		ORDER BY id ASC
	`

	queryScanProducts = `
		SELECT id, name, category, price
		FROM products
		ORDER BY id ASC
	`

	queryScanUsers = `
		SELECT id, email, name
		FROM users
		ORDER BY id ASC
	`

	queryScanUserActivities = `
		SELECT id, user_id, activity_type, occurred_at
		FROM user_activities
		ORDER BY id ASC
	`

	queryExistingTables = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = current_schema()
		  AND table_name = ANY($1)
	`
)

// Snapshot archive.
const (
	querySelectSnapshotForUpdate = `
		SELECT computed_at
		FROM rollup_snapshots
		WHERE rollup = $1
		FOR UPDATE
	`

	queryUpsertSnapshot = `
		INSERT INTO rollup_snapshots (
			rollup, run_id, fingerprint, computed_at, row_count, source_row_count, rows, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (rollup) DO UPDATE SET
			run_id           = EXCLUDED.run_id,
			fingerprint      = EXCLUDED.fingerprint,
			computed_at      = EXCLUDED.computed_at,
			row_count        = EXCLUDED.row_count,
			source_row_count = EXCLUDED.source_row_count,
			rows             = EXCLUDED.rows,
			updated_at       = EXCLUDED.updated_at
	`

	queryLoadSnapshots = `
		SELECT rollup, run_id, fingerprint, computed_at, row_count, source_row_count, rows
		FROM rollup_snapshots
		ORDER BY rollup ASC
	`
)
