package postgres

import (
	"context"
	"database/sql"
	"fmt"

	v1 "github.com/aevon-lab/tally/internal/api/v1"
	"github.com/shopspring/decimal"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// streamRows runs stmt and hands each decoded row to fn. An error returned by
// fn stops iteration and is passed through unwrapped.
func streamRows[T any](
	ctx context.Context,
	stmt *sql.Stmt,
	table string,
	decode func(scanner) (T, error),
	fn func(T) error,
) error {
	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := decode(rows)
		if err != nil {
			return fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating %s: %w", table, err)
	}
	return nil
}

// Nullable raw columns decode to zero values; the rollup definitions decide
// whether a zero value is acceptable.

func scanOrder(row scanner) (v1.Order, error) {
	var (
		o      v1.Order
		amount decimal.NullDecimal
		status sql.NullString
		date   sql.NullTime
	)
	if err := row.Scan(&o.ID, &o.UserID, &amount, &status, &date); err != nil {
		return o, err
	}
	o.TotalAmount = amount.Decimal
	o.Status = v1.OrderStatus(status.String)
	if date.Valid {
		o.OrderDate = date.Time.UTC()
	}
	return o, nil
}

func scanOrderItem(row scanner) (v1.OrderItem, error) {
	var (
		item      v1.OrderItem
		quantity  sql.NullInt64
		unitPrice decimal.NullDecimal
		subtotal  decimal.NullDecimal
	)
	if err := row.Scan(&item.ID, &item.OrderID, &item.ProductID, &quantity, &unitPrice, &subtotal); err != nil {
		return item, err
	}
	item.Quantity = quantity.Int64
	item.UnitPrice = unitPrice.Decimal
	item.Subtotal = subtotal.Decimal
	return item, nil
}

func scanProduct(row scanner) (v1.Product, error) {
	var (
		p        v1.Product
		name     sql.NullString
		category sql.NullString
		price    decimal.NullDecimal
	)
	if err := row.Scan(&p.ID, &name, &category, &price); err != nil {
		return p, err
	}
	p.Name = name.String
	p.Category = category.String
	p.Price = price.Decimal
	return p, nil
}

func scanUser(row scanner) (v1.User, error) {
	var (
		u     v1.User
		email sql.NullString
		name  sql.NullString
	)
	if err := row.Scan(&u.ID, &email, &name); err != nil {
		return u, err
	}
	u.Email = email.String
	u.Name = name.String
	return u, nil
}

func scanUserActivity(row scanner) (v1.UserActivity, error) {
	var (
		a            v1.UserActivity
		activityType sql.NullString
		occurredAt   sql.NullTime
	)
	if err := row.Scan(&a.ID, &a.UserID, &activityType, &occurredAt); err != nil {
		return a, err
	}
	a.ActivityType = v1.ActivityType(activityType.String)
	if occurredAt.Valid {
		a.OccurredAt = occurredAt.Time.UTC()
	}
	return a, nil
}
