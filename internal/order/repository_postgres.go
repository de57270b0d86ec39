package order

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
)

// PostgresRepository archives completed orders. The in-memory log stays the
// source of truth for the live session; rows here are for bookkeeping.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the orders table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS orders (
        "orderID" TEXT PRIMARY KEY,
        buyer jsonb NOT NULL,
        items jsonb NOT NULL,
        total TEXT NOT NULL,
        receipt jsonb NOT NULL,
        "createdAt" TIMESTAMPTZ NOT NULL
    )`)
	return err
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	buyerJSON, err := json.Marshal(ord.Buyer)
	if err != nil {
		return Order{}, err
	}
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}
	receiptJSON, err := json.Marshal(ord.Receipt)
	if err != nil {
		return Order{}, err
	}

	_, err = r.db.Exec(`INSERT INTO orders ("orderID", buyer, items, total, receipt, "createdAt")
        VALUES ($1,$2,$3,$4,$5,$6)`,
		ord.ID, buyerJSON, itemsJSON, ord.Total.String(), receiptJSON, ord.CreatedAt)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

// ListByIDs returns archived orders matching the given orderIDs, ordered
// according to the sequence of ids in the slice. An empty slice leads to an
// immediate empty result.
func (r *PostgresRepository) ListByIDs(ids []string) ([]Order, error) {
	if len(ids) == 0 {
		return []Order{}, nil
	}

	query := `SELECT "orderID", buyer, items, total, receipt, "createdAt"
		FROM orders
		WHERE "orderID" = ANY($1::text[])
		ORDER BY array_position($1::text[], "orderID")`

	rows, err := r.db.Query(query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var ord Order
		var buyerJSON, itemsJSON, receiptJSON []byte
		if err := rows.Scan(&ord.ID, &buyerJSON, &itemsJSON, &ord.Total, &receiptJSON, &ord.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(buyerJSON, &ord.Buyer); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(itemsJSON, &ord.Items); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(receiptJSON, &ord.Receipt); err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}

	return orders, rows.Err()
}
