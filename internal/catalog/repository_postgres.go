package catalog

import (
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the products table and seeds it with the default
// lineup when empty.
func (r *PostgresRepository) EnsureSchema() error {
	if _, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS products (
        "productID" SERIAL PRIMARY KEY,
        title TEXT NOT NULL,
        price TEXT NOT NULL,
        image TEXT
    )`); err != nil {
		return err
	}

	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, p := range DefaultCatalog() {
		if _, err := r.db.Exec(`INSERT INTO products (title, price, image) VALUES ($1,$2,$3)`,
			p.Title, p.Price.String(), p.Image); err != nil {
			// seeding is best effort
			fmt.Printf("warning: could not seed product %q: %v\n", p.Title, err)
		}
	}
	return nil
}

func (r *PostgresRepository) List() []Product {
	rows, err := r.db.Query(`SELECT "productID", title, price, image FROM products ORDER BY "productID"`)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		var image sql.NullString
		if err := rows.Scan(&p.ID, &p.Title, &p.Price, &image); err != nil {
			continue
		}
		p.Image = image.String
		products = append(products, p)
	}
	return products
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	var p Product
	var image sql.NullString
	err := r.db.QueryRow(`SELECT "productID", title, price, image FROM products WHERE "productID" = $1`, id).
		Scan(&p.ID, &p.Title, &p.Price, &image)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	p.Image = image.String
	return p, nil
}
