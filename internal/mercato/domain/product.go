package domain

import "time"

type Product struct {
	ID           string
	Name         string
	Slug         string
	Description  string
	Price        float64
	ComparePrice *float64 // Original price before discount (nullable)
	SKU          string
	StockQty     int
	IsActive     bool
	CategoryID   *string // Foreign key to categories table (nullable)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
