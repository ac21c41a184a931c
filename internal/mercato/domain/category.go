package domain

import "time"

type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	ParentID    *string // Self-referencing foreign key (nullable, top-level when nil)
	IsActive    bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
