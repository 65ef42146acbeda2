package models

import "time"

// Book is one catalog entry in the company library.
type Book struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Author    string    `db:"author" json:"author"`
	Category  string    `db:"category" json:"category"`
	Year      int       `db:"year" json:"year"`
	ISBN      string    `db:"isbn" json:"isbn,omitempty"`
	Available bool      `db:"available" json:"available"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// BookFilter narrows catalog listing queries.
type BookFilter struct {
	Search   string
	Category string
	Page     int
	PageSize int
}
