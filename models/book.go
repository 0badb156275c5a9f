package models

import "time"

type Book struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:120;not null" json:"title"`
	Author      string `gorm:"size:80;not null" json:"author"`
	Genre       string `gorm:"size:80;index" json:"genre,omitempty"`
	Description string `gorm:"type:text;not null" json:"description"`
	Image       string `gorm:"type:text" json:"image"`
	ISBN        string `gorm:"column:isbn;uniqueIndex;size:20;not null" json:"isbn"`

	// Available is false exactly while BorrowedBy is set. Both columns
	// flip together inside the borrow/return transactions.
	Available     bool       `gorm:"not null;default:true" json:"available"`
	BorrowedBy    *uint      `gorm:"index" json:"borrowed_by,omitempty"`
	BorrowedUntil *time.Time `json:"borrowed_until,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Book) TableName() string { return "books" }
