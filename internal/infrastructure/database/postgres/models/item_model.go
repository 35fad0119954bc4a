package models

import (
	"time"
)

// ItemModel is the row shape shared by the books and stock tables; callers
// choose the table with gorm's Table().
type ItemModel struct {
	ID              uint       `gorm:"primaryKey;autoIncrement"`
	SchemaVersion   int        `gorm:"column:schema_version;not null"`
	Title           string     `gorm:"type:varchar(255);not null;index"`
	Author          string     `gorm:"type:varchar(255);not null"`
	ISBN            string     `gorm:"column:isbn;type:varchar(32);not null;uniqueIndex"`
	PublicationDate *time.Time `gorm:"column:publication_date"`
	Description     *string    `gorm:"type:text"`
	CostPrice       float64    `gorm:"column:cost_price;not null"`
	SalePrice       float64    `gorm:"column:sale_price;not null"`
	Tax             *float64
	TotalStock      int        `gorm:"column:total_stock;not null"`
	AvailableStock  int        `gorm:"column:available_stock;not null"`
	ReservedStock   int        `gorm:"column:reserved_stock;not null"`
	MinimumStock    int        `gorm:"column:minimum_stock;not null"`
	LastRestockDate *time.Time `gorm:"column:last_restock_date"`
	Category        *string    `gorm:"type:varchar(255)"`
	Publisher       *string    `gorm:"type:varchar(255)"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time  `gorm:"not null"`
}
