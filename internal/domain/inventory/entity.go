package inventory

import (
	"strings"
	"time"
)

// SchemaVersion is stamped on every stored item. Version 1 payloads used
// price and stockQuantity instead of salePrice and totalStock.
const SchemaVersion = 2

// Item is the canonical record behind both the book and the stock collections.
type Item struct {
	ID              uint
	SchemaVersion   int
	Title           string
	Author          string
	ISBN            string
	PublicationDate *time.Time
	Description     *string
	CostPrice       float64
	SalePrice       float64
	Tax             *float64
	TotalStock      int
	AvailableStock  int
	ReservedStock   int
	MinimumStock    int
	LastRestockDate *time.Time
	Category        *string
	Publisher       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RecomputeAvailable keeps AvailableStock equal to TotalStock minus ReservedStock.
func (i *Item) RecomputeAvailable() {
	i.AvailableStock = i.TotalStock - i.ReservedStock
}

// HasConsistentStock reports whether reservations fit within the total.
func (i *Item) HasConsistentStock() bool {
	return i.ReservedStock <= i.TotalStock
}

// IsLowStock reports whether available units have fallen to the restock threshold.
func (i *Item) IsLowStock() bool {
	return i.AvailableStock <= i.MinimumStock
}

// Patch carries the fields of a partial update; nil means "leave unchanged".
type Patch struct {
	Title           *string
	Author          *string
	ISBN            *string
	PublicationDate *time.Time
	Description     *string
	CostPrice       *float64
	SalePrice       *float64
	Tax             *float64
	TotalStock      *int
	ReservedStock   *int
	MinimumStock    *int
	LastRestockDate *time.Time
	Category        *string
	Publisher       *string
}

func (p *Patch) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Title == nil && p.Author == nil && p.ISBN == nil && p.PublicationDate == nil &&
		p.Description == nil && p.CostPrice == nil && p.SalePrice == nil && p.Tax == nil &&
		p.TotalStock == nil && p.ReservedStock == nil && p.MinimumStock == nil &&
		p.LastRestockDate == nil && p.Category == nil && p.Publisher == nil
}

// TouchesStock reports whether applying the patch can change AvailableStock.
func (p *Patch) TouchesStock() bool {
	return p != nil && (p.TotalStock != nil || p.ReservedStock != nil)
}

// Apply copies every set field of p onto item and recomputes AvailableStock.
func (p *Patch) Apply(item *Item) {
	if p == nil || item == nil {
		return
	}
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Author != nil {
		item.Author = *p.Author
	}
	if p.ISBN != nil {
		item.ISBN = *p.ISBN
	}
	if p.PublicationDate != nil {
		item.PublicationDate = p.PublicationDate
	}
	if p.Description != nil {
		item.Description = p.Description
	}
	if p.CostPrice != nil {
		item.CostPrice = *p.CostPrice
	}
	if p.SalePrice != nil {
		item.SalePrice = *p.SalePrice
	}
	if p.Tax != nil {
		item.Tax = p.Tax
	}
	if p.TotalStock != nil {
		item.TotalStock = *p.TotalStock
	}
	if p.ReservedStock != nil {
		item.ReservedStock = *p.ReservedStock
	}
	if p.MinimumStock != nil {
		item.MinimumStock = *p.MinimumStock
	}
	if p.LastRestockDate != nil {
		item.LastRestockDate = p.LastRestockDate
	}
	if p.Category != nil {
		item.Category = p.Category
	}
	if p.Publisher != nil {
		item.Publisher = p.Publisher
	}
	item.RecomputeAvailable()
}

// Collection names one of the two inventory views that share the Item shape.
type Collection struct {
	Name   string // singular, capitalized: used in messages
	Plural string // lower-case plural: used in list messages and routes
	Table  string
}

var (
	Books = Collection{Name: "Book", Plural: "books", Table: "books"}
	Stock = Collection{Name: "Stock", Plural: "stocks", Table: "stock"}
)

// Key is the lower-case singular used for route segments and response envelopes.
func (c Collection) Key() string {
	return strings.ToLower(c.Name)
}

func (c Collection) MsgRegistered() string {
	return c.Name + " registered successfully"
}

func (c Collection) MsgDeleted() string {
	return c.Name + " deleted successfully"
}

const MsgUpdated = "Data updated successfully."
