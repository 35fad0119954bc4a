package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	domainInventory "bookstore-management/internal/domain/inventory"
)

const dateOnly = "2006-01-02"

// Date accepts RFC3339 timestamps or plain YYYY-MM-DD dates. An empty string
// or null leaves it unset.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, dateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", raw)
}

func (d *Date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// ItemRequest is the create and update payload for books and stock records.
// Price and StockQuantity are the schema version 1 names of SalePrice and TotalStock.
type ItemRequest struct {
	Title           *string  `json:"title"`
	Author          *string  `json:"author"`
	ISBN            *string  `json:"isbn"`
	PublicationDate *Date    `json:"publicationDate" swaggertype:"string"`
	Description     *string  `json:"description"`
	CostPrice       *float64 `json:"costPrice"`
	SalePrice       *float64 `json:"salePrice"`
	Tax             *float64 `json:"tax"`
	TotalStock      *int     `json:"totalStock"`
	ReservedStock   *int     `json:"reservedStock"`
	MinimumStock    *int     `json:"minimumStock"`
	LastRestockDate *Date    `json:"lastRestockDate" swaggertype:"string"`
	Category        *string  `json:"category"`
	Publisher       *string  `json:"publisher"`

	Price         *float64 `json:"price,omitempty"`
	StockQuantity *int     `json:"stockQuantity,omitempty"`
}

// upgradeLegacy fills the current field names from their version 1 aliases.
func (r *ItemRequest) upgradeLegacy() {
	if r.SalePrice == nil && r.Price != nil {
		r.SalePrice = r.Price
	}
	if r.TotalStock == nil && r.StockQuantity != nil {
		r.TotalStock = r.StockQuantity
	}
}

type ItemResponse struct {
	ID              uint       `json:"id"`
	SchemaVersion   int        `json:"schemaVersion"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN            string     `json:"isbn"`
	PublicationDate *time.Time `json:"publicationDate"`
	Description     *string    `json:"description"`
	CostPrice       float64    `json:"costPrice"`
	SalePrice       float64    `json:"salePrice"`
	Tax             *float64   `json:"tax"`
	TotalStock      int        `json:"totalStock"`
	AvailableStock  int        `json:"availableStock"`
	ReservedStock   int        `json:"reservedStock"`
	MinimumStock    int        `json:"minimumStock"`
	LastRestockDate *time.Time `json:"lastRestockDate"`
	Category        *string    `json:"category"`
	Publisher       *string    `json:"publisher"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func ToItemResponse(i *domainInventory.Item) *ItemResponse {
	if i == nil {
		return nil
	}
	return &ItemResponse{
		ID:              i.ID,
		SchemaVersion:   i.SchemaVersion,
		Title:           i.Title,
		Author:          i.Author,
		ISBN:            i.ISBN,
		PublicationDate: i.PublicationDate,
		Description:     i.Description,
		CostPrice:       i.CostPrice,
		SalePrice:       i.SalePrice,
		Tax:             i.Tax,
		TotalStock:      i.TotalStock,
		AvailableStock:  i.AvailableStock,
		ReservedStock:   i.ReservedStock,
		MinimumStock:    i.MinimumStock,
		LastRestockDate: i.LastRestockDate,
		Category:        i.Category,
		Publisher:       i.Publisher,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

func ToItemResponses(items []*domainInventory.Item) []*ItemResponse {
	out := make([]*ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, ToItemResponse(i))
	}
	return out
}
