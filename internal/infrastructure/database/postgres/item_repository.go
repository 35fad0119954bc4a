package postgres

import (
	"context"
	"errors"
	"time"

	"bookstore-management/internal/domain/inventory"
	"bookstore-management/internal/infrastructure/database/postgres/models"

	"gorm.io/gorm"
)

// ItemRepository implements inventory.Repository for one collection table.
type ItemRepository struct {
	db         *DB
	collection inventory.Collection
}

// NewItemRepository creates a repository bound to the table of c.
func NewItemRepository(db *DB, c inventory.Collection) inventory.Repository {
	return &ItemRepository{db: db, collection: c}
}

func (r *ItemRepository) Collection() inventory.Collection {
	return r.collection
}

func (r *ItemRepository) table(ctx context.Context) *gorm.DB {
	return r.db.DB.WithContext(ctx).Table(r.collection.Table)
}

func (r *ItemRepository) Create(ctx context.Context, item *inventory.Item) error {
	if err := r.checkUnique(ctx, &item.ISBN, &item.Title, 0); err != nil {
		return err
	}

	now := time.Now()
	item.SchemaVersion = inventory.SchemaVersion
	item.CreatedAt = now
	item.UpdatedAt = now
	item.RecomputeAvailable()

	dbModel := toItemModel(item)
	if err := r.table(ctx).Create(dbModel).Error; err != nil {
		return translate(err, inventory.ErrISBNExists, "failed to create "+r.collection.Key())
	}

	item.ID = dbModel.ID
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, itemID uint) (*inventory.Item, error) {
	dbModel, err := r.find(ctx, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, inventory.ErrNotFound(r.collection)
	}
	if err != nil {
		return nil, translate(err, nil, "failed to get "+r.collection.Key())
	}
	return toItemEntity(dbModel), nil
}

func (r *ItemRepository) GetAll(ctx context.Context) ([]*inventory.Item, error) {
	var dbModels []models.ItemModel
	if err := r.table(ctx).Order("id").Find(&dbModels).Error; err != nil {
		return nil, translate(err, nil, "failed to get "+r.collection.Plural)
	}
	if len(dbModels) == 0 {
		return nil, inventory.ErrNoneFound(r.collection)
	}

	items := make([]*inventory.Item, len(dbModels))
	for i := range dbModels {
		items[i] = toItemEntity(&dbModels[i])
	}
	return items, nil
}

func (r *ItemRepository) Update(ctx context.Context, itemID uint, patch *inventory.Patch) error {
	dbModel, err := r.find(ctx, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return inventory.ErrNotFoundForUpdate(r.collection)
	}
	if err != nil {
		return translate(err, nil, "failed to get "+r.collection.Key())
	}

	if patch.ISBN != nil || patch.Title != nil {
		if err := r.checkUnique(ctx, patch.ISBN, patch.Title, itemID); err != nil {
			return err
		}
	}

	current := toItemEntity(dbModel)
	patch.Apply(current)
	if !current.HasConsistentStock() {
		return inventory.ErrReservedExceedsTotal
	}

	updates := patchColumns(patch)
	if patch.TouchesStock() {
		updates["available_stock"] = current.AvailableStock
	}
	updates["updated_at"] = time.Now()

	result := r.table(ctx).Where("id = ?", itemID).Updates(updates)
	if result.Error != nil {
		return translate(result.Error, inventory.ErrISBNExists, "failed to update "+r.collection.Key())
	}
	if result.RowsAffected == 0 {
		return inventory.ErrNotFoundForUpdate(r.collection)
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, itemID uint) error {
	_, err := r.find(ctx, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return inventory.ErrNotFoundForDelete(r.collection)
	}
	if err != nil {
		return translate(err, nil, "failed to get "+r.collection.Key())
	}

	result := r.table(ctx).Where("id = ?", itemID).Delete(&models.ItemModel{})
	if result.Error != nil {
		return translate(result.Error, nil, "failed to delete "+r.collection.Key())
	}
	if result.RowsAffected == 0 {
		return inventory.ErrNotFoundForDelete(r.collection)
	}
	return nil
}

func (r *ItemRepository) find(ctx context.Context, itemID uint) (*models.ItemModel, error) {
	var dbModel models.ItemModel
	if err := r.table(ctx).Where("id = ?", itemID).First(&dbModel).Error; err != nil {
		return nil, err
	}
	return &dbModel, nil
}

// checkUnique looks at every row sharing the isbn or the title; an isbn
// collision is reported before a title collision. Nil arguments are skipped.
func (r *ItemRepository) checkUnique(ctx context.Context, isbn, title *string, exceptID uint) error {
	if isbn == nil && title == nil {
		return nil
	}

	query := r.table(ctx).Select("id", "isbn", "title")
	switch {
	case isbn != nil && title != nil:
		query = query.Where("isbn = ? OR title = ?", *isbn, *title)
	case isbn != nil:
		query = query.Where("isbn = ?", *isbn)
	default:
		query = query.Where("title = ?", *title)
	}
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}

	var matches []models.ItemModel
	if err := query.Find(&matches).Error; err != nil {
		return translate(err, nil, "failed to check uniqueness")
	}

	titleTaken := false
	for _, m := range matches {
		if isbn != nil && m.ISBN == *isbn {
			return inventory.ErrISBNExists
		}
		if title != nil && m.Title == *title {
			titleTaken = true
		}
	}
	if titleTaken {
		return inventory.ErrTitleExists
	}
	return nil
}

func patchColumns(p *inventory.Patch) map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Author != nil {
		updates["author"] = *p.Author
	}
	if p.ISBN != nil {
		updates["isbn"] = *p.ISBN
	}
	if p.PublicationDate != nil {
		updates["publication_date"] = *p.PublicationDate
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.CostPrice != nil {
		updates["cost_price"] = *p.CostPrice
	}
	if p.SalePrice != nil {
		updates["sale_price"] = *p.SalePrice
	}
	if p.Tax != nil {
		updates["tax"] = *p.Tax
	}
	if p.TotalStock != nil {
		updates["total_stock"] = *p.TotalStock
	}
	if p.ReservedStock != nil {
		updates["reserved_stock"] = *p.ReservedStock
	}
	if p.MinimumStock != nil {
		updates["minimum_stock"] = *p.MinimumStock
	}
	if p.LastRestockDate != nil {
		updates["last_restock_date"] = *p.LastRestockDate
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.Publisher != nil {
		updates["publisher"] = *p.Publisher
	}
	return updates
}

func toItemModel(i *inventory.Item) *models.ItemModel {
	return &models.ItemModel{
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

func toItemEntity(m *models.ItemModel) *inventory.Item {
	return &inventory.Item{
		ID:              m.ID,
		SchemaVersion:   m.SchemaVersion,
		Title:           m.Title,
		Author:          m.Author,
		ISBN:            m.ISBN,
		PublicationDate: m.PublicationDate,
		Description:     m.Description,
		CostPrice:       m.CostPrice,
		SalePrice:       m.SalePrice,
		Tax:             m.Tax,
		TotalStock:      m.TotalStock,
		AvailableStock:  m.AvailableStock,
		ReservedStock:   m.ReservedStock,
		MinimumStock:    m.MinimumStock,
		LastRestockDate: m.LastRestockDate,
		Category:        m.Category,
		Publisher:       m.Publisher,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
