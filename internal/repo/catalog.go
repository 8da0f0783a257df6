package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/discoshop/backend/internal/models"
)

// ListProducts filters by id set or category slug, ids winning when both
// are present, and resolves category associations. An unknown slug matches
// nothing and returns an empty slice.
func (r *GormRepo) ListProducts(ctx context.Context, ids []uint, categorySlug string) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{}).Preload("Categories")

	switch {
	case len(ids) > 0:
		q = q.Where("id IN ?", ids)
	case categorySlug != "" && categorySlug != "all":
		q = q.Joins("JOIN product_categories pc ON pc.product_id = products.id").
			Joins("JOIN categories cat ON cat.id = pc.category_id").
			Where("cat.slug = ?", strings.ToLower(categorySlug)).
			Distinct()
	}

	items := make([]models.Product, 0)
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Preload("Categories").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductsByIDs resolves the id set without ordering guarantees, for
// order-line resolution.
func (r *GormRepo) GetProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ProductNameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error
	return count > 0, err
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product, categoryIDs []uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(categoryIDs) > 0 {
			var cats []models.Category
			if err := tx.Where("id IN ?", categoryIDs).Find(&cats).Error; err != nil {
				return err
			}
			prod.Categories = cats
		}
		return tx.Create(prod).Error
	})
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Save(prod).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}
