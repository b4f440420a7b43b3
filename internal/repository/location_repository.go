package repository

import (
	"context"
	"errors"

	"github.com/blogicum-next/internal/models"

	"gorm.io/gorm"
)

// LocationRepository 地点数据访问接口
type LocationRepository interface {
	List(ctx context.Context, filter LocationListFilter) ([]models.Location, error)
	GetByID(ctx context.Context, id uint) (*models.Location, error)
	Create(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id uint) error
}

// GormLocationRepository GORM 实现
type GormLocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository 创建地点仓库
func NewLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// List 地点列表
func (r *GormLocationRepository) List(ctx context.Context, filter LocationListFilter) ([]models.Location, error) {
	query := r.db.WithContext(ctx).Model(&models.Location{})
	if filter.OnlyPublished {
		query = query.Where("is_published = ?", true)
	}
	var locations []models.Location
	if err := query.Order("name ASC").Order("id ASC").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// GetByID 根据 ID 获取地点
func (r *GormLocationRepository) GetByID(ctx context.Context, id uint) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

// Create 创建地点
func (r *GormLocationRepository) Create(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

// Delete 删除地点，并将引用它的文章地点置空
func (r *GormLocationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("location_id = ?", id).
			Update("location_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Location{}, id).Error
	})
}
