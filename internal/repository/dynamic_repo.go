package repository

import (
	"errors"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"gorm.io/gorm"
)

// DynamicRepository group-interview session data access interface
type DynamicRepository interface {
	Create(dynamic *domain.Dynamic) error
	FindByID(id string) (*domain.Dynamic, error)
	FindAll() ([]*domain.Dynamic, error)
	Update(dynamic *domain.Dynamic) error
	Delete(id string) error
}

type dynamicRepository struct {
	db *gorm.DB
}

// NewDynamicRepository creates a new DynamicRepository
func NewDynamicRepository(db *gorm.DB) DynamicRepository {
	return &dynamicRepository{db: db}
}

func (r *dynamicRepository) Create(dynamic *domain.Dynamic) error {
	return r.db.Create(dynamic).Error
}

func (r *dynamicRepository) FindByID(id string) (*domain.Dynamic, error) {
	var dynamic domain.Dynamic
	err := r.db.Where("id = ?", id).First(&dynamic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrDynamicNotFound
		}
		return nil, err
	}
	return &dynamic, nil
}

func (r *dynamicRepository) FindAll() ([]*domain.Dynamic, error) {
	var dynamics []*domain.Dynamic
	err := r.db.Order("date DESC").Find(&dynamics).Error
	return dynamics, err
}

func (r *dynamicRepository) Update(dynamic *domain.Dynamic) error {
	return r.db.Save(dynamic).Error
}

func (r *dynamicRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&domain.Dynamic{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrDynamicNotFound
	}
	return nil
}
