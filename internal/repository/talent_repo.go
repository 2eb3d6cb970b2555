package repository

import (
	"errors"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"gorm.io/gorm"
)

// TalentRepository talent pool data access interface
type TalentRepository interface {
	Create(talent *domain.Talent) error
	FindByID(id uint) (*domain.Talent, error)
	FindAll() ([]*domain.Talent, error)
	ExistsByOriginalCandidateID(candidateID uint) (bool, error)
	Update(talent *domain.Talent) error
	SetArchived(id uint, archived bool) error
	Delete(id uint) error
	RestoreAllArchived() error
	DeleteAllArchived() error
}

type talentRepository struct {
	db *gorm.DB
}

// NewTalentRepository creates a new TalentRepository
func NewTalentRepository(db *gorm.DB) TalentRepository {
	return &talentRepository{db: db}
}

func (r *talentRepository) Create(talent *domain.Talent) error {
	return r.db.Create(talent).Error
}

func (r *talentRepository) FindByID(id uint) (*domain.Talent, error) {
	var talent domain.Talent
	err := r.db.First(&talent, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrTalentNotFound
		}
		return nil, err
	}
	return &talent, nil
}

func (r *talentRepository) FindAll() ([]*domain.Talent, error) {
	var talents []*domain.Talent
	err := r.db.Order("id DESC").Find(&talents).Error
	return talents, err
}

func (r *talentRepository) ExistsByOriginalCandidateID(candidateID uint) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Talent{}).
		Where("original_candidate_id = ?", candidateID).
		Count(&count).Error
	return count > 0, err
}

func (r *talentRepository) Update(talent *domain.Talent) error {
	return r.db.Save(talent).Error
}

func (r *talentRepository) SetArchived(id uint, archived bool) error {
	result := r.db.Model(&domain.Talent{}).Where("id = ?", id).Update("is_archived", archived)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrTalentNotFound
	}
	return nil
}

func (r *talentRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Talent{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrTalentNotFound
	}
	return nil
}

func (r *talentRepository) RestoreAllArchived() error {
	return r.db.Model(&domain.Talent{}).
		Where("is_archived = ?", true).
		Update("is_archived", false).Error
}

func (r *talentRepository) DeleteAllArchived() error {
	return r.db.Where("is_archived = ?", true).Delete(&domain.Talent{}).Error
}
