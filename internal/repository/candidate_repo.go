package repository

import (
	"errors"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"gorm.io/gorm"
)

// CandidateRepository candidate data access interface
type CandidateRepository interface {
	Create(candidate *domain.Candidate) error
	FindByID(id uint) (*domain.Candidate, error)
	FindByEmail(email string) (*domain.Candidate, error)
	FindAll() ([]*domain.Candidate, error)
	FindByIDs(ids []uint) ([]*domain.Candidate, error)
	Update(candidate *domain.Candidate) error
	SetArchived(id uint, archived bool) error
	Delete(id uint) error
	RestoreAllArchived() error
	DeleteAllArchived() error
}

type candidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository creates a new CandidateRepository
func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(candidate *domain.Candidate) error {
	return r.db.Create(candidate).Error
}

func (r *candidateRepository) FindByID(id uint) (*domain.Candidate, error) {
	var candidate domain.Candidate
	err := r.db.First(&candidate, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrCandidateNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

// FindByEmail matches the resume contact email case-insensitively. The email
// lives inside the resume JSON blob, so the match runs over the extracted
// value rather than a dedicated column.
func (r *candidateRepository) FindByEmail(email string) (*domain.Candidate, error) {
	var candidate domain.Candidate
	err := r.db.
		Where("LOWER(JSON_UNQUOTE(JSON_EXTRACT(resume, '$.email'))) = LOWER(?)", email).
		First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrCandidateNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

func (r *candidateRepository) FindAll() ([]*domain.Candidate, error) {
	var candidates []*domain.Candidate
	err := r.db.Order("application_date DESC").Find(&candidates).Error
	return candidates, err
}

func (r *candidateRepository) FindByIDs(ids []uint) ([]*domain.Candidate, error) {
	var candidates []*domain.Candidate
	err := r.db.Where("id IN ?", ids).Find(&candidates).Error
	return candidates, err
}

func (r *candidateRepository) Update(candidate *domain.Candidate) error {
	return r.db.Save(candidate).Error
}

func (r *candidateRepository) SetArchived(id uint, archived bool) error {
	result := r.db.Model(&domain.Candidate{}).Where("id = ?", id).Update("is_archived", archived)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrCandidateNotFound
	}
	return nil
}

func (r *candidateRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Candidate{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrCandidateNotFound
	}
	return nil
}

func (r *candidateRepository) RestoreAllArchived() error {
	return r.db.Model(&domain.Candidate{}).
		Where("is_archived = ?", true).
		Update("is_archived", false).Error
}

func (r *candidateRepository) DeleteAllArchived() error {
	return r.db.Where("is_archived = ?", true).Delete(&domain.Candidate{}).Error
}
