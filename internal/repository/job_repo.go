package repository

import (
	"errors"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"gorm.io/gorm"
)

// JobRepository job posting data access interface
type JobRepository interface {
	Create(job *domain.Job) error
	FindByID(id string) (*domain.Job, error)
	FindAll() ([]*domain.Job, error)
	FindByStatus(status domain.JobStatus) ([]*domain.Job, error)
	Update(job *domain.Job) error
	UpdateStatus(id string, status domain.JobStatus) error
	Delete(id string) error
	RestoreAllArchived() error
	DeleteAllArchived() error
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *domain.Job) error {
	return r.db.Create(job).Error
}

func (r *jobRepository) FindByID(id string) (*domain.Job, error) {
	var job domain.Job
	err := r.db.Where("id = ?", id).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) FindAll() ([]*domain.Job, error) {
	var jobs []*domain.Job
	err := r.db.Order("title").Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) FindByStatus(status domain.JobStatus) ([]*domain.Job, error) {
	var jobs []*domain.Job
	err := r.db.Where("status = ?", status).Order("title").Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) Update(job *domain.Job) error {
	return r.db.Save(job).Error
}

func (r *jobRepository) UpdateStatus(id string, status domain.JobStatus) error {
	result := r.db.Model(&domain.Job{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&domain.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) RestoreAllArchived() error {
	return r.db.Model(&domain.Job{}).
		Where("status = ?", domain.JobArchived).
		Update("status", domain.JobActive).Error
}

func (r *jobRepository) DeleteAllArchived() error {
	return r.db.Where("status = ?", domain.JobArchived).Delete(&domain.Job{}).Error
}
