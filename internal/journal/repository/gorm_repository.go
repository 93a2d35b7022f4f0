package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnlog-backend/internal/journal/domain"
	"learnlog-backend/pkg/apperr"
)

// gormDailyLogRepository implements DailyLogRepository using GORM
type gormDailyLogRepository struct {
	db *gorm.DB
}

// NewGormDailyLogRepository creates a new GORM-based DailyLogRepository
func NewGormDailyLogRepository(db *gorm.DB) DailyLogRepository {
	return &gormDailyLogRepository{db: db}
}

func (r *gormDailyLogRepository) Create(log *domain.DailyLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	log.CreatedAt = time.Now()
	log.UpdatedAt = time.Now()

	if err := r.db.Create(log).Error; err != nil {
		// The unique constraint on (user_id, log_date) is the authoritative
		// duplicate check; a pre-read can always lose a race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.ErrDuplicateLog
		}
		return err
	}
	return nil
}

func (r *gormDailyLogRepository) FindByUserAndDate(userID, logDate string) (*domain.DailyLog, error) {
	var log domain.DailyLog
	err := r.db.Where("user_id = ? AND log_date = ?", userID, logDate).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

func (r *gormDailyLogRepository) FindByUserInRange(userID, startDate, endDate string) ([]*domain.DailyLog, error) {
	var logs []*domain.DailyLog
	err := r.db.Where("user_id = ? AND log_date >= ? AND log_date <= ?", userID, startDate, endDate).
		Order("log_date ASC").
		Find(&logs).Error
	return logs, err
}

func (r *gormDailyLogRepository) ListByUser(userID string, skip, limit int) ([]*domain.DailyLog, error) {
	var logs []*domain.DailyLog
	err := r.db.Where("user_id = ?", userID).
		Order("log_date DESC").
		Offset(skip).
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *gormDailyLogRepository) FindRecentByUser(userID string, limit int) ([]*domain.DailyLog, error) {
	var logs []*domain.DailyLog
	err := r.db.Where("user_id = ?", userID).
		Order("log_date DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *gormDailyLogRepository) Update(log *domain.DailyLog) error {
	log.UpdatedAt = time.Now()
	return r.db.Save(log).Error
}

func (r *gormDailyLogRepository) UpdateIndexStatus(id string, status domain.IndexStatus) error {
	return r.db.Model(&domain.DailyLog{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"index_status": status,
			"updated_at":   time.Now(),
		}).Error
}

func (r *gormDailyLogRepository) FindByIndexStatus(statuses []domain.IndexStatus, limit int) ([]*domain.DailyLog, error) {
	var logs []*domain.DailyLog
	err := r.db.Where("index_status IN ?", statuses).
		Order("updated_at ASC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
