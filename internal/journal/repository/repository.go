package repository

import "learnlog-backend/internal/journal/domain"

// DailyLogRepository defines the interface for daily-log data access
type DailyLogRepository interface {
	// Create inserts a new daily log. Returns apperr.ErrDuplicateLog when the
	// (user_id, log_date) unique constraint is violated.
	Create(log *domain.DailyLog) error

	// FindByUserAndDate returns the log for one (user, date), nil if none exists
	FindByUserAndDate(userID, logDate string) (*domain.DailyLog, error)

	// FindByUserInRange returns logs with start <= log_date <= end, oldest first
	FindByUserInRange(userID, startDate, endDate string) ([]*domain.DailyLog, error)

	// ListByUser returns logs newest-first with pagination
	ListByUser(userID string, skip, limit int) ([]*domain.DailyLog, error)

	// FindRecentByUser returns the most recent logs by date, newest first
	FindRecentByUser(userID string, limit int) ([]*domain.DailyLog, error)

	// Update persists changes to an existing log
	Update(log *domain.DailyLog) error

	// UpdateIndexStatus records the outcome of the vector upsert for a log
	UpdateIndexStatus(id string, status domain.IndexStatus) error

	// FindByIndexStatus returns logs whose vector point still needs work,
	// oldest first, for the index reconciler
	FindByIndexStatus(statuses []domain.IndexStatus, limit int) ([]*domain.DailyLog, error)
}
