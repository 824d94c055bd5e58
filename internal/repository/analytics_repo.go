package repository

import (
	"time"

	"salessight-api/internal/model"

	"gorm.io/gorm"
)

type AnalyticsRepository interface {
	Create(entry *model.AnalyticsLog) error
	FindRecent(limit int) ([]model.AnalyticsLog, error)
	CountSince(since time.Time) (int64, error)
}

type analyticsRepo struct {
	db *gorm.DB
}

func NewAnalyticsRepo(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepo{db}
}

func (r *analyticsRepo) Create(entry *model.AnalyticsLog) error {
	return r.db.Create(entry).Error
}

func (r *analyticsRepo) FindRecent(limit int) ([]model.AnalyticsLog, error) {
	var entries []model.AnalyticsLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

func (r *analyticsRepo) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.AnalyticsLog{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
