package repository

import (
	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/pkg/logger"
	"gorm.io/gorm"
)

// SubscriberRepository is read-only from the dashboard's perspective:
// subscribers are written by the public site signup form.
type SubscriberRepository interface {
	FindAll() ([]model.NewsletterSubscriber, error)
	Count() (int64, error)
}

type subscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) FindAll() ([]model.NewsletterSubscriber, error) {
	var subscribers []model.NewsletterSubscriber
	if err := r.db.Order("created_at DESC").Find(&subscribers).Error; err != nil {
		logger.Error("Failed to fetch newsletter subscribers", err, nil)
		return nil, err
	}
	return subscribers, nil
}

func (r *subscriberRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.NewsletterSubscriber{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
