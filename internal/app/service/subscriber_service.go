package service

import (
	"fmt"

	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/internal/app/repository"
	"github.com/flavr-travel/flavr-backend/internal/cache"
	"github.com/flavr-travel/flavr-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// SubscriberService exposes the newsletter audience to the dashboard. The
// public site writes the rows; the dashboard only lists and exports them.
type SubscriberService interface {
	List() []model.NewsletterSubscriber
	Count() (int64, error)
	ExportXLSX() (*excelize.File, error)
}

type subscriberService struct {
	repo  repository.SubscriberRepository
	store *cache.Store
}

func NewSubscriberService(repo repository.SubscriberRepository, store *cache.Store) SubscriberService {
	return &subscriberService{repo: repo, store: store}
}

func (s *subscriberService) List() []model.NewsletterSubscriber {
	return s.store.Subscribers()
}

func (s *subscriberService) Count() (int64, error) {
	return s.repo.Count()
}

// ExportXLSX builds a spreadsheet of every subscriber, newest first, straight
// from the database so an export never reflects a stale store.
func (s *subscriberService) ExportXLSX() (*excelize.File, error) {
	subscribers, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"Email", "Subscribed At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, sub := range subscribers {
		row := i + 2
		emailCell, _ := excelize.CoordinatesToCellName(1, row)
		dateCell, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellValue(sheet, emailCell, sub.Email); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
		if err := f.SetCellValue(sheet, dateCell, sub.CreatedAt.Format("2006-01-02 15:04:05")); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	logger.Info("Built subscriber export", map[string]interface{}{
		"count": len(subscribers),
	})
	return f, nil
}
