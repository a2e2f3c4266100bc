// Package publisher содержит бизнес-логику справочника издателей.
package publisher

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/headliner-backend/internal/models"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

// Repository определяет методы для работы с издателями в хранилище.
type Repository interface {
	CreatePublisher(ctx context.Context, p models.Publisher) (string, error)
	ListPublishers(ctx context.Context) ([]*models.Publisher, error)
	UpdatePublisher(ctx context.Context, id string, p models.DummyPublisher) (int, error)
	DeletePublisher(ctx context.Context, id string) (int, error)
}

// Service реализует бизнес-логику справочника издателей.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create добавляет издателя в справочник.
func (s *Service) Create(ctx context.Context, req models.DummyPublisher) (string, error) {
	id, err := s.repo.CreatePublisher(ctx, models.Publisher{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		return "", err
	}
	s.log.Info("created publisher", slog.String("id", id), slog.String("name", req.Name))
	return id, nil
}

// List возвращает всех издателей.
func (s *Service) List(ctx context.Context) ([]*models.Publisher, error) {
	return s.repo.ListPublishers(ctx)
}

// Update обновляет имя и изображение издателя.
func (s *Service) Update(ctx context.Context, id string, req models.DummyPublisher) error {
	count, err := s.repo.UpdatePublisher(ctx, id, req)
	if err != nil {
		return err
	}
	if count == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Delete удаляет издателя из справочника.
func (s *Service) Delete(ctx context.Context, id string) error {
	count, err := s.repo.DeletePublisher(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return storage.ErrNotFound
	}
	s.log.Info("deleted publisher", slog.String("id", id))
	return nil
}
