package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"esg_assessment_backend/internal/model"
	"esg_assessment_backend/internal/repository"

	"github.com/google/uuid"
)

type EventService struct {
	Repo    *repository.EventRepository
	Storage *StorageService
}

func NewEventService(repo *repository.EventRepository, storage *StorageService) *EventService {
	return &EventService{Repo: repo, Storage: storage}
}

type EventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartAt     time.Time  `json:"startAt" binding:"required"`
	EndAt       *time.Time `json:"endAt"`
	IsPublished bool       `json:"isPublished"`
}

func (s *EventService) Create(req EventRequest) (*model.Event, error) {
	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		IsPublished: req.IsPublished,
	}
	if err := s.Repo.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Get(id uint) (*model.Event, error) {
	return s.Repo.FindByID(id)
}

func (s *EventService) List(page, limit int, publishedOnly bool) ([]model.Event, int64, error) {
	return s.Repo.List(page, limit, publishedOnly)
}

func (s *EventService) Update(id uint, req EventRequest) (*model.Event, error) {
	event, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Location = req.Location
	event.StartAt = req.StartAt
	event.EndAt = req.EndAt
	event.IsPublished = req.IsPublished

	if err := s.Repo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Delete(id uint) error {
	return s.Repo.Delete(id)
}

// UploadBanner stores the banner image and attaches its URL to the event.
func (s *EventService) UploadBanner(ctx context.Context, id uint, header *multipart.FileHeader) (*model.Event, error) {
	event, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	filename := fmt.Sprintf("events/%s%s", uuid.New().String(), filepath.Ext(header.Filename))
	url, err := s.Storage.Upload(ctx, filename, src, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	event.BannerURL = url
	if err := s.Repo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}
