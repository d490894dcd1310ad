package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"esg_assessment_backend/internal/model"
	"esg_assessment_backend/internal/repository"
	"esg_assessment_backend/internal/util"

	"github.com/google/uuid"
)

type MaterialService struct {
	Repo    *repository.MaterialRepository
	Storage *StorageService
}

func NewMaterialService(repo *repository.MaterialRepository, storage *StorageService) *MaterialService {
	return &MaterialService{Repo: repo, Storage: storage}
}

type MaterialRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required,oneof=pdf video link"`
	FileURL     string `json:"fileUrl"`
	Language    string `json:"language"`
	IsPublished bool   `json:"isPublished"`
}

func (s *MaterialService) Create(req MaterialRequest, uploaderID uint) (*model.LearningMaterial, error) {
	material := &model.LearningMaterial{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		FileURL:     req.FileURL,
		Language:    req.Language,
		IsPublished: req.IsPublished,
		UploaderID:  uploaderID,
	}
	if material.Language == "" {
		material.Language = util.LanguageEnglish
	}
	if err := s.Repo.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) Get(id uint) (*model.LearningMaterial, error) {
	return s.Repo.FindByID(id)
}

func (s *MaterialService) List(page, limit int, materialType string, publishedOnly bool) ([]model.LearningMaterial, int64, error) {
	return s.Repo.List(page, limit, materialType, publishedOnly)
}

func (s *MaterialService) Update(id uint, req MaterialRequest) (*model.LearningMaterial, error) {
	material, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	material.Title = req.Title
	material.Description = req.Description
	material.Type = req.Type
	if req.FileURL != "" {
		material.FileURL = req.FileURL
	}
	if req.Language != "" {
		material.Language = req.Language
	}
	material.IsPublished = req.IsPublished

	if err := s.Repo.Update(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) Delete(id uint) error {
	return s.Repo.Delete(id)
}

// UploadFile stores the material file and attaches its URL. Link-type
// materials never go through here.
func (s *MaterialService) UploadFile(ctx context.Context, id uint, header *multipart.FileHeader) (*model.LearningMaterial, error) {
	material, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	filename := fmt.Sprintf("materials/%s%s", uuid.New().String(), filepath.Ext(header.Filename))
	url, err := s.Storage.Upload(ctx, filename, src, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	material.FileURL = url
	if err := s.Repo.Update(material); err != nil {
		return nil, err
	}
	return material, nil
}
