package service

import (
	"errors"

	"esg_assessment_backend/internal/model"
	"esg_assessment_backend/internal/repository"
	"esg_assessment_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

type ProfileUpdate struct {
	Name                  string `json:"name"`
	CompanyName           string `json:"companyName"`
	CompanyRegistrationNo string `json:"companyRegistrationNo"`
	Sector                string `json:"sector"`
	Language              string `json:"language"`
	Avatar                string `json:"avatar"`
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.CompanyName != "" {
		user.CompanyName = update.CompanyName
	}
	if update.CompanyRegistrationNo != "" {
		user.CompanyRegistrationNo = update.CompanyRegistrationNo
	}
	if update.Sector != "" {
		user.Sector = update.Sector
	}
	if update.Language == util.LanguageEnglish || update.Language == util.LanguageMalay {
		user.Language = update.Language
	}
	if update.Avatar != "" {
		user.Avatar = update.Avatar
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return util.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.UserRepo.Update(user)
}

func (s *UserService) ListUsers(page, limit int, role, search string) ([]model.User, int64, error) {
	return s.UserRepo.List(page, limit, role, search)
}

func (s *UserService) SetDisabled(userID uint, disabled bool) error {
	if _, err := s.GetProfile(userID); err != nil {
		return err
	}
	return s.UserRepo.SetDisabled(userID, disabled)
}
