package service

import (
	"balance_game_backend/internal/game"
	"balance_game_backend/internal/model"
	"balance_game_backend/internal/repository"
	"balance_game_backend/internal/util"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetUser(id string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", id, err)
	}
	return user, nil
}

// GetProgress returns the progress of user id. Players may only read their
// own progress; teachers may read anyone's.
func (s *UserService) GetProgress(requester *util.Claims, id string) (*model.ProgressView, error) {
	if requester == nil || (requester.UserID != id && requester.Role != model.Teacher) {
		return nil, util.ErrPermissionDenied
	}

	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	view := user.ProgressView()
	return &view, nil
}

// CreateUser stores a profile record without credentials, for principals
// authenticated elsewhere. Progress always starts fresh.
func (s *UserService) CreateUser(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user.Password = ""
	user.SetProgress(game.NewProgress())
	return s.UserRepo.Create(user)
}

// ListStudents returns every student's progress, best first.
func (s *UserService) ListStudents() ([]model.ProgressView, error) {
	users, err := s.UserRepo.FindByRole(model.Student)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	views := make([]model.ProgressView, 0, len(users))
	for i := range users {
		views = append(views, users[i].ProgressView())
	}
	return views, nil
}
