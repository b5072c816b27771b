package repository

import (
	"balance_game_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProgress loads the user, lets apply change it and saves it, all in
// one transaction. On MySQL the row is locked for the duration so
// concurrent submissions for one user serialize.
func (r *UserRepository) UpdateProgress(id string, apply func(user *model.User)) (*model.User, error) {
	var user model.User
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "mysql" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}

		apply(&user)

		return tx.Model(&user).Select("xp", "level", "accuracy", "total_attempts", "correct_attempts").Updates(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByRole lists users with the given role, best progress first.
func (r *UserRepository) FindByRole(role model.UserRole) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("role = ?", role).
		Order("xp DESC").
		Order("name ASC").
		Find(&users).Error
	return users, err
}
