package repository

import (
	"errors"

	"go-boutique-pos/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindAll() ([]model.Role, error)
	FindByID(id uint) (*model.Role, error)
	FindByCode(code string) (*model.Role, error)
	Create(role *model.Role) error
	SeedDefaults() error
}

type roleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) FindAll() ([]model.Role, error) {
	var roles []model.Role
	err := r.db.Preload("Privileges").Find(&roles).Error
	return roles, err
}

func (r *roleRepo) FindByID(id uint) (*model.Role, error) {
	var role model.Role
	if err := r.db.Preload("Privileges").First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) FindByCode(code string) (*model.Role, error) {
	var role model.Role
	if err := r.db.Preload("Privileges").Where("code = ?", code).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) Create(role *model.Role) error {
	return r.db.Create(role).Error
}

// SeedDefaults creates the default roles if they don't exist
func (r *roleRepo) SeedDefaults() error {
	for _, defaultRole := range model.DefaultRoles {
		var existing model.Role
		err := r.db.Where("code = ?", defaultRole.Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.Create(&defaultRole).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
