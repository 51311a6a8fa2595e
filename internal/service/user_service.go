package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go-boutique-pos/internal/model"
	"go-boutique-pos/internal/repository"
	"go-boutique-pos/pkg/validator"
)

var (
	ErrEmailTaken   = errors.New("email is already registered")
	ErrRoleNotFound = errors.New("role not found")
)

type UserService interface {
	CreateUser(req *CreateUserRequest, createdBy string) (*model.User, error)
	UpdateUser(id uuid.UUID, req *UpdateUserRequest, updatedBy string) (*model.User, error)
	UpdateUserPrivileges(id uuid.UUID, privilegeCodes []string) (*model.User, error)
	DeleteUser(id uuid.UUID) error
	GetAllUsers() ([]model.User, error)
	GetUserByID(id uuid.UUID) (*model.User, error)
}

type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number"`
	RoleID      *uint  `json:"role_id"`
}

type UpdateUserRequest struct {
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password" validate:"omitempty,min=6"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	RoleID      *uint  `json:"role_id"`
	IsActive    *bool  `json:"is_active"`
}

type userService struct {
	userRepo      repository.UserRepository
	roleRepo      repository.RoleRepository
	privilegeRepo repository.PrivilegeRepository
	log           *logrus.Entry
}

func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, privilegeRepo repository.PrivilegeRepository, log *logrus.Entry) UserService {
	return &userService{
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		privilegeRepo: privilegeRepo,
		log:           log,
	}
}

func (s *userService) CreateUser(req *CreateUserRequest, createdBy string) (*model.User, error) {
	// 1. Validate the request
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	// 2. Make sure the email is free
	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	// 3. Resolve the role; its privileges become the user's starting set
	var role *model.Role
	if req.RoleID != nil {
		var err error
		role, err = s.roleRepo.FindByID(*req.RoleID)
		if err != nil {
			return nil, ErrRoleNotFound
		}
	}

	user := &model.User{
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		RoleID:      req.RoleID,
		IsActive:    true,
	}
	user.CreatedBy = createdBy
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}
	if role != nil {
		user.Privileges = role.Privileges
	}

	// 4. Persist and reload with associations
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.log.WithField("email", user.Email).Info("user created")
	return s.userRepo.FindByID(user.ID)
}

func (s *userService) UpdateUser(id uuid.UUID, req *UpdateUserRequest, updatedBy string) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Email != "" && req.Email != user.Email {
		if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
			return nil, ErrEmailTaken
		}
		user.Email = req.Email
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}

	// Changing the role resets the privilege set to the new role's defaults.
	if req.RoleID != nil && (user.RoleID == nil || *req.RoleID != *user.RoleID) {
		role, err := s.roleRepo.FindByID(*req.RoleID)
		if err != nil {
			return nil, ErrRoleNotFound
		}
		user.RoleID = req.RoleID
		if err := s.userRepo.UpdatePrivileges(user.ID, role.Privileges); err != nil {
			return nil, err
		}
	}

	user.UpdatedBy = updatedBy
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return s.userRepo.FindByID(user.ID)
}

func (s *userService) UpdateUserPrivileges(id uuid.UUID, privilegeCodes []string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	privileges, err := s.privilegeRepo.FindByCodes(privilegeCodes)
	if err != nil {
		return nil, err
	}
	if len(privileges) != len(privilegeCodes) {
		return nil, errors.New("one or more privilege codes are unknown")
	}

	if err := s.userRepo.UpdatePrivileges(user.ID, privileges); err != nil {
		return nil, err
	}

	return s.userRepo.FindByID(user.ID)
}

func (s *userService) DeleteUser(id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(id)
}

func (s *userService) GetAllUsers() ([]model.User, error) {
	return s.userRepo.FindAll()
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
