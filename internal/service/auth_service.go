package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go-boutique-pos/internal/model"
	"go-boutique-pos/internal/repository"
	"go-boutique-pos/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	ResetPassword(email, oldPassword, newPassword string) error
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	Heartbeat(userID uuid.UUID) error
}

type LoginResponse struct {
	Token      string             `json:"token"`
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

type TokenValidationResponse struct {
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

type authService struct {
	userRepo repository.UserRepository
	log      *logrus.Entry
}

func NewAuthService(userRepo repository.UserRepository, log *logrus.Entry) AuthService {
	return &authService{
		userRepo: userRepo,
		log:      log,
	}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	roleCode := ""
	if user.Role != nil {
		roleCode = user.Role.Code
	}

	// Single session: a fresh token version invalidates tokens issued to any
	// other register the operator was logged in on.
	now := time.Now()
	user.TokenVersion = uuid.New().String()
	user.LastSeenAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.New("failed to update session")
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName, roleCode, user.GetPrivilegeCodes(), user.TokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	s.log.WithField("email", user.Email).Info("operator logged in")

	return &LoginResponse{
		Token:      token,
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) ResetPassword(email, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}
	if !user.CheckPassword(oldPassword) {
		return ErrInvalidCredentials
	}
	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash password")
	}
	return s.userRepo.UpdatePassword(user.ID, user.Password)
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, jwt.ErrInvalidToken
	}

	return &TokenValidationResponse{
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) Heartbeat(userID uuid.UUID) error {
	return s.userRepo.UpdateLastSeen(userID)
}
