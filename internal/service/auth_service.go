package service

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/hireflow/hireflow-backend/internal/common"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/repository"
	"github.com/hireflow/hireflow-backend/pkg/jwt"
)

// AuthService authenticates staff members and manages their accounts.
// Candidates never authenticate; the public portal identifies them by
// lookup only.
type AuthService interface {
	Login(req *domain.LoginRequest) (*domain.LoginResponse, error)

	ListUsers() ([]*domain.User, error)
	CreateUser(actor Actor, req *domain.UserRequest, role domain.UserRole) (*domain.User, error)
	UpdateUser(actor Actor, id uint, req *domain.UserRequest) (*domain.User, error)
	ToggleAdmin(actor Actor, id uint) (*domain.User, error)
	DeleteUser(actor Actor, id uint) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtManager *jwt.Manager
	history    HistoryService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtManager *jwt.Manager, history HistoryService) AuthService {
	return &authService{userRepo: userRepo, jwtManager: jwtManager, history: history}
}

// Login verifies credentials and issues a session token. A wrong username
// and a wrong password return the same error.
func (s *authService) Login(req *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		return nil, common.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.jwtManager.IssueToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &domain.LoginResponse{Token: token, User: user}, nil
}

func (s *authService) ListUsers() ([]*domain.User, error) {
	return s.userRepo.FindAll()
}

func (s *authService) CreateUser(actor Actor, req *domain.UserRequest, role domain.UserRole) (*domain.User, error) {
	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, common.ErrUserAlreadyExists
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Username:  req.Username,
		Password:  string(hashed),
		Role:      role,
		Specialty: req.Specialty,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	s.history.Log(actor, domain.ActionCreateUser,
		fmt.Sprintf("Created user '%s'.", user.Username))
	return user, nil
}

// UpdateUser edits username and specialty. An empty password leaves the
// current one in place.
func (s *authService) UpdateUser(actor Actor, id uint, req *domain.UserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	user.Username = req.Username
	user.Specialty = req.Specialty
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	s.history.Log(actor, domain.ActionUpdateUser,
		fmt.Sprintf("Updated user '%s'.", user.Username))
	return user, nil
}

func (s *authService) ToggleAdmin(actor Actor, id uint) (*domain.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleAdmin {
		user.Role = domain.RoleUser
	} else {
		user.Role = domain.RoleAdmin
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	s.history.Log(actor, domain.ActionToggleAdmin,
		fmt.Sprintf("Changed the role of '%s' to '%s'.", user.Username, user.Role))
	return user, nil
}

func (s *authService) DeleteUser(actor Actor, id uint) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(id); err != nil {
		return err
	}
	s.history.Log(actor, domain.ActionDeleteUser,
		fmt.Sprintf("Deleted user '%s'.", user.Username))
	return nil
}
