package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/logger"
	"boardinghouse-backend/internal/repository"
	"boardinghouse-backend/internal/security"
)

type authService struct {
	userRepo    repository.UserRepository
	boarderRepo repository.BoarderRepository
	tokens      security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, boarderRepo repository.BoarderRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo:    userRepo,
		boarderRepo: boarderRepo,
		tokens:      tokens,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, domain.NewConflictError("invalid email or password")
	}
	if !user.IsActive {
		return "", nil, domain.NewConflictError("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.NewConflictError("invalid email or password")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", nil, err
	}

	logger.Info("staff login", "user_id", user.ID, "role", user.Role)
	return token, user, nil
}

func (s *authService) LoginWithAccessCode(ctx context.Context, accessCode string) (string, *domain.Boarder, error) {
	accessCode = strings.ToUpper(strings.TrimSpace(accessCode))
	if accessCode == "" {
		return "", nil, domain.NewValidationError("access code is required")
	}

	boarder, err := s.boarderRepo.GetByAccessCode(ctx, accessCode)
	if err != nil {
		return "", nil, domain.NewConflictError("invalid access code")
	}
	if !boarder.IsActive {
		return "", nil, domain.NewConflictError("boarder account is inactive")
	}

	token, err := s.tokens.GenerateAccessToken(boarder.ID, boarder.Email, string(domain.UserRoleBoarder))
	if err != nil {
		return "", nil, err
	}

	logger.Info("boarder login", "boarder_id", boarder.ID)
	return token, boarder, nil
}

func (s *authService) CreateStaffUser(ctx context.Context, email, name, password string, role domain.UserRole) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var violations []string
	if email == "" {
		violations = append(violations, "email is required")
	}
	if strings.TrimSpace(name) == "" {
		violations = append(violations, "name is required")
	}
	if len(password) < 8 {
		violations = append(violations, "password must be at least 8 characters")
	}
	if !role.Valid() || role == domain.UserRoleBoarder {
		violations = append(violations, "role must be ADMIN or STAFF")
	}
	if len(violations) > 0 {
		return nil, domain.NewValidationError(violations...)
	}

	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.NewConflictError("email %s is already registered", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(email, name, string(hash), role)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("staff user created", "user_id", user.ID, "role", user.Role)
	return user, nil
}
