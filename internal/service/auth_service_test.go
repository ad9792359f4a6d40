package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/security"
	"boardinghouse-backend/internal/service"
)

func testTokenManager() security.TokenManager {
	return security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
}

func testUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return domain.NewUser("admin@example.com", "Admin", string(hash), domain.UserRoleAdmin)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, new(MockBoarderRepo), testTokenManager())

		user := testUser(t, "correct horse")
		userRepo.On("GetByEmail", ctx, "admin@example.com").Return(user, nil)

		token, loggedIn, err := svc.Login(ctx, "Admin@Example.com", "correct horse")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user.ID, loggedIn.ID)

		claims, err := testTokenManager().ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.SubjectID)
		assert.Equal(t, string(domain.UserRoleAdmin), claims.Role)
	})

	t.Run("Wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, new(MockBoarderRepo), testTokenManager())

		user := testUser(t, "correct horse")
		userRepo.On("GetByEmail", ctx, "admin@example.com").Return(user, nil)

		_, _, err := svc.Login(ctx, "admin@example.com", "battery staple")
		assert.Error(t, err)
	})

	t.Run("Unknown email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, new(MockBoarderRepo), testTokenManager())

		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.NewNotFoundError("user", "ghost@example.com"))

		_, _, err := svc.Login(ctx, "ghost@example.com", "whatever")
		assert.Error(t, err)
	})
}

func TestLoginWithAccessCode(t *testing.T) {
	ctx := context.Background()

	t.Run("Success normalizes the code", func(t *testing.T) {
		boarderRepo := new(MockBoarderRepo)
		svc := service.NewAuthService(new(MockUserRepo), boarderRepo, testTokenManager())

		boarder := testBoarder(t)
		boarderRepo.On("GetByAccessCode", ctx, boarder.AccessCode).Return(boarder, nil)

		token, loggedIn, err := svc.LoginWithAccessCode(ctx, "  "+boarder.AccessCode+" ")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, boarder.ID, loggedIn.ID)

		claims, err := testTokenManager().ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, string(domain.UserRoleBoarder), claims.Role)
	})

	t.Run("Inactive boarder is rejected", func(t *testing.T) {
		boarderRepo := new(MockBoarderRepo)
		svc := service.NewAuthService(new(MockUserRepo), boarderRepo, testTokenManager())

		boarder := testBoarder(t)
		boarder.Deactivate(nil)
		boarder.DrainEvents()
		boarderRepo.On("GetByAccessCode", ctx, boarder.AccessCode).Return(boarder, nil)

		_, _, err := svc.LoginWithAccessCode(ctx, boarder.AccessCode)
		assert.Error(t, err)
	})

	t.Run("Empty code", func(t *testing.T) {
		svc := service.NewAuthService(new(MockUserRepo), new(MockBoarderRepo), testTokenManager())

		_, _, err := svc.LoginWithAccessCode(ctx, "   ")

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestCreateStaffUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success hashes the password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, new(MockBoarderRepo), testTokenManager())

		userRepo.On("GetByEmail", ctx, "staff@example.com").Return(nil, domain.NewNotFoundError("user", "staff@example.com"))
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := svc.CreateStaffUser(ctx, "staff@example.com", "Staff", "longenough", domain.UserRoleStaff)
		assert.NoError(t, err)
		assert.NotEqual(t, "longenough", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longenough")))
	})

	t.Run("Boarder role is rejected", func(t *testing.T) {
		svc := service.NewAuthService(new(MockUserRepo), new(MockBoarderRepo), testTokenManager())

		_, err := svc.CreateStaffUser(ctx, "x@example.com", "X", "longenough", domain.UserRoleBoarder)

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("Short password is rejected", func(t *testing.T) {
		svc := service.NewAuthService(new(MockUserRepo), new(MockBoarderRepo), testTokenManager())

		_, err := svc.CreateStaffUser(ctx, "x@example.com", "X", "short", domain.UserRoleStaff)

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}
