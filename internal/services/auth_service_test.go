package services_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"motoparts/internal/models"
	"motoparts/internal/repositories"
	"motoparts/internal/services"
)

const testJWTSecret = "test_jwt_secret"

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(account *models.Account) error {
	args := m.Called(account)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll() ([]models.Account, error) {
	args := m.Called()
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.Account, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.Account, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockUserRepository) Update(account *models.Account) error {
	args := m.Called(account)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, repositories.ErrNotFound)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)

	in := models.RegisterInput{Name: "Jane Rider", Email: "Jane@Example.com", Password: "password123"}

	mockRepo.On("GetByEmail", in.Email).Return(nil, notFound("user")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Account")).Return(nil).Once()

	account, err := authService.RegisterUser(in)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", account.Email)
	assert.Equal(t, models.RoleUser, account.Role)
	assert.Equal(t, "local", account.Provider)
	assert.NotEqual(t, in.Password, account.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(in.Password)))
	mockRepo.AssertExpectations(t)

	// Email already registered
	mockRepo.On("GetByEmail", in.Email).Return(&models.Account{ID: "1"}, nil).Once()
	_, err = authService.RegisterUser(in)
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
	assert.Contains(t, err.Error(), "email 'Jane@Example.com'")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_CreateAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)

	mockRepo.On("GetByEmail", "ops@example.com").Return(nil, notFound("user")).Once()
	mockRepo.On("Create", mock.MatchedBy(func(a *models.Account) bool {
		return a.Role == models.RoleAdmin
	})).Return(nil).Once()

	account, err := authService.CreateAdmin(models.AdminInput{Name: "Ops", Email: "ops@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, account.Role)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)

	account := &models.Account{
		ID:       "user-123",
		Name:     "Jane Rider",
		Email:    "test@example.com",
		Password: hashed(t, "password123"),
		Role:     models.RoleUser,
	}

	mockRepo.On("GetByEmail", account.Email).Return(account, nil).Once()
	session, err := authService.LoginUser(account.Email, "password123")
	require.NoError(t, err)
	require.NotNil(t, session.User)
	assert.Equal(t, "user-123", session.User.ID)
	assert.NotEmpty(t, session.AccessToken)

	parsedToken, err := jwt.Parse(session.AccessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, account.ID, claims["user_id"])
	assert.Equal(t, account.Name, claims["name"])
	assert.Equal(t, "user", claims["role"])
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByEmail", account.Email).Return(account, nil).Once()
	_, err = authService.LoginUser(account.Email, "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown user gets the same generic error
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, notFound("user")).Once()
	_, err = authService.LoginUser("nobody@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Google accounts have no password
	google := &models.Account{ID: "g-1", Email: "g@example.com", Provider: "google"}
	mockRepo.On("GetByEmail", google.Email).Return(google, nil).Once()
	_, err = authService.LoginUser(google.Email, "")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func googleCredential(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("google-signs-this"))
	require.NoError(t, err)
	return token
}

func TestAuthService_GoogleLogin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)

	credential := googleCredential(t, jwt.MapClaims{"email": "rider@gmail.com"})

	// First login creates the account.
	mockRepo.On("GetByEmail", "rider@gmail.com").Return(nil, notFound("user")).Twice()
	mockRepo.On("Create", mock.MatchedBy(func(a *models.Account) bool {
		return a.Provider == "google" && a.Name == "rider" && a.Password == ""
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Account).ID = "g-1"
	}).Return(nil).Once()

	session, err := authService.GoogleLogin(credential)
	require.NoError(t, err)
	assert.Equal(t, "g-1", session.User.ID)
	assert.Equal(t, "rider", session.User.Name)
	mockRepo.AssertExpectations(t)

	// A credential without an email is rejected.
	_, err = authService.GoogleLogin(googleCredential(t, jwt.MapClaims{"name": "x"}))
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = authService.GoogleLogin("not-a-jwt")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)

	token, err := authService.IssueToken(&models.Account{ID: "user-123", Name: "Jane", Email: "j@example.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	user := services.UserFromClaims(claims)
	assert.Equal(t, &models.User{ID: "user-123", Name: "Jane", Email: "j@example.com", Role: models.RoleAdmin}, user)

	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expired.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	otherSecret := services.NewAuthService(mockRepo, "another_secret", time.Hour, nil)
	_, err = otherSecret.ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthService_UpdateUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)

	account := &models.Account{ID: "u-1", Name: "Old", Email: "old@example.com", Role: models.RoleUser}
	name := "New Name"
	role := models.RoleAdmin

	mockRepo.On("GetByID", "u-1").Return(account, nil).Once()
	mockRepo.On("Update", account).Return(nil).Once()
	rec, err := authService.UpdateUser("u-1", models.UserUpdate{Name: &name, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "New Name", rec.Name)
	assert.Equal(t, models.RoleAdmin, rec.Role)
	assert.Equal(t, "old@example.com", rec.Email)
	mockRepo.AssertExpectations(t)

	// Taking someone else's email is a conflict.
	taken := "taken@example.com"
	mockRepo.On("GetByID", "u-1").Return(account, nil).Once()
	mockRepo.On("GetByEmail", taken).Return(&models.Account{ID: "u-2"}, nil).Once()
	_, err = authService.UpdateUser("u-1", models.UserUpdate{Email: &taken})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_DeleteUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)

	err := authService.DeleteUser("admin-1", "admin-1")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	mockRepo.On("Delete", "u-2").Return(nil).Once()
	assert.NoError(t, authService.DeleteUser("admin-1", "u-2"))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ListUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)

	mockRepo.On("GetAll").Return([]models.Account{
		{ID: "1", Name: "A", Email: "a@example.com", Password: "hash", Role: models.RoleAdmin},
		{ID: "2", Name: "B", Email: "b@example.com", Role: models.RoleUser},
	}, nil).Once()

	users, err := authService.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "1", users[0].ID)
	assert.False(t, strings.Contains(fmt.Sprintf("%+v", users), "hash"))
	mockRepo.AssertExpectations(t)
}
