package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"motoparts/internal/models"
	"motoparts/internal/repositories"
)

// AuthService handles accounts, password checks and token issuing.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService. A zero ttl means 24 hours.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, ttl time.Duration, logger *zap.Logger) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  ttl,
		logger:    logger,
	}
}

// RegisterUser creates a customer account with a bcrypt-hashed password.
func (s *AuthService) RegisterUser(in models.RegisterInput) (*models.Account, error) {
	return s.createAccount(in.Name, in.Email, in.Phone, in.Password, models.RoleUser, "local")
}

// CreateAdmin creates an admin account.
func (s *AuthService) CreateAdmin(in models.AdminInput) (*models.Account, error) {
	return s.createAccount(in.Name, in.Email, "", in.Password, models.RoleAdmin, "local")
}

// SeedAccount creates an account unless the email is already registered.
func (s *AuthService) SeedAccount(name, email, password string, role models.Role) error {
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil
	}
	_, err := s.createAccount(name, email, "", password, role, "local")
	return err
}

func (s *AuthService) createAccount(name, email, phone, password string, role models.Role, provider string) (*models.Account, error) {
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, fmt.Errorf("email '%s' %w", email, repositories.ErrDuplicate)
	}

	account := &models.Account{
		Name:     name,
		Email:    strings.ToLower(email),
		Phone:    phone,
		Role:     role,
		Provider: provider,
	}
	if password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		account.Password = string(hashedPassword)
	}

	if err := s.userRepo.Create(account); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return account, nil
}

// LoginUser checks the password and returns a session with a fresh token.
func (s *AuthService) LoginUser(email, password string) (*models.AuthSession, error) {
	account, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if account.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.session(account)
}

// GoogleLogin signs in with a Google ID token. The sandbox trusts the
// token's email and name claims without verifying the signature; a first
// login creates the account.
func (s *AuthService) GoogleLogin(credential string) (*models.AuthSession, error) {
	token, _, err := new(jwt.Parser).ParseUnverified(credential, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	claims, _ := token.Claims.(jwt.MapClaims)
	email, _ := claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: credential has no email", ErrInvalidCredentials)
	}
	name, _ := claims["name"].(string)
	if name == "" {
		name = strings.Split(email, "@")[0]
	}

	account, err := s.userRepo.GetByEmail(email)
	if errors.Is(err, repositories.ErrNotFound) {
		account, err = s.createAccount(name, email, "", "", models.RoleUser, "google")
	}
	if err != nil {
		return nil, err
	}
	return s.session(account)
}

func (s *AuthService) session(account *models.Account) (*models.AuthSession, error) {
	token, err := s.IssueToken(account)
	if err != nil {
		return nil, err
	}
	user := account.SessionUser()
	return &models.AuthSession{User: &user, AccessToken: token}, nil
}

// IssueToken signs an HS256 token carrying the account id, name and role.
func (s *AuthService) IssueToken(account *models.Account) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": account.ID,
		"name":    account.Name,
		"email":   account.Email,
		"role":    string(account.Role),
		"exp":     now.Add(s.tokenTTL).Unix(),
		"iat":     now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		s.logger.Debug("token validation failed", zap.Error(err))
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// UserFromClaims rebuilds the session user carried by a validated token.
func UserFromClaims(claims jwt.MapClaims) *models.User {
	str := func(k string) string {
		v, _ := claims[k].(string)
		return v
	}
	return &models.User{
		ID:    str("user_id"),
		Name:  str("name"),
		Email: str("email"),
		Role:  models.Role(str("role")),
	}
}

// ListUsers returns every account.
func (s *AuthService) ListUsers() ([]models.UserRecord, error) {
	accounts, err := s.userRepo.GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.UserRecord, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Record())
	}
	return out, nil
}

// GetUser returns one account.
func (s *AuthService) GetUser(id string) (*models.UserRecord, error) {
	account, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	rec := account.Record()
	return &rec, nil
}

// UpdateUser applies the non-nil fields of upd.
func (s *AuthService) UpdateUser(id string, upd models.UserUpdate) (*models.UserRecord, error) {
	account, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		account.Name = *upd.Name
	}
	if upd.Email != nil && !strings.EqualFold(*upd.Email, account.Email) {
		if other, err := s.userRepo.GetByEmail(*upd.Email); err == nil && other.ID != account.ID {
			return nil, fmt.Errorf("email '%s' %w", *upd.Email, repositories.ErrDuplicate)
		}
		account.Email = *upd.Email
	}
	if upd.Role != nil {
		account.Role = *upd.Role
	}
	if upd.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		account.Password = string(hashedPassword)
	}
	if err := s.userRepo.Update(account); err != nil {
		return nil, err
	}
	rec := account.Record()
	return &rec, nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *AuthService) DeleteUser(actorID, id string) error {
	if actorID == id {
		return fmt.Errorf("%w: you cannot delete your own account", ErrInvalidInput)
	}
	return s.userRepo.Delete(id)
}
