package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/teachreach/marketplace/internal/core/domain"
	"github.com/teachreach/marketplace/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo       ports.UserRepository
	jwtSecret  string
	tokenTTL   time.Duration
	adminEmail string
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, adminEmail string) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:       repo,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
	}
}

// Register creates an account and returns a token for it. The requested role
// is ignored: only the designated admin email is granted the admin role.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	email := normalizeEmail(in.Email)
	if strings.TrimSpace(in.Name) == "" || in.Password == "" || email == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !validEmail(email) {
		return "", nil, domain.ErrInvalidCredentials
	}

	role := domain.RoleClient
	if s.adminEmail != "" && email == s.adminEmail {
		role = domain.RoleAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

var validate = validator.New()

// validEmail accepts a bare address only, never a display-name form.
func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
