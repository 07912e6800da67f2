package auth

import (
	"DentEase/entity"
	"DentEase/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	MaxEmailLength    = 50
	MaxPasswordLength = 30
	MinPasswordLength = 8
)

var (
	ErrUnknownEmail  = errors.New("no account found with that email address")
	ErrWrongPassword = errors.New("the password you entered is incorrect")
	ErrWeakPassword  = fmt.Errorf("password must be %d to %d characters and contain a letter and a digit", MinPasswordLength, MaxPasswordLength)
	ErrInvalidToken  = errors.New("invalid token")
)

type Repository interface {
	GetAdminByEmail(ctx context.Context, email string) (*entity.AdminAccount, error)
	SaveAdmin(ctx context.Context, account *entity.AdminAccount) error
}

type Service struct {
	repository Repository
	secret     []byte
	ttl        time.Duration
	now        func() time.Time
	log        *slog.Logger
}

func NewAuthService(secret string, ttl time.Duration, logger *slog.Logger) *Service {
	log := logger.With(sl.Module("auth-service"))
	if secret == "" {
		// sessions will not survive a restart
		secret = uuid.NewString()
		log.Warn("jwt secret not configured, using a random one")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		log:    log,
	}
}

func (s *Service) SetRepository(repository Repository) {
	s.repository = repository
}

// NormalizeEmail removes all whitespace and lowercases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.Join(strings.Fields(email), ""))
}

// Login checks the credentials and returns a signed session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *entity.AdminAuth, error) {
	account, err := s.account(ctx, NormalizeEmail(email))
	if err != nil {
		return "", nil, err
	}
	if err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.log.Debug("login rejected", slog.String("email", account.Email))
		return "", nil, ErrWrongPassword
	}
	return s.issue(account)
}

func (s *Service) account(ctx context.Context, email string) (*entity.AdminAccount, error) {
	if s.repository == nil {
		return nil, fmt.Errorf("auth repository not set")
	}
	account, err := s.repository.GetAdminByEmail(ctx, email)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, ErrUnknownEmail
	}
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return account, nil
}

func (s *Service) issue(account *entity.AdminAccount) (string, *entity.AdminAuth, error) {
	now := s.now()
	auth := &entity.AdminAuth{
		Email:     account.Email,
		Name:      account.Name,
		ExpiresAt: now.Add(s.ttl),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  auth.Email,
		"name": auth.Name,
		"iat":  now.Unix(),
		"exp":  auth.ExpiresAt.Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, auth, nil
}

// AuthenticateByToken verifies a session token issued by Login.
func (s *Service) AuthenticateByToken(token string) (*entity.AdminAuth, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	email, _ := claims["sub"].(string)
	if email == "" {
		return nil, ErrInvalidToken
	}
	name, _ := claims["name"].(string)
	exp, _ := claims["exp"].(float64)
	return &entity.AdminAuth{
		Email:     email,
		Name:      name,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}

// CheckPasswordPolicy accepts 8 to 30 characters with at least one letter and one digit.
func CheckPasswordPolicy(password string) error {
	n := len([]rune(password))
	if n < MinPasswordLength || n > MaxPasswordLength {
		return ErrWeakPassword
	}
	var letter, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return ErrWeakPassword
	}
	return nil
}

func (s *Service) ChangePassword(ctx context.Context, email, current, next string) error {
	account, err := s.account(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(current)); err != nil {
		return ErrWrongPassword
	}
	if err = CheckPasswordPolicy(next); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	account.PasswordHash = string(hash)
	account.UpdatedAt = s.now()
	if err = s.repository.SaveAdmin(ctx, account); err != nil {
		return fmt.Errorf("save admin: %w", err)
	}
	s.log.Info("admin password changed", slog.String("email", account.Email))
	return nil
}

// SeedAdmin creates the admin account when no account with that email exists.
func (s *Service) SeedAdmin(ctx context.Context, email, name, password string) error {
	email = NormalizeEmail(email)
	if _, err := s.account(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, ErrUnknownEmail) {
		return err
	}
	if err := CheckPasswordPolicy(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	account := &entity.AdminAccount{
		ID:           entity.AdminAccountID,
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		UpdatedAt:    s.now(),
	}
	if err = s.repository.SaveAdmin(ctx, account); err != nil {
		return fmt.Errorf("save admin: %w", err)
	}
	s.log.Info("admin account created", slog.String("email", email))
	return nil
}
