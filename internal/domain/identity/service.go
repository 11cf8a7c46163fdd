package identity

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medicart/medicart/internal/platform/auth"
)

// resetTokenTTL bounds how long a password-reset token stays usable.
const resetTokenTTL = 10 * time.Minute

type Service struct {
	repo   UserRepository
	hasher *auth.Hasher
	tokens *auth.TokenIssuer
}

func NewService(repo UserRepository, hasher *auth.Hasher, tokens *auth.TokenIssuer) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

// Register creates a new customer account and returns it with a signed
// access token. Every self-registered account gets the user role.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, string, error) {
	if in.Email == "" || in.Password == "" {
		return nil, "", fmt.Errorf("email and password are required")
	}
	if len(in.Password) < 6 {
		return nil, "", fmt.Errorf("password must be at least 6 characters")
	}

	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	u := &User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        strings.ToLower(in.Email),
		PasswordHash: hash,
		Phone:        in.Phone,
		Role:         "user",
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// A missing account and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !s.hasher.Compare(u.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

type ProfileInput struct {
	FirstName         *string        `json:"firstName"`
	LastName          *string        `json:"lastName"`
	Phone             *string        `json:"phone"`
	Address           *Address       `json:"address"`
	Avatar            *string        `json:"avatar"`
	DateOfBirth       *time.Time     `json:"dateOfBirth"`
	MedicalConditions []string       `json:"medicalConditions"`
	Allergies         []string       `json:"allergies"`
	Prescriptions     []Prescription `json:"prescriptions"`
}

// UpdateProfile applies a partial update; nil fields are left untouched.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileInput) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Address != nil {
		u.Address = in.Address
	}
	if in.Avatar != nil {
		u.Avatar = *in.Avatar
	}
	if in.DateOfBirth != nil {
		u.DateOfBirth = in.DateOfBirth
	}
	if in.MedicalConditions != nil {
		u.MedicalConditions = in.MedicalConditions
	}
	if in.Allergies != nil {
		u.Allergies = in.Allergies
	}
	if in.Prescriptions != nil {
		u.Prescriptions = in.Prescriptions
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, current, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.hasher.Compare(u.PasswordHash, current) {
		return ErrInvalidCredentials
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, hash)
}

// ForgotPassword issues a one-time reset token. Only its SHA-256 digest is
// stored; the plaintext token is returned to the caller (email delivery is
// out of scope).
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)

	if err := s.repo.SetResetToken(ctx, u.ID, hashToken(token), time.Now().Add(resetTokenTTL)); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	u, err := s.repo.GetByResetToken(ctx, hashToken(token))
	if err != nil {
		return err
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, u.ID, hash)
}

// ListCustomers returns accounts with the user role for the admin console.
func (s *Service) ListCustomers(ctx context.Context, search string, limit, offset int) ([]*User, int, error) {
	return s.repo.List(ctx, "user", search, limit, offset)
}

// CreateAdmin provisions an admin account. Only the CLI calls this.
func (s *Service) CreateAdmin(ctx context.Context, firstName, lastName, email, password string) (*User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u := &User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		Role:         "admin",
		IsVerified:   true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
