// Package auth signs staff in and out and manages their profiles.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/session"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

type SessionStore interface {
	Create(ctx context.Context, userID uuid.UUID, role string) (*session.Session, error)
	Get(ctx context.Context, id string) (*session.Session, error)
	Delete(ctx context.Context, id string) error
}

type Claims struct {
	Role      string `json:"role"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID    uuid.UUID
	SessionID string
	Role      user.Role
}

func (p Principal) IsOwner() bool {
	return p.Role == user.RoleOwner
}

type SignInResult struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	User      *models.UserProfile `json:"user"`
}

type CreateUserInput struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"full_name" validate:"max=100"`
}

type Service struct {
	users    user.Repository
	sessions SessionStore
	secret   []byte

	// EmailDomainOK reports whether an email's domain can receive mail.
	EmailDomainOK func(email string) bool
}

func NewService(users user.Repository, sessions SessionStore, jwtSecret string) *Service {
	return &Service{
		users:         users,
		sessions:      sessions,
		secret:        []byte(jwtSecret),
		EmailDomainOK: validators.IsEmailDomainValid,
	}
}

// ======================================================
// SIGN IN / OUT
// ======================================================

func (s *Service) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if httperr.IsBusiness(err, "user_not_found") {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}
	if !u.EmailConfirmed {
		return nil, httperr.ErrBusiness("email_not_confirmed")
	}
	if !u.Active {
		return nil, httperr.ErrBusiness("user_inactive")
	}

	sess, err := s.sessions.Create(ctx, u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	claims := Claims{
		Role:      u.Role,
		SessionID: sess.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &SignInResult{Token: token, ExpiresAt: sess.ExpiresAt, User: u}, nil
}

func (s *Service) SignOut(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// Authenticate validates a bearer token against its session and the current
// profile. The role is taken from the profile so role changes apply at once.
func (s *Service) Authenticate(ctx context.Context, token string) (*Principal, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, httperr.ErrBusiness("invalid_token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || claims.SessionID == "" {
		return nil, httperr.ErrBusiness("invalid_token")
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, httperr.ErrBusiness("session_expired")
	}
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, httperr.ErrBusiness("invalid_token")
	}

	u, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Principal{
		UserID:    u.ID,
		SessionID: sess.ID,
		Role:      user.Role(u.Role),
	}, nil
}

// ======================================================
// PROFILES
// ======================================================

func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.Active {
		return nil, httperr.ErrBusiness("user_inactive")
	}
	return u, nil
}

func (s *Service) CreateEmployee(ctx context.Context, in CreateUserInput) (*models.UserProfile, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validators.Struct(in); err != nil {
		return nil, err
	}
	if s.EmailDomainOK != nil && !s.EmailDomainOK(in.Email) {
		return nil, httperr.ErrBusiness("invalid_email_domain")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.UserProfile{
		ID:             uuid.New(),
		Email:          in.Email,
		FullName:       strings.TrimSpace(in.FullName),
		PasswordHash:   string(hashed),
		Role:           string(user.RoleEmployee),
		Active:         true,
		EmailConfirmed: true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	return s.users.ListActive(ctx)
}

func (s *Service) ChangeRole(ctx context.Context, actor Principal, id uuid.UUID, role user.Role) (*models.UserProfile, error) {
	if !role.Valid() {
		return nil, httperr.ErrBusiness("invalid_role")
	}
	if actor.UserID == id {
		return nil, httperr.ErrBusiness("cannot_modify_self")
	}
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *Service) Deactivate(ctx context.Context, actor Principal, id uuid.UUID) error {
	if actor.UserID == id {
		return httperr.ErrBusiness("cannot_modify_self")
	}
	return s.users.Deactivate(ctx, id)
}
