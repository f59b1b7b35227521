package service

import (
	"context"
	"errors"
	"time"

	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"
	"github.com/CHUNCHUNMARU-d/GYM/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrCoachAlreadyExists = errors.New("coach with this username already exists")
	ErrInvalidCredentials = errors.New("authentication failed: invalid credentials")
	ErrHashingFailed      = errors.New("failed to hash password")
	ErrTokenGeneration    = errors.New("failed to generate authentication token")
	ErrSubjectNotFound    = errors.New("token subject no longer exists")
)

// AuthService issues session tokens for coaches and clients.
//
// Coach login is username + password. Client login is by bare client id with
// no secret; anyone holding an active client's id can obtain a client token.
// That is the observed production behavior and is kept for compatibility.
type AuthService interface {
	RegisterCoach(ctx context.Context, username, password, name, email string) (*domain.Coach, error)
	LoginCoach(ctx context.Context, username, password string) (token string, coach *domain.Coach, err error)
	LoginClient(ctx context.Context, clientID primitive.ObjectID) (token string, client *domain.Client, err error)
	// VerifySubject checks that the coach or client a token was issued to
	// still exists. Used after signature validation on protected routes.
	VerifySubject(ctx context.Context, subjectID primitive.ObjectID, role domain.Role) error
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	coachRepo     repository.CoachRepository
	clientRepo    repository.ClientRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(coachRepo repository.CoachRepository, clientRepo repository.ClientRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	return &authService{
		coachRepo:     coachRepo,
		clientRepo:    clientRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// RegisterCoach creates a coach account with a bcrypt password hash. Used by
// startup seeding; there is no public registration endpoint.
func (s *authService) RegisterCoach(ctx context.Context, username, password, name, email string) (*domain.Coach, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password cannot be empty")
	}

	_, err := s.coachRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil, ErrCoachAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	coach := &domain.Coach{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Name:         name,
		Email:        email,
	}

	coachID, err := s.coachRepo.Create(ctx, coach)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCoachAlreadyExists
		}
		return nil, err
	}
	coach.ID = coachID

	coach.PasswordHash = ""
	return coach, nil
}

// LoginCoach authenticates a coach and returns a signed token. An unknown
// username and a wrong password both map to ErrInvalidCredentials.
func (s *authService) LoginCoach(ctx context.Context, username, password string) (string, *domain.Coach, error) {
	if username == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	coach, err := s.coachRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(coach.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(coach.ID, domain.RoleCoach)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	coach.PasswordHash = ""
	return token, coach, nil
}

// LoginClient issues a client token for an active client id. Unknown and
// deactivated clients are indistinguishable to the caller.
func (s *authService) LoginClient(ctx context.Context, clientID primitive.ObjectID) (string, *domain.Client, error) {
	if clientID == primitive.NilObjectID {
		return "", nil, ErrInvalidCredentials
	}

	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !client.IsActive {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(client.ID, domain.RoleClient)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	return token, client, nil
}

// VerifySubject checks that the token's subject record still exists. A
// deactivated client still verifies; only a missing record fails.
func (s *authService) VerifySubject(ctx context.Context, subjectID primitive.ObjectID, role domain.Role) error {
	var err error
	switch role {
	case domain.RoleCoach:
		_, err = s.coachRepo.GetByID(ctx, subjectID)
	case domain.RoleClient:
		_, err = s.clientRepo.GetByID(ctx, subjectID)
	default:
		return ErrSubjectNotFound
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}
	return nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	SubjectID string      `json:"uid"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateToken creates a signed HS256 token bound to (subject id, role).
// Tokens are self-contained; validity is signature + expiry only, so there
// is no logout or revocation.
func (s *authService) generateToken(subjectID primitive.ObjectID, role domain.Role) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		SubjectID: subjectID.Hex(),
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "coach-client-tracker",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
