package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"room-booking/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims is the signed session payload. It is trusted for the token's
// lifetime without a database round trip.
type Claims struct {
	UserID   uint        `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool { return c.Role == models.RoleAdmin }

type LoginResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type AuthService struct {
	DB       *gorm.DB
	Secret   []byte
	TokenTTL time.Duration
	Users    *UserService

	now     func() time.Time
	compare func(digest, password []byte) error
	// compared against on unknown usernames so both failure paths cost one bcrypt run
	dummyDigest []byte
}

func NewAuthService(db *gorm.DB, secret []byte, ttl time.Duration, users *UserService) *AuthService {
	cost := bcrypt.DefaultCost
	if users != nil {
		cost = users.BcryptCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("no-such-user"), cost)
	if err != nil {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("no-such-user"), bcrypt.DefaultCost)
	}
	return &AuthService{
		DB:          db,
		Secret:      secret,
		TokenTTL:    ttl,
		Users:       users,
		now:         time.Now,
		compare:     bcrypt.CompareHashAndPassword,
		dummyDigest: dummy,
	}
}

// Login verifies a username/password pair. Unknown users and wrong passwords
// produce the same error so usernames cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResult{}, MissingFields("username and password are required")
	}

	var user models.User
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	switch classify(err) {
	case outcomeOK:
	case outcomeNotFound:
		_ = s.compare(s.dummyDigest, []byte(password))
		return LoginResult{}, ErrInvalidCredentials
	default:
		return LoginResult{}, fmt.Errorf("find user %q: %w", username, err)
	}

	if s.compare([]byte(user.PasswordDigest), []byte(password)) != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, User: user.Public()}, nil
}

// Register creates a regular account through the public sign-up endpoint.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (models.PublicUser, error) {
	return s.Users.Create(ctx, CreateUserInput{
		Username: username,
		Email:    email,
		Password: password,
		Role:     string(models.RoleUser),
	})
}

// IssueToken signs {id, username, role} with the configured lifetime.
func (s *AuthService) IssueToken(user models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature, algorithm and expiry and returns the claims.
func (s *AuthService) VerifyToken(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Me reloads the caller's public profile; the account may have been removed
// after the token was issued.
func (s *AuthService) Me(ctx context.Context, claims *Claims) (models.PublicUser, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, claims.UserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PublicUser{}, NotFound("user")
		}
		return models.PublicUser{}, fmt.Errorf("load user %d: %w", claims.UserID, err)
	}
	return user.Public(), nil
}
