// Package auth handles admin credentials and session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/MahmoudAkram21/um-qura-back/internal/db"
	"github.com/MahmoudAkram21/um-qura-back/internal/model"
)

const (
	// BcryptCost matches the cost used when the admin accounts were seeded.
	BcryptCost = 10
	DefaultTTL = 7 * 24 * time.Hour
)

var (
	// ErrInvalidCredentials is returned when email/password don't match.
	// Unknown email and wrong password are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// dummyHash is compared against when the email is unknown so both failure
// paths cost one bcrypt verification.
var dummyHash = mustHash("not-a-real-password")

// AdminFinder is the slice of db.Store that Login needs.
type AdminFinder interface {
	GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error)
}

// Claims is what a verified token tells us about the caller.
type Claims struct {
	AdminID int
	Email   string
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

type Authenticator struct {
	secret []byte
	ttl    time.Duration
	admins AdminFinder
	now    func() time.Time
}

func NewAuthenticator(secret string, ttl time.Duration, admins AdminFinder) *Authenticator {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Authenticator{secret: []byte(secret), ttl: ttl, admins: admins, now: time.Now}
}

// WithClock swaps the time source; used by tests to expire tokens.
func (a *Authenticator) WithClock(now func() time.Time) *Authenticator {
	a.now = now
	return a
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login checks the credentials and returns the admin with a fresh token.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*model.Admin, string, error) {
	email = NormalizeEmail(email)
	password = strings.TrimSpace(password)

	admin, err := a.admins.GetAdminByEmail(ctx, email)
	if errors.Is(err, db.ErrNotFound) {
		CheckPassword(dummyHash, password)
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("lookup admin: %w", err)
	}
	if !CheckPassword(admin.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.IssueToken(admin)
	if err != nil {
		return nil, "", err
	}
	log.Info().Int("admin_id", admin.ID).Msg("admin logged in")
	return admin, token, nil
}

// IssueToken signs an HS256 token with sub = admin id.
func (a *Authenticator) IssueToken(admin *model.Admin) (string, error) {
	now := a.now()
	claims := tokenClaims{
		Email: admin.Email,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.Itoa(admin.ID),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(a.ttl).Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature, algorithm and expiry.
func (a *Authenticator) VerifyToken(tokenString string) (Claims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	// jwt-go validates exp against the wall clock; recheck with ours
	if !claims.VerifyExpiresAt(a.now().Unix(), true) {
		return Claims{}, ErrInvalidToken
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil || id <= 0 {
		return Claims{}, ErrInvalidToken
	}
	return Claims{AdminID: id, Email: claims.Email}, nil
}

// HashPassword bcrypt-hashes a plaintext password.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	return string(hash), err
}

// CheckPassword compares a bcrypt hash with the plaintext.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ParseTTL accepts a Go duration ("12h") or a day count ("7d").
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultTTL, nil
	}
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("ttl must be positive: %q", s)
	}
	return d, nil
}

func mustHash(plain string) string {
	h, err := HashPassword(plain)
	if err != nil {
		panic(err)
	}
	return h
}
