package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/ahmedharati210-cyber/life-accessories-app-sub001/errors"
)

const (
	// SessionCookieName carries the admin session token.
	SessionCookieName = "admin_session"

	sessionTokenType = "admin"
	sessionLifetime  = 12 * time.Hour
)

// SessionManager issues and validates admin session tokens. There is a single
// admin identity; the credential is a bcrypt hash of the shared password.
type SessionManager struct {
	secret       []byte
	passwordHash string
}

func NewSessionManager(secret, passwordHash string) *SessionManager {
	return &SessionManager{secret: []byte(secret), passwordHash: passwordHash}
}

// Authenticate checks the supplied password against the configured hash and
// returns a signed session token on success.
func (sm *SessionManager) Authenticate(password string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(sm.passwordHash), []byte(password)); err != nil {
		return "", time.Time{}, apperrors.ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(sessionLifetime)
	claims := jwt.MapClaims{
		"typ": sessionTokenType,
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expiresAt, nil
}

// Validate parses a session token and rejects anything expired, malformed or
// signed with the wrong method.
func (sm *SessionManager) Validate(tokenStr string) error {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return sm.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return apperrors.ErrSessionExpired
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return apperrors.ErrSessionExpired
	}
	if typ, ok := claims["typ"].(string); !ok || typ != sessionTokenType {
		return apperrors.ErrSessionExpired
	}
	return nil
}

// SetSessionCookie writes the session cookie on a successful login.
func SetSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie expires the session cookie on logout.
func ClearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// RequireAdmin guards back-office routes. Requests without a valid session
// cookie get a 404, not a 401, so the admin surface stays indistinguishable
// from a missing route.
func RequireAdmin(sm *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
			return
		}
		if err := sm.Validate(cookie); err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
			return
		}
		c.Next()
	}
}

// HashPassword produces a bcrypt hash for seeding ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
