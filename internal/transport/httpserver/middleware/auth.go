package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"foodgram-go/internal/config"
	userdomain "foodgram-go/internal/domain/user"
	"foodgram-go/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errNoToken           = errors.New("no bearer token")
	errAuthNotConfigured = errors.New("auth not configured")
)

// Claims are the bearer token claims. The subject is the user id.
type Claims struct {
	jwt.RegisteredClaims
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type User struct {
	ID        string
	Email     string
	Username  string
	FirstName string
	LastName  string
}

func (u User) Profile() userdomain.Profile {
	return userdomain.Profile{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

type ProfileSaver interface {
	UpsertProfile(ctx context.Context, profile userdomain.Profile) error
}

type JWTAuth struct {
	secret   []byte
	parser   *jwt.Parser
	profiles ProfileSaver
	skipAuth bool
	mockUser User
	log      logger.Logger
}

type contextKey int

const userKey contextKey = iota

func NewJWTAuth(cfg config.AuthConfig, profiles ProfileSaver, log logger.Logger) *JWTAuth {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(cfg.Issuer))
	}

	return &JWTAuth{
		secret:   []byte(cfg.JWTSecret),
		parser:   jwt.NewParser(options...),
		profiles: profiles,
		skipAuth: cfg.SkipAuth,
		mockUser: User{
			ID:       strings.TrimSpace(cfg.MockUserID),
			Email:    strings.TrimSpace(cfg.MockUserEmail),
			Username: strings.TrimSpace(cfg.MockUsername),
		},
		log: log,
	}
}

// Required rejects requests without a valid principal.
func (a *JWTAuth) Required(next http.Handler) http.Handler {
	return a.handle(next, false)
}

// Optional lets anonymous requests through. A token that is present but
// invalid is still rejected.
func (a *JWTAuth) Optional(next http.Handler) http.Handler {
	return a.handle(next, true)
}

func (a *JWTAuth) handle(next http.Handler, anonymousAllowed bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.authenticate(r)
		switch {
		case errors.Is(err, errNoToken) && anonymousAllowed:
			next.ServeHTTP(w, r)
			return
		case errors.Is(err, errAuthNotConfigured):
			writeError(w, http.StatusInternalServerError, "auth_not_configured", err.Error())
			return
		case err != nil:
			logger.FromContext(r.Context(), a.log).BusinessError("auth: rejected token", err)
			unauthorized(w)
			return
		}

		if a.profiles != nil {
			if err := a.profiles.UpsertProfile(r.Context(), user.Profile()); err != nil {
				logger.FromContext(r.Context(), a.log).InternalError("auth: upsert profile failed", err, "user_id", user.ID)
				writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
				return
			}
		}

		ctx := WithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *JWTAuth) authenticate(r *http.Request) (User, error) {
	if a.skipAuth {
		if a.mockUser.ID == "" {
			return User{}, errAuthNotConfigured
		}
		return a.mockUser, nil
	}

	header := r.Header.Get("Authorization")
	if strings.TrimSpace(header) == "" {
		return User{}, errNoToken
	}
	if len(a.secret) == 0 {
		return User{}, errAuthNotConfigured
	}

	raw, ok := bearerToken(header)
	if !ok {
		return User{}, errors.New("malformed authorization header")
	}

	var claims Claims
	if _, err := a.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}); err != nil {
		return User{}, err
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return User{}, errors.New("token has no subject")
	}

	return User{
		ID:        claims.Subject,
		Email:     claims.Email,
		Username:  claims.Username,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	}, nil
}

// SignToken issues an HS256 token for user that expires after ttl.
func SignToken(cfg config.AuthConfig, user User, ttl time.Duration) (string, error) {
	if cfg.JWTSecret == "" {
		return "", errAuthNotConfigured
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	value := ctx.Value(userKey)
	user, ok := value.(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

// UserIDFromContext returns the principal id, or "" for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	user, _ := UserFromContext(ctx)
	return user.ID
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
