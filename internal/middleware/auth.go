// Package middleware содержит HTTP middleware сервиса boostmarket.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mmeshcher/boostmarket/internal/model"
)

type contextKey string

const actorKey contextKey = "actor"

// ErrInvalidToken возвращается для неподписанного, просроченного или неполного токена.
var ErrInvalidToken = errors.New("invalid token")

// Claims содержит идентичность пользователя в токене.
type Claims struct {
	UserID int64      `json:"user_id"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager проверяет токены HS256, выпущенные внешним сервисом учётных записей.
type TokenManager struct {
	secretKey []byte
}

// NewTokenManager создаёт TokenManager с указанным секретом.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secretKey: []byte(secret)}
}

// GenerateToken подписывает токен для пользователя с ролью.
func (tm *TokenManager) GenerateToken(userID int64, role model.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secretKey)
}

// ParseToken проверяет подпись и срок действия токена и возвращает вызывающего.
func (tm *TokenManager) ParseToken(tokenStr string) (model.Actor, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return tm.secretKey, nil
	})
	if err != nil || !token.Valid {
		return model.Actor{}, ErrInvalidToken
	}

	if !claims.Role.Valid() || claims.Role == model.RoleGuest {
		return model.Actor{}, fmt.Errorf("%w: role %q", ErrInvalidToken, claims.Role)
	}
	if claims.UserID <= 0 {
		return model.Actor{}, fmt.Errorf("%w: user id %d", ErrInvalidToken, claims.UserID)
	}

	return model.Actor{UserID: claims.UserID, Role: claims.Role}, nil
}

// Authenticate кладёт вызывающего в контекст запроса. Запрос без заголовка Authorization
// обслуживается как гостевой, неверный токен отклоняется с 401.
func (tm *TokenManager) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), model.Guest())))
			return
		}

		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		actor, err := tm.ParseToken(strings.TrimSpace(tokenStr))
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// RequireAuth пропускает только аутентифицированных пользователей.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetActor(r.Context()).Role == model.RoleGuest {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole пропускает только пользователей с одной из указанных ролей.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := GetActor(r.Context()).Role
			if role == model.RoleGuest {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			if !slices.Contains(roles, role) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithActor возвращает контекст с вызывающим.
func WithActor(ctx context.Context, actor model.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor извлекает вызывающего из контекста. Без вызывающего возвращается гость.
func GetActor(ctx context.Context) model.Actor {
	if actor, ok := ctx.Value(actorKey).(model.Actor); ok {
		return actor
	}
	return model.Guest()
}
