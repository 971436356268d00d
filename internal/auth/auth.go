package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mlipin/todoplanner/internal/model"
	"github.com/mlipin/todoplanner/pkg/respond"
)

type contextKey struct{}

// Middleware достает Bearer-токен и кладет разрешенную Identity в контекст.
// Выпуск токенов - забота внешнего сервиса идентификации.
func Middleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respond.Error(w, r, http.StatusUnauthorized, "authorization header required")
				return
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			identity, err := parseToken(secret, tokenString)
			if err != nil {
				respond.Error(w, r, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), contextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func FromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(model.Identity)
	return identity, ok
}

func parseToken(secret []byte, tokenString string) (model.Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return model.Identity{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return model.Identity{}, jwt.ErrTokenInvalidClaims
	}

	identity := model.Identity{}
	if v, ok := claims["user_id"].(float64); ok {
		identity.UserID = int64(v)
	}
	if v, ok := claims["username"].(string); ok {
		identity.Username = v
	}
	if v, ok := claims["nickname"].(string); ok {
		identity.Nickname = v
	}
	if v, ok := claims["is_admin"].(bool); ok {
		identity.Elevated = v
	}

	if identity.UserID == 0 {
		return model.Identity{}, jwt.ErrTokenInvalidClaims
	}
	return identity, nil
}

// GenerateToken выпускает токен под переданную Identity. Нужен тестам
// и локальной отладке; боевые токены приходят извне.
func GenerateToken(secret []byte, identity model.Identity, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  identity.UserID,
		"username": identity.Username,
		"nickname": identity.Nickname,
		"is_admin": identity.Elevated,
		"exp":      time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}
