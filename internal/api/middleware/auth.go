package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/evelone226/salon-appointment-service/internal/api/handlers"
)

// userIDHeader заголовок с идентификатором пользователя.
// Аутентификацию выполняет API gateway, сервис доверяет заголовку.
const userIDHeader = "X-User-ID"

type contextKey struct{}

var userIDKey contextKey

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth извлекает идентификатор пользователя из заголовка и кладет его
// в контекст запроса. Запросы без валидного заголовка отклоняются с 401
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(userIDHeader)
			if raw == "" {
				logger.Warn("%s %s - missing %s header", r.Method, r.URL.Path, userIDHeader)
				handlers.RespondUnauthorized(w, "требуется аутентификация")
				return
			}

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("%s %s - invalid %s header: %q", r.Method, r.URL.Path, userIDHeader, raw)
				handlers.RespondUnauthorized(w, "требуется аутентификация")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID возвращает идентификатор пользователя из контекста запроса.
// Второе значение false означает, что запрос не прошел через Auth
func UserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
