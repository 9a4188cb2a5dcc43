package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/OmarShama/eventorove-booking/internal/api/handlers"
)

// HeaderUserID заголовок с ID аутентифицированного пользователя
// Аутентификация выполняется на API gateway, сервис доверяет заголовку
const HeaderUserID = "X-User-ID"

type userIDKey struct{}

// Auth middleware, требующий валидный X-User-ID заголовок
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "missing "+HeaderUserID+" header")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "invalid "+HeaderUserID+" header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID возвращает ID пользователя из контекста запроса
// Второе значение false, если запрос не прошёл через Auth
func UserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int64)
	return userID, ok
}
