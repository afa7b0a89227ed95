package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
)

// Заголовки, которые проставляет шлюз после аутентификации
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidRole   = "неизвестная роль пользователя"
)

type contextKey string

const actorKey contextKey = "actor"

// Auth извлекает пользователя из заголовков шлюза и кладёт его в контекст.
// Без корректного X-User-ID запрос отклоняется с 401. Роль по умолчанию user.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(HeaderUserID)), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		role, ok := parseRole(r.Header.Get(HeaderUserRole))
		if !ok {
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}

		ctx := WithActor(r.Context(), domain.Actor{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func parseRole(value string) (domain.Role, bool) {
	switch domain.Role(strings.ToLower(strings.TrimSpace(value))) {
	case "", domain.RoleUser:
		return domain.RoleUser, true
	case domain.RoleStaff:
		return domain.RoleStaff, true
	case domain.RoleAdmin:
		return domain.RoleAdmin, true
	default:
		return "", false
	}
}

// WithActor кладёт пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor возвращает пользователя, положенного Auth
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
