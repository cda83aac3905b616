package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/krtkm27/ZEats-OrderService/internal/api/handlers"
	"github.com/krtkm27/ZEats-OrderService/internal/domain"
)

type contextKey string

const actorContextKey contextKey = "actor"

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
	headerOutletID = "X-Outlet-ID"
)

// Auth извлекает данные пользователя из заголовков (проставляет API Gateway)
// и кладёт их в контекст запроса. Запросы без X-User-ID отклоняются.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(headerUserID)
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, "missing user ID")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "invalid user ID")
			return
		}

		role := r.Header.Get(headerUserRole)
		if role == "" {
			role = domain.RoleCustomer
		}

		actor := domain.Actor{
			UserID: userID,
			Role:   role,
		}

		if outletIDStr := r.Header.Get(headerOutletID); outletIDStr != "" {
			outletID, err := strconv.ParseInt(outletIDStr, 10, 64)
			if err != nil {
				handlers.RespondUnauthorized(w, "invalid outlet ID")
				return
			}
			actor.OutletID = &outletID
		}

		ctx := context.WithValue(r.Context(), actorContextKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetActor возвращает данные пользователя из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(domain.Actor)
	return actor, ok
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	actor, ok := GetActor(ctx)
	return actor.UserID, ok
}
