package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziiziikids/ziizii-backend/api/responses"
	"github.com/ziiziikids/ziizii-backend/api/validators"
	"github.com/ziiziikids/ziizii-backend/internal/notifications"
	pkgerrors "github.com/ziiziikids/ziizii-backend/pkg/errors"
	"github.com/ziiziikids/ziizii-backend/pkg/logger"
)

func ListNotifications(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		unreadOnly, err := validators.ParseQueryBool(r, "unread_only")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, listErr := svc.List(r.Context(), unreadOnly != nil && *unreadOnly, limit)
		if listErr != nil {
			responses.WriteError(r.Context(), logg, w, listErr)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func MarkNotificationRead(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "notificationId"), "notificationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.MarkRead(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "read"})
	}
}
