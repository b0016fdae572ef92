package controllers

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/hazolabs/storefront-backend/api/middleware"
	"github.com/hazolabs/storefront-backend/api/responses"
	"github.com/hazolabs/storefront-backend/api/validators"
	"github.com/hazolabs/storefront-backend/pkg/db"
	"github.com/hazolabs/storefront-backend/pkg/enums"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
	"github.com/hazolabs/storefront-backend/pkg/outbox"
	"github.com/hazolabs/storefront-backend/pkg/outbox/payloads"
)

type notificationTestRequest struct {
	Message string `json:"message"`
}

// NotificationTest queues a test message through the outbox so admins can
// verify the Telegram wiring end to end, dispatcher included.
func NotificationTest(client *db.Client, events *outbox.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload notificationTestRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		message := strings.TrimSpace(payload.Message)
		if message == "" {
			message = "Storefront notification test"
		}

		adminID := middleware.AdminIDFromContext(r.Context())
		err := client.WithTx(r.Context(), func(tx *gorm.DB) error {
			return events.Emit(r.Context(), tx, outbox.DomainEvent{
				EventType:     enums.OutboxEventNotificationTestSent,
				AggregateType: enums.OutboxAggregateNotification,
				AggregateID:   adminID,
				Version:       1,
				Data:          payloads.NotificationTest{Message: message},
			})
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue test notification"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"queued": true})
	}
}
