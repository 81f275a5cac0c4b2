package echo

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
)

const keepAliveInterval = 25 * time.Second

type eventSubscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan []byte, error)
}

// EventsHandler streams import-completed notifications as server-sent events.
type EventsHandler struct {
	subscriber eventSubscriber
	keepAlive  time.Duration
}

func NewEventsHandler(subscriber eventSubscriber) *EventsHandler {
	return &EventsHandler{subscriber: subscriber, keepAlive: keepAliveInterval}
}

func (h *EventsHandler) Stream(c echo.Context) error {
	ctx := c.Request().Context()

	msgs, err := h.subscriber.Subscribe(ctx, domain.TopicImportCompleted)
	if err != nil {
		return errorJSON(c, http.StatusServiceUnavailable, "events_unavailable", "event stream is unavailable")
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", domain.TopicImportCompleted, msg); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
