package bootstrap

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"

	app "github.com/mohammadpnp/contact-import/internal/application/contact"
	"github.com/mohammadpnp/contact-import/internal/config"
	"github.com/mohammadpnp/contact-import/internal/infrastructure/pubsub"
	"github.com/mohammadpnp/contact-import/internal/infrastructure/repository"
	httpecho "github.com/mohammadpnp/contact-import/internal/interfaces/http/echo"
	"github.com/mohammadpnp/contact-import/internal/logger"
)

func NewHTTPServer(cfg *config.Config, infra *Infrastructure, submit app.SubmitImport, log *logger.Logger) *echo.Echo {
	server := echo.New()
	server.HideBanner = true
	server.HidePort = true

	server.Use(slogecho.New(log.Logger))
	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	// multipart framing needs headroom above the file size itself
	server.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.Upload.MaxSizeMB+1)))

	listImports := app.NewListImportSummaries(repository.NewImportSummaryRepository(infra.DB))
	importHandler := httpecho.NewImportHandler(infra.Uploads, submit, listImports, cfg.Upload.MaxUploadBytes())

	getContact := app.NewGetContactByEmail(repository.NewContactQueryRepository(infra.DB))
	contactHandler := httpecho.NewContactHandler(getContact)

	var eventsHandler *httpecho.EventsHandler
	if infra.Redis != nil {
		eventsHandler = httpecho.NewEventsHandler(pubsub.NewRedisSubscriber(infra.Redis, cfg.Redis.ChannelPrefix, log))
	}

	httpecho.RegisterRoutes(server, importHandler, contactHandler, eventsHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return server
}
