package handlers

import (
	"TeleCloud/internal/config"
	"TeleCloud/internal/middleware"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// FileLinker выдаёт временную ссылку на скачивание файла по его ссылке на платформе.
type FileLinker interface {
	FileURL(ctx context.Context, fileRef string) (string, error)
}

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров. linker может быть nil: тогда /file/{id}/url отвечает 503.
func NewHandler(
	storage Storage,
	linker FileLinker,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	// галерея открывается с другого origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	cloudHandler := NewCloudHandler(storage, linker, logger, config)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", cloudHandler.Health)
		r.Get("/folders/{id}", cloudHandler.Folders)
		r.Get("/folders/{id}/files", cloudHandler.Files)
		r.Delete("/folders/{id}", cloudHandler.DeleteFolder)
		r.Get("/file/{id}/url", cloudHandler.FileURL)
		r.Delete("/files/{id}", cloudHandler.DeleteFile)
		r.Get("/stats/{id}", cloudHandler.Stats)
	})

	return &Handler{Router: r}
}
