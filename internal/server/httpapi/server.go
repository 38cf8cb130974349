// Package httpapi exposes the file sharing service over HTTP. It translates
// requests into service calls and sentinel errors into status codes; all
// business rules live in the services.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/server/config"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/dmitrijs2005/fileshare/internal/server/services"
)

// FileManager is the slice of the file lifecycle the HTTP layer consumes.
type FileManager interface {
	Upload(ctx context.Context, ownerID, filename string, size int64, body io.Reader) (*models.File, error)
	Download(ctx context.Context, userID, fileID string) (string, error)
	Delete(ctx context.Context, userID, fileID string) error
	Share(ctx context.Context, ownerID, fileID string, reqs []services.ShareRequest) error
	List(ctx context.Context, userID string, page, pageSize int) (*services.FileListing, error)
}

// UserManager is the slice of account management the HTTP layer consumes.
type UserManager interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// Server is the HTTP front of the service.
type Server struct {
	httpServer *http.Server
	files      FileManager
	users      UserManager
	cfg        *config.Config
	log        logging.Logger
}

// NewServer builds the router and binds it to the configured address.
func NewServer(files FileManager, users UserManager, cfg *config.Config, log logging.Logger) *Server {
	s := &Server{
		files: files,
		users: users,
		cfg:   cfg,
		log:   log.With("component", "httpapi"),
	}
	s.httpServer = &http.Server{
		Addr:    cfg.EndpointAddr,
		Handler: s.routes(),
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Post("/files", s.handleUpload)
			r.Get("/files", s.handleList)
			r.Get("/files/{id}/download", s.handleDownload)
			r.Delete("/files/{id}", s.handleDelete)
			r.Post("/files/{id}/share", s.handleShare)
		})
	})
	return r
}

// Run serves until Shutdown is called.
func (s *Server) Run() error {
	s.log.Info(context.Background(), "http server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
