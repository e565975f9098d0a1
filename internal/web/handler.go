package web

import (
	"embed"
	"html/template"
	"net/http"

	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/usecase"
	"cinema-tickets/pkg/utils"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Handler serves the browser front-end. It sits on the same services as the
// REST API, so every guard and business rule applies to both surfaces.
type Handler struct {
	service *usecase.Service
	repo    *repository.Repository
	config  *utils.Config
	log     *zap.Logger
	tmpl    *template.Template
}

func NewHandler(service *usecase.Service, repo *repository.Repository, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
		config:  config,
		log:     log.With(zap.String("handler", "web")),
		tmpl:    template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
}

// viewer is the authenticated-user block available to every page.
type viewer struct {
	LoggedIn bool
	UserID   string
	Username string
	IsAdmin  bool
}

// page is the payload handed to templates.
type page struct {
	Viewer viewer
	Error  string
	Data   any
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any, errMsg string) {
	p := page{
		Viewer: viewerFromContext(r),
		Error:  errMsg,
		Data:   data,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, p); err != nil {
		h.log.Error("Failed to render template",
			zap.Error(err),
			zap.String("template", name))
	}
}
