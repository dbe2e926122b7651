package httphandler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/niksmo/fashion-store/internal/core/port"
)

type Services struct {
	Catalog      port.Catalog
	CatalogAdmin port.CatalogAdmin
	Bag          port.BagManager
	Checkout     port.CheckoutWorkflow
	Orders       port.OrderManager
	Admin        port.AdminConsole
}

type RouterConfig struct {
	SessionTTL   time.Duration
	SecureCookie bool

	// UploadsDir is served under UploadsPath when both are set.
	UploadsDir  string
	UploadsPath string
}

func NewRouter(cfg RouterConfig, s Services) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, LogRequests, middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if cfg.UploadsDir != "" && cfg.UploadsPath != "" {
		prefix := "/" + strings.Trim(cfg.UploadsPath, "/") + "/"
		fs := http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Handle(prefix+"*", fs)
	}

	RegisterCatalog(r, s.Catalog)
	RegisterTracking(r, s.Orders)

	r.Group(func(r chi.Router) {
		r.Use(Session(cfg.SessionTTL, cfg.SecureCookie))
		RegisterBag(r, s.Bag)
		RegisterCheckout(r, s.Checkout)
	})

	RegisterAdmin(r, s.Admin, s.CatalogAdmin, s.Orders)

	return r
}
