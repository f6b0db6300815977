package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET  /                          catalog grid and basket (HTML)
// POST /cart/items/{id}           add catalog product, 303 to /
// POST /cart/items/{id}/remove    remove product, 303 to /
// GET  /v1/products               catalog state (JSON)
// GET  /v1/cart                   cart snapshot (JSON)
// POST /v1/cart/items             {"id": n} (200 OK, 400, 404)
// DELETE /v1/cart/items/{id}      (200 OK, 400)

var (
	errProductNotFound = errors.New("product not found")
	errInvalidID       = errors.New("invalid product id")
)

type Handler struct {
	catalog   port.CatalogReader
	cart      port.CartManager
	validator *validator.Validate
}

func New(catalog port.CatalogReader, cart port.CartManager) Handler {
	return Handler{
		catalog:   catalog,
		cart:      cart,
		validator: validator.New(),
	}
}

func (h Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(LogRequests)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", h.GetPage)
	r.Get("/static/style.css", h.GetStyle)
	r.Post("/cart/items/{id}", h.PostAddItem)
	r.Post("/cart/items/{id}/remove", h.PostRemoveItem)

	r.Route("/v1", func(r chi.Router) {
		r.Use(chimw.AllowContentType("application/json"))
		r.Get("/products", h.GetProducts)
		r.Get("/cart", h.GetCart)
		r.Post("/cart/items", h.PostCartItem)
		r.Delete("/cart/items/{id}", h.DeleteCartItem)
	})

	return r
}

func parseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
