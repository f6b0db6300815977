package httphandler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
)

func (h Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	const op = "Handler.GetPage"
	log := slog.With("op", op)

	view := pageView{
		Catalog: NewCatalogView(h.catalog.State()),
		Basket:  NewBasketView(h.cart.Snapshot()),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		log.Error("failed to render page", "err", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func (h Handler) GetStyle(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, templatesFS, "templates/style.css")
}

func (h Handler) PostAddItem(w http.ResponseWriter, r *http.Request) {
	const op = "Handler.PostAddItem"
	log := slog.With("op", op)

	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, ok := h.catalog.Product(id)
	if !ok {
		http.Error(w, errProductNotFound.Error(), http.StatusNotFound)
		log.Warn("unknown product", "productID", id)
		return
	}

	h.cart.AddItem(p)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h Handler) PostRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.cart.RemoveItem(domain.Product{ID: id})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
