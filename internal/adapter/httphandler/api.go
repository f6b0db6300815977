package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	productResponse struct {
		ID          int64       `json:"id"`
		Title       string      `json:"title"`
		Price       json.Number `json:"price"`
		Description string      `json:"description"`
		Category    string      `json:"category"`
		Image       string      `json:"image"`
	}

	catalogResponse struct {
		Status   string            `json:"status"`
		Products []productResponse `json:"products"`
	}

	cartResponse struct {
		Items []productResponse `json:"items"`
		Count int               `json:"count"`
		Total json.Number       `json:"total"`
	}

	addCartItemRequest struct {
		ID int64 `json:"id" validate:"required,gt=0"`
	}
)

func (h Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	s := h.catalog.State()
	writeJSON(w, http.StatusOK, catalogResponse{
		Status:   s.Status.String(),
		Products: toProductsResponse(s.Products),
	})
}

func (h Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCartResponse(h.cart.Snapshot()))
}

func (h Handler) PostCartItem(w http.ResponseWriter, r *http.Request) {
	const op = "Handler.PostCartItem"
	log := slog.With("op", op)

	var req addCartItemRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		log.Warn("invalid request", "err", err)
		return
	}

	p, ok := h.catalog.Product(req.ID)
	if !ok {
		respondError(w, http.StatusNotFound, errProductNotFound)
		return
	}

	h.cart.AddItem(p)
	writeJSON(w, http.StatusOK, toCartResponse(h.cart.Snapshot()))
}

func (h Handler) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	h.cart.RemoveItem(domain.Product{ID: id})
	writeJSON(w, http.StatusOK, toCartResponse(h.cart.Snapshot()))
}

func (h Handler) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return h.validator.Struct(dst)
}

func toProductsResponse(ps []domain.Product) []productResponse {
	res := make([]productResponse, 0, len(ps))
	for _, p := range ps {
		res = append(res, productResponse{
			ID:          p.ID,
			Title:       p.Title,
			Price:       json.Number(p.Price.String()),
			Description: p.Description,
			Category:    p.Category,
			Image:       p.Image,
		})
	}
	return res
}

func toCartResponse(s domain.CartSnapshot) cartResponse {
	return cartResponse{
		Items: toProductsResponse(s.Items),
		Count: s.Items.Len(),
		Total: json.Number(s.Total.String()),
	}
}
