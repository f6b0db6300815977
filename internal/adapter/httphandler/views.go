package httphandler

import (
	"embed"
	"html/template"

	"github.com/niksmo/storefront/internal/core/domain"
)

//go:embed templates
var templatesFS embed.FS

var pageTemplate = template.Must(
	template.ParseFS(templatesFS, "templates/page.html"),
)

type (
	ProductCard struct {
		ID          int64
		Title       string
		Category    string
		Description string
		Image       string
		Price       string
	}

	// A CatalogView is exactly one of: loading, empty, or a list of cards.
	CatalogView struct {
		Loading bool
		Empty   bool
		Cards   []ProductCard
	}

	BasketLine struct {
		ID    int64
		Title string
		Price string
	}

	BasketView struct {
		Count int
		Lines []BasketLine
		Total string
	}

	pageView struct {
		Catalog CatalogView
		Basket  BasketView
	}
)

func NewCatalogView(s domain.CatalogState) CatalogView {
	switch s.Status {
	case domain.CatalogLoading:
		return CatalogView{Loading: true}
	case domain.CatalogLoaded:
		cards := make([]ProductCard, 0, len(s.Products))
		for _, p := range s.Products {
			cards = append(cards, ProductCard{
				ID:          p.ID,
				Title:       p.Title,
				Category:    p.Category,
				Description: p.Description,
				Image:       p.Image,
				Price:       p.Price.String(),
			})
		}
		return CatalogView{Cards: cards}
	default:
		return CatalogView{Empty: true}
	}
}

func NewBasketView(s domain.CartSnapshot) BasketView {
	lines := make([]BasketLine, 0, s.Items.Len())
	for _, p := range s.Items {
		lines = append(lines, BasketLine{
			ID:    p.ID,
			Title: p.Title,
			Price: p.Price.String(),
		})
	}
	return BasketView{
		Count: s.Items.Len(),
		Lines: lines,
		Total: s.Total.String(),
	}
}
