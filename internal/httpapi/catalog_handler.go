package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Abusayem99133/kacha-bazaar/internal/catalog"
	"github.com/Abusayem99133/kacha-bazaar/internal/domain"
	"github.com/Abusayem99133/kacha-bazaar/internal/repository"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalog  *catalog.Service
	products repository.ProductRepository
}

func NewCatalogHandler(catalog *catalog.Service, products repository.ProductRepository) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, products: products}
}

type CatalogDTO struct {
	Items      []domain.Product `json:"items"`
	HasMore    bool             `json:"has_more"`
	Total      int              `json:"total"`
	Category   string           `json:"category"`
	Search     string           `json:"search"`
	SortKey    string           `json:"sort"`
	Categories []string         `json:"categories"`
}

type CriteriaRequestDTO struct {
	Category *string `json:"category,omitempty"`
	Search   *string `json:"search,omitempty"`
	Sort     *string `json:"sort,omitempty"`
}

type ProductDetailDTO struct {
	Product domain.Product   `json:"product"`
	Related []domain.Product `json:"related"`
}

const relatedLimit = 4

func (h *CatalogHandler) Get(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, catalogDTO(h.catalog.Snapshot()))
}

func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Refresh(r.Context()); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, catalogDTO(h.catalog.Snapshot()))
}

// SetCriteria applies whichever of category, search and sort the caller
// sent. The visible-count cursor is left where it is.
func (h *CatalogHandler) SetCriteria(w http.ResponseWriter, r *http.Request) {
	var req CriteriaRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Sort != nil {
		switch *req.Sort {
		case catalog.SortNewest, catalog.SortPriceLow, catalog.SortPriceHigh:
		default:
			respondError(w, http.StatusBadRequest, "invalid_sort", "sort must be newest, price-low or price-high")
			return
		}
	}

	if req.Category != nil {
		h.catalog.SetCategory(*req.Category)
	}
	if req.Search != nil {
		h.catalog.SetSearch(*req.Search)
	}
	if req.Sort != nil {
		h.catalog.SetSort(*req.Sort)
	}

	respondJSON(w, http.StatusOK, catalogDTO(h.catalog.Snapshot()))
}

func (h *CatalogHandler) LoadMore(w http.ResponseWriter, _ *http.Request) {
	h.catalog.LoadMore()
	respondJSON(w, http.StatusOK, catalogDTO(h.catalog.Snapshot()))
}

// GetProduct serves the detail page: the product plus up to four others
// from the same category.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id is required")
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	related, err := h.products.Related(r.Context(), product.Category, product.ID, relatedLimit)
	if err != nil {
		// The detail itself loaded; related products are best-effort.
		related = nil
	}

	respondJSON(w, http.StatusOK, ProductDetailDTO{Product: *product, Related: related})
}

func catalogDTO(s catalog.Snapshot) CatalogDTO {
	return CatalogDTO{
		Items:      s.Items,
		HasMore:    s.HasMore,
		Total:      s.Total,
		Category:   s.Category,
		Search:     s.Search,
		SortKey:    s.SortKey,
		Categories: s.Categories,
	}
}
