package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/glossary/pkg/httpx"
	"github.com/ghuser/glossary/services/glossary/domain/models"
	"github.com/ghuser/glossary/services/glossary/domain/repositories"
)

// TermResponse is the wire representation of a glossary term.
type TermResponse struct {
	ID          int64     `json:"id"          example:"1"`
	Name        string    `json:"name"        example:"API"`
	Description string    `json:"description" example:"Application Programming Interface"`
	CreatedAt   time.Time `json:"created_at"  example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time `json:"updated_at"  example:"2024-01-15T10:30:00Z"`
} // @name TermResponse

// TermListResponse is returned by the list and search endpoints.
type TermListResponse struct {
	Items      []TermResponse `json:"items"`
	TotalCount int            `json:"total_count" example:"42"`
	Page       int            `json:"page"        example:"1"`
	PageSize   int            `json:"page_size"   example:"20"`
} // @name TermListResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"glossary term not found"`
} // @name ErrorResponse

// ValidationErrorResponse is returned when request validation fails; Fields
// lists every violated field with a reason.
type ValidationErrorResponse struct {
	Error  string            `json:"error"  example:"Validation failed"`
	Fields map[string]string `json:"fields"`
} // @name ValidationErrorResponse

func toTermResponse(term *models.Term) TermResponse {
	return TermResponse{
		ID:          term.ID,
		Name:        term.Name.String(),
		Description: term.Description,
		CreatedAt:   term.CreatedAt,
		UpdatedAt:   term.UpdatedAt,
	}
}

func toTermListResponse(terms []*models.Term, total int, params repositories.ListParams) TermListResponse {
	items := make([]TermResponse, len(terms))
	for i, term := range terms {
		items[i] = toTermResponse(term)
	}
	return TermListResponse{
		Items:      items,
		TotalCount: total,
		Page:       params.Page,
		PageSize:   params.PageSize,
	}
}

// termID parses the {id} path parameter. On failure it writes a 422 naming
// the id field and returns false; a non-numeric id can never reference a
// stored term, so this is an input-shape error rather than a 404.
func termID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		httpx.JSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
			Error:  "Validation failed",
			Fields: map[string]string{"id": "Must be a positive integer"},
		})
		return 0, false
	}
	return id, true
}

// listParams reads page/page_size query parameters with defaults and clamps
// page_size to the repository maximum. Unparseable values fall back to the
// defaults rather than erroring.
func listParams(r *http.Request, search string) repositories.ListParams {
	params := repositories.ListParams{
		Page:     1,
		PageSize: repositories.DefaultPageSize,
		Search:   search,
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		params.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil {
		params.PageSize = v
	}
	return params.Normalize()
}
