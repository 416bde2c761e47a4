package handlers

import (
	"net/http"

	"github.com/ghuser/glossary/pkg/errhttp"
	"github.com/ghuser/glossary/pkg/httpx"
	appsvcs "github.com/ghuser/glossary/services/glossary/application/services"
)

// ListTermsHandler handles GET /glossary requests.
type ListTermsHandler struct {
	svc *appsvcs.Services
}

// NewListTermsHandler returns a ListTermsHandler backed by the given services.
func NewListTermsHandler(svc *appsvcs.Services) *ListTermsHandler {
	return &ListTermsHandler{svc: svc}
}

// Execute returns one page of glossary terms ordered by id. An optional
// search parameter filters by case-insensitive substring match over name and
// description.
//
//	@Summary		List terms
//	@Description	Returns a paginated list of glossary terms, optionally filtered by a search string
//	@Tags			glossary
//	@Produce		json
//	@Param			page		query		int		false	"Page number (1-indexed)"	default(1)
//	@Param			page_size	query		int		false	"Page size (max 100)"		default(20)
//	@Param			search		query		string	false	"Substring to match against name and description"
//	@Success		200			{object}	TermListResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/glossary [get]
func (h *ListTermsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	params := listParams(r, r.URL.Query().Get("search"))

	terms, total, err := h.svc.Term.List(r.Context(), params)
	if err != nil {
		errhttp.WriteError(r.Context(), h.svc.Log, w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toTermListResponse(terms, total, params))
}
