package handlers

import (
	"net/http"
	"strings"

	"github.com/ghuser/glossary/pkg/errhttp"
	"github.com/ghuser/glossary/pkg/httpx"
	appsvcs "github.com/ghuser/glossary/services/glossary/application/services"
)

// SearchTermsHandler handles GET /glossary/search requests.
type SearchTermsHandler struct {
	svc *appsvcs.Services
}

// NewSearchTermsHandler returns a SearchTermsHandler backed by the given
// services.
func NewSearchTermsHandler(svc *appsvcs.Services) *SearchTermsHandler {
	return &SearchTermsHandler{svc: svc}
}

// Execute searches glossary terms by substring. Unlike the list endpoint the
// query parameter is mandatory here.
//
//	@Summary		Search terms
//	@Description	Returns glossary terms whose name or description contains the query string
//	@Tags			glossary
//	@Produce		json
//	@Param			q			query		string	true	"Substring to match against name and description"
//	@Param			page		query		int		false	"Page number (1-indexed)"	default(1)
//	@Param			page_size	query		int		false	"Page size (max 100)"		default(20)
//	@Success		200			{object}	TermListResponse
//	@Failure		422			{object}	ValidationErrorResponse
//	@Router			/glossary/search [get]
func (h *SearchTermsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		httpx.JSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
			Error:  "Validation failed",
			Fields: map[string]string{"q": "This field is required"},
		})
		return
	}

	params := listParams(r, q)

	terms, total, err := h.svc.Term.List(r.Context(), params)
	if err != nil {
		errhttp.WriteError(r.Context(), h.svc.Log, w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toTermListResponse(terms, total, params))
}
