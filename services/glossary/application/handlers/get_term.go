package handlers

import (
	"net/http"

	"github.com/ghuser/glossary/pkg/errhttp"
	"github.com/ghuser/glossary/pkg/httpx"
	appsvcs "github.com/ghuser/glossary/services/glossary/application/services"
)

// GetTermHandler handles GET /glossary/{id} requests.
type GetTermHandler struct {
	svc *appsvcs.Services
}

// NewGetTermHandler returns a GetTermHandler backed by the given services.
func NewGetTermHandler(svc *appsvcs.Services) *GetTermHandler {
	return &GetTermHandler{svc: svc}
}

// Execute returns a single glossary term by id.
//
//	@Summary		Get term
//	@Description	Returns the glossary term with the given id
//	@Tags			glossary
//	@Produce		json
//	@Param			id	path		int	true	"Term id"
//	@Success		200	{object}	TermResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ValidationErrorResponse
//	@Router			/glossary/{id} [get]
func (h *GetTermHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := termID(w, r)
	if !ok {
		return
	}

	term, err := h.svc.Term.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(r.Context(), h.svc.Log, w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toTermResponse(term))
}
