package handlers

import (
	"net/http"

	"github.com/ghuser/glossary/pkg/errhttp"
	"github.com/ghuser/glossary/pkg/httpx"
	appsvcs "github.com/ghuser/glossary/services/glossary/application/services"
)

// DeleteTermHandler handles DELETE /glossary/{id} requests.
type DeleteTermHandler struct {
	svc *appsvcs.Services
}

// NewDeleteTermHandler returns a DeleteTermHandler backed by the given
// services.
func NewDeleteTermHandler(svc *appsvcs.Services) *DeleteTermHandler {
	return &DeleteTermHandler{svc: svc}
}

// Execute deletes a glossary term by id. Deleting an already-deleted id
// returns 404.
//
//	@Summary		Delete term
//	@Description	Deletes the glossary term with the given id
//	@Tags			glossary
//	@Produce		json
//	@Param			id	path	int	true	"Term id"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ValidationErrorResponse
//	@Router			/glossary/{id} [delete]
func (h *DeleteTermHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := termID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Term.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(r.Context(), h.svc.Log, w, err)
		return
	}

	httpx.NoContent(w)
}
