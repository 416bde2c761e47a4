package handlers

import (
	"net/http"

	"github.com/ghuser/glossary/pkg/errhttp"
	"github.com/ghuser/glossary/pkg/httpx"
	pkgvalidator "github.com/ghuser/glossary/pkg/validator"
	appsvcs "github.com/ghuser/glossary/services/glossary/application/services"
)

// UpdateTermRequest is the request body for PUT /glossary/{id}. Both fields
// are optional but at least one must be present; provided fields must not be
// blank.
type UpdateTermRequest struct {
	Name        *string `json:"name,omitempty"        validate:"required_without=Description,omitempty,notblank,max=255" example:"API"`
	Description *string `json:"description,omitempty" validate:"required_without=Name,omitempty,notblank"                example:"Application Programming Interface"`
} // @name UpdateTermRequest

// PutTermHandler handles PUT /glossary/{id} requests.
type PutTermHandler struct {
	svc *appsvcs.Services
}

// NewPutTermHandler returns a PutTermHandler backed by the given services.
func NewPutTermHandler(svc *appsvcs.Services) *PutTermHandler {
	return &PutTermHandler{svc: svc}
}

// Execute applies a partial update to a glossary term. Omitted fields keep
// their stored values.
//
//	@Summary		Update term
//	@Description	Updates the name and/or description of an existing glossary term
//	@Tags			glossary
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Term id"
//	@Param			request	body		UpdateTermRequest	true	"Fields to update"
//	@Success		200		{object}	TermResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ValidationErrorResponse
//	@Router			/glossary/{id} [put]
func (h *PutTermHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := termID(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateTermRequest](w, r)
	if !ok {
		return
	}

	term, err := h.svc.Term.Update(r.Context(), id, req.Name, req.Description)
	if err != nil {
		errhttp.WriteError(r.Context(), h.svc.Log, w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toTermResponse(term))
}
