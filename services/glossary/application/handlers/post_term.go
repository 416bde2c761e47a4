package handlers

import (
	"net/http"

	"github.com/ghuser/glossary/pkg/errhttp"
	"github.com/ghuser/glossary/pkg/httpx"
	pkgvalidator "github.com/ghuser/glossary/pkg/validator"
	appsvcs "github.com/ghuser/glossary/services/glossary/application/services"
)

// CreateTermRequest is the request body for POST /glossary.
type CreateTermRequest struct {
	Name        string `json:"name"        validate:"required,notblank,max=255" example:"API"`
	Description string `json:"description" validate:"required,notblank"         example:"Application Programming Interface"`
} // @name CreateTermRequest

// PostTermHandler handles POST /glossary requests.
type PostTermHandler struct {
	svc *appsvcs.Services
}

// NewPostTermHandler returns a PostTermHandler backed by the given services.
func NewPostTermHandler(svc *appsvcs.Services) *PostTermHandler {
	return &PostTermHandler{svc: svc}
}

// Execute creates a new glossary term.
//
//	@Summary		Create term
//	@Description	Creates a new glossary term with a unique name
//	@Tags			glossary
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateTermRequest	true	"Term creation request"
//	@Success		201		{object}	TermResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ValidationErrorResponse
//	@Router			/glossary [post]
func (h *PostTermHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateTermRequest](w, r)
	if !ok {
		return
	}

	term, err := h.svc.Term.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		errhttp.WriteError(r.Context(), h.svc.Log, w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toTermResponse(term))
}
