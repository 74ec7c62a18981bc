package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shidoukh/shidoukh/internal/services"
	"github.com/shidoukh/shidoukh/pkg/response"
)

// PersonneHandler exposes the profile CRUD endpoints.
type PersonneHandler struct {
	personnes *services.PersonneService
}

// NewPersonneHandler wires a PersonneHandler.
func NewPersonneHandler(personnes *services.PersonneService) *PersonneHandler {
	return &PersonneHandler{personnes: personnes}
}

type personneRequest struct {
	Name             string   `json:"name" validate:"required"`
	Age              int      `json:"age" validate:"required,gt=0"`
	ReligiousLevel   int      `json:"religious_level" validate:"required,min=1,max=5"`
	CenterOfInterest []string `json:"center_of_interest"`
	Phone            *string  `json:"phone" validate:"omitempty,max=20"`
}

func (r personneRequest) toInput() services.PersonneInput {
	return services.PersonneInput{
		Name:             r.Name,
		Age:              r.Age,
		ReligiousLevel:   r.ReligiousLevel,
		CenterOfInterest: r.CenterOfInterest,
		Phone:            r.Phone,
	}
}

// List returns every profile, newest first.
func (h *PersonneHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, h.personnes.List(c.Request.Context()))
}

// Get returns a single profile.
func (h *PersonneHandler) Get(c *gin.Context) {
	personne, err := h.personnes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, personne)
}

// Create adds a profile.
func (h *PersonneHandler) Create(c *gin.Context) {
	var req personneRequest
	if err := bindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	personne, err := h.personnes.Create(c.Request.Context(), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, personne)
}

// Update replaces a profile's editable fields.
func (h *PersonneHandler) Update(c *gin.Context) {
	var req personneRequest
	if err := bindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	personne, err := h.personnes.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, personne)
}

// Delete removes a profile and, through the cascade, its meetings.
func (h *PersonneHandler) Delete(c *gin.Context) {
	if err := h.personnes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Personne supprimée")
}
