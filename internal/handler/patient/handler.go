package patient

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medrec/patient-api/internal/handler"
	"github.com/medrec/patient-api/internal/service/patient"
	"github.com/medrec/patient-api/internal/validation"
	apperrors "github.com/medrec/patient-api/pkg/errors"
)

type Handler struct {
	service   patient.PatientService
	validator *validation.Validator
}

func NewHandler(service patient.PatientService, validator *validation.Validator) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.POST("", h.CreatePatient)
		patients.GET("/:id", h.GetPatient)
		patients.POST("/:id/entries", h.AddEntry)
	}
}

// ListPatients returns every patient with sensitive fields stripped.
func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) GetPatient(c *gin.Context) {
	patient, err := h.service.GetPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("patient not found"))
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient))
}

func (h *Handler) CreatePatient(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(apperrors.NewBadRequest("failed to read request body", err))
		return
	}

	input, violations := h.validator.ValidateNewPatient(raw)
	if violations != nil {
		c.JSON(http.StatusBadRequest, handler.NewValidationErrorResponse(violations))
		return
	}

	created, err := h.service.CreatePatient(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) AddEntry(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(apperrors.NewBadRequest("failed to read request body", err))
		return
	}

	input, violations := h.validator.ValidateEntry(raw)
	if violations != nil {
		c.JSON(http.StatusBadRequest, handler.NewValidationErrorResponse(violations))
		return
	}

	updated, err := h.service.AddEntry(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("patient not found"))
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}
