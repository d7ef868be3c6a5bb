package diagnosis

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medrec/patient-api/internal/handler"
	"github.com/medrec/patient-api/internal/service/diagnosis"
	apperrors "github.com/medrec/patient-api/pkg/errors"
)

type Handler struct {
	service *diagnosis.Service
}

func NewHandler(service *diagnosis.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	diagnoses := r.Group("/diagnoses")
	{
		diagnoses.GET("", h.ListDiagnoses)
		diagnoses.GET("/:code", h.GetDiagnosis)
	}
}

func (h *Handler) ListDiagnoses(c *gin.Context) {
	diagnoses, err := h.service.ListDiagnoses(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(diagnoses))
}

func (h *Handler) GetDiagnosis(c *gin.Context) {
	diagnosis, err := h.service.GetDiagnosis(c.Request.Context(), c.Param("code"))
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("diagnosis not found"))
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(diagnosis))
}
