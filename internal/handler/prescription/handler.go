package prescription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medrec/hospital-api/internal/handler"
	"github.com/medrec/hospital-api/internal/model"
	"github.com/medrec/hospital-api/internal/service/prescription"
	apperrors "github.com/medrec/hospital-api/pkg/errors"
)

type Handler struct {
	svc *prescription.Service
}

func NewHandler(svc *prescription.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.POST("", h.Create)
		prescriptions.GET("", h.List)
		prescriptions.GET("/:id", h.Get)
		prescriptions.PUT("/:id", h.Update)
		prescriptions.DELETE("/:id", h.Delete)
	}

	r.GET("/patients/:id/prescriptions", h.ListByPatient)
	r.GET("/doctors/:id/prescriptions", h.ListByDoctor)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	p, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := handler.IDParam(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) List(c *gin.Context) {
	prescriptions, err := h.svc.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, prescriptions)
}

func (h *Handler) ListByPatient(c *gin.Context) {
	id, err := handler.IDParam(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	prescriptions, err := h.svc.ListByPatient(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, prescriptions)
}

func (h *Handler) ListByDoctor(c *gin.Context) {
	id, err := handler.IDParam(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	prescriptions, err := h.svc.ListByDoctor(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, prescriptions)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := handler.IDParam(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req model.UpdatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := handler.IDParam(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
