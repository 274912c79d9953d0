package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medrec/hospital-api/internal/handler"
	"github.com/medrec/hospital-api/internal/model"
	"github.com/medrec/hospital-api/internal/service/doctor"
	apperrors "github.com/medrec/hospital-api/pkg/errors"
)

type Handler struct {
	svc *doctor.Service
}

func NewHandler(svc *doctor.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.POST("", h.Create)
		doctors.GET("", h.List)
		doctors.GET("/:id", h.Get)
		doctors.PUT("/:id", h.Update)
		doctors.DELETE("/:id", h.Delete)
	}

	r.GET("/departments/:id/doctors", h.ListByDepartment)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	doc, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := handler.IDParam(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	doc, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *Handler) List(c *gin.Context) {
	doctors, err := h.svc.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doctors)
}

func (h *Handler) ListByDepartment(c *gin.Context) {
	id, err := handler.IDParam(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	doctors, err := h.svc.ListByDepartment(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doctors)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := handler.IDParam(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	doc, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
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
