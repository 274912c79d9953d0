package department

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medrec/hospital-api/internal/handler"
	"github.com/medrec/hospital-api/internal/model"
	"github.com/medrec/hospital-api/internal/service/department"
	apperrors "github.com/medrec/hospital-api/pkg/errors"
)

type Handler struct {
	svc *department.Service
}

func NewHandler(svc *department.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	departments := r.Group("/departments")
	{
		departments.POST("", h.Create)
		departments.GET("", h.List)
		departments.GET("/:id", h.Get)
		departments.PUT("/:id", h.Update)
		departments.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	dept, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dept)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := handler.IDParam(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	dept, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dept)
}

func (h *Handler) List(c *gin.Context) {
	departments, err := h.svc.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, departments)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := handler.IDParam(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req model.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	dept, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dept)
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
