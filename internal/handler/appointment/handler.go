package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medrec/hospital-api/internal/handler"
	"github.com/medrec/hospital-api/internal/model"
	"github.com/medrec/hospital-api/internal/service/appointment"
	apperrors "github.com/medrec/hospital-api/pkg/errors"
)

type Handler struct {
	svc *appointment.Service
}

func NewHandler(svc *appointment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.Create)
		appointments.GET("", h.List)
		appointments.GET("/:id", h.Get)
		appointments.PUT("/:id", h.Update)
		appointments.DELETE("/:id", h.Delete)
	}

	r.GET("/patients/:id/appointments", h.ListByPatient)
	r.GET("/doctors/:id/appointments", h.ListByDoctor)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	appt, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := handler.IDParam(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	appt, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

func (h *Handler) List(c *gin.Context) {
	appointments, err := h.svc.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func (h *Handler) ListByPatient(c *gin.Context) {
	id, err := handler.IDParam(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	appointments, err := h.svc.ListByPatient(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func (h *Handler) ListByDoctor(c *gin.Context) {
	id, err := handler.IDParam(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	appointments, err := h.svc.ListByDoctor(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := handler.IDParam(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	appt, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
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
