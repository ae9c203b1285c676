package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Hbollas/LashTechBooking/internal/httperr"
	"github.com/Hbollas/LashTechBooking/internal/httpresp"
	"github.com/Hbollas/LashTechBooking/internal/middleware"
	"github.com/Hbollas/LashTechBooking/internal/models"
	ucAppointment "github.com/Hbollas/LashTechBooking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler serves the back-office appointment endpoints.
type AppointmentHandler struct {
	list    *ucAppointment.ListAppointments
	approve *ucAppointment.ApproveAppointment
	cancel  *ucAppointment.CancelAppointment
	deposit *ucAppointment.ToggleDeposit
}

func NewAppointmentHandler(
	list *ucAppointment.ListAppointments,
	approve *ucAppointment.ApproveAppointment,
	cancel *ucAppointment.CancelAppointment,
	deposit *ucAppointment.ToggleDeposit,
) *AppointmentHandler {
	return &AppointmentHandler{
		list:    list,
		approve: approve,
		cancel:  cancel,
		deposit: deposit,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	out, err := h.list.Execute(
		c.Request.Context(),
		ucAppointment.ListAppointmentsInput{
			From:   c.Query("from"),
			To:     c.Query("to"),
			Status: c.Query("status"),
		},
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// STATE CHANGES
// ======================================================

type transitionFunc func(ctx context.Context, userID *uint, id uuid.UUID) (*models.Appointment, error)

func (h *AppointmentHandler) Approve(c *gin.Context) {
	h.transition(c, h.approve.Execute)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cancel.Execute)
}

func (h *AppointmentHandler) ToggleDeposit(c *gin.Context) {
	h.transition(c, h.deposit.Execute)
}

func (h *AppointmentHandler) transition(c *gin.Context, fn transitionFunc) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ap, err := fn(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
