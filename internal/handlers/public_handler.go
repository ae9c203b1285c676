package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/Hbollas/LashTechBooking/internal/domain/appointment"
	"github.com/Hbollas/LashTechBooking/internal/dto"
	"github.com/Hbollas/LashTechBooking/internal/httperr"
	"github.com/Hbollas/LashTechBooking/internal/httpresp"
	ucAppointment "github.com/Hbollas/LashTechBooking/internal/usecase/appointment"
	"github.com/Hbollas/LashTechBooking/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	listServices   *ucAppointment.ListActiveServices
	availability   *ucAppointment.ListAvailableSlots
	book           *ucAppointment.BookAppointment
	getAppointment *ucAppointment.GetAppointment
	loc            *time.Location
}

func NewPublicHandler(
	listServices *ucAppointment.ListActiveServices,
	availability *ucAppointment.ListAvailableSlots,
	book *ucAppointment.BookAppointment,
	getAppointment *ucAppointment.GetAppointment,
	loc *time.Location,
) *PublicHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &PublicHandler{
		listServices:   listServices,
		availability:   availability,
		book:           book,
		getAppointment: getAppointment,
		loc:            loc,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ServiceID        string `json:"service_id" binding:"required,uuid"`
	Date             string `json:"date" binding:"required"` // YYYY-MM-DD
	Time             string `json:"time" binding:"required"` // HH:MM
	CustomerName     string `json:"customer_name"`
	CustomerEmail    string `json:"customer_email"`
	CustomerPhone    string `json:"customer_phone"`
	PaymentReference string `json:"payment_reference" binding:"max=128"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	services, err := h.listServices.Execute(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, services)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	serviceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required.")
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			ServiceID: serviceID,
			Date:      date,
		},
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"service_id": serviceID,
		"date":       date,
		"slots":      slots,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Service, date and time are required.")
		return
	}

	ap, err := h.book.Execute(
		c.Request.Context(),
		ucAppointment.BookAppointmentInput{
			ServiceID: uuid.MustParse(req.ServiceID),
			Date:      req.Date,
			Time:      req.Time,
			Customer: validators.Customer{
				Name:  req.CustomerName,
				Email: req.CustomerEmail,
				Phone: req.CustomerPhone,
			},
			PaymentReference: req.PaymentReference,
		},
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentPublicDTO(*ap, h.loc))
}

////////////////////////////////////////////////////////
// CONFIRMATION PAGE DATA
////////////////////////////////////////////////////////

func (h *PublicHandler) GetAppointment(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.getAppointment.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentPublicDTO(*ap, h.loc))
}
