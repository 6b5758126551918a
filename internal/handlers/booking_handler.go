package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/services-marketplace/internal/domain/booking"
	"github.com/BruksfildServices01/services-marketplace/internal/dto"
	"github.com/BruksfildServices01/services-marketplace/internal/httperr"
	"github.com/BruksfildServices01/services-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/services-marketplace/internal/middleware"
	ucBooking "github.com/BruksfildServices01/services-marketplace/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC     *ucBooking.CreateBooking
	transitionUC *ucBooking.TransitionBooking
	getUC        *ucBooking.GetBooking
	listUC       *ucBooking.ListBookings
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	transitionUC *ucBooking.TransitionBooking,
	getUC *ucBooking.GetBooking,
	listUC *ucBooking.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		createUC:     createUC,
		transitionUC: transitionUC,
		getUC:        getUC,
		listUC:       listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ProviderID  uint      `json:"provider_id" binding:"required"`
	ServiceID   uint      `json:"service_id" binding:"required"`
	BookingDate time.Time `json:"booking_date" binding:"required"`
	Notes       string    `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	role, _ := domain.ParseRole(c.MustGet(middleware.ContextUserRole).(string))

	if role != domain.RoleCustomer {
		httperr.Forbidden(c, "forbidden", "Apenas clientes criam agendamentos.")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		CustomerID:  callerID,
		ProviderID:  req.ProviderID,
		ServiceID:   req.ServiceID,
		BookingDate: req.BookingDate,
		Notes:       req.Notes,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(201, b)
}

// ======================================================
// GET
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	role, _ := domain.ParseRole(c.MustGet(middleware.ContextUserRole).(string))

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Id inválido.")
		return
	}

	b, err := h.getUC.Execute(c.Request.Context(), callerID, role, uint(id))
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(200, b)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	role, _ := domain.ParseRole(c.MustGet(middleware.ContextUserRole).(string))

	bookings, err := h.listUC.Execute(c.Request.Context(), callerID, role, c.Query("role"))
	if err != nil {
		writeBookingError(c, err)
		return
	}

	items := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, dto.BookingListDTO{
			ID:           b.ID,
			ServiceID:    b.ServiceID,
			ServiceTitle: b.Service.Title,
			BookingDate:  b.BookingDate,
			Status:       b.Status,
			CreatedAt:    b.CreatedAt,
		})
	}

	httpresp.List(c, items)
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	role, ok := domain.ParseRole(c.MustGet(middleware.ContextUserRole).(string))
	if !ok {
		httperr.Forbidden(c, "forbidden", "Role desconhecida.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Id inválido.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	target, ok := domain.ParseStatus(req.Status)
	if !ok {
		httperr.BadRequest(c, "invalid_status", "Status desconhecido.")
		return
	}

	b, err := h.transitionUC.Execute(c.Request.Context(), ucBooking.TransitionBookingInput{
		CallerID:   callerID,
		CallerRole: role,
		BookingID:  uint(id),
		Target:     target,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(200, b)
}

// ======================================================
// ERROR MAP
// ======================================================

func writeBookingError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	switch code {
	case "booking_not_found":
		httperr.NotFound(c, code, "Agendamento não encontrado.")
	case "provider_not_found":
		httperr.NotFound(c, code, "Prestador não encontrado.")
	case "service_mismatch":
		httperr.NotFound(c, code, "Serviço não pertence ao prestador.")
	case "provider_not_eligible":
		httperr.BadRequest(c, code, "Prestador não está verificado.")
	case "illegal_transition":
		httperr.BadRequest(c, code, "Transição de status inválida.")
	case "invalid_scope":
		httperr.BadRequest(c, code, "Escopo inválido.")
	case "forbidden":
		httperr.Forbidden(c, code, "Sem permissão para esta ação.")
	case "conflict":
		httperr.Conflict(c, code, "Conflito de atualização, tente novamente.")
	default:
		httperr.Internal(c, code, "Erro interno.")
	}
}
