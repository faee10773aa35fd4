package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mealmatch/internal/availability"
	"mealmatch/internal/domain"
)

// @Summary Get my weekly availability
// @Description Returns all 14 cells of the caller's week; cells never saved are UNAVAILABLE
// @Tags Availability
// @Produce json
// @Success 200 {object} domain.UserAvailability
// @Failure 401 {object} errorResponseBody
// @Failure 500 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /availability/me [get]
func (h *Handler) getMyAvailability(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	result, err := h.services.Availability.GetSlots(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get availability", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, result)
}

// @Summary Replace my weekly availability
// @Description Stores the full week. Unknown entries are ignored and missing cells become UNAVAILABLE
// @Tags Availability
// @Accept json
// @Produce json
// @Param input body domain.ReplaceAvailabilityDTO true "All slots of the week"
// @Success 200 {object} domain.UserAvailability
// @Failure 400 {object} errorResponseBody
// @Failure 401 {object} errorResponseBody
// @Failure 500 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /availability/me [put]
func (h *Handler) replaceMyAvailability(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.ReplaceAvailabilityDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid availability payload", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	result, err := h.services.Availability.ReplaceSlots(c.Request.Context(), userID, req.Slots)
	if err != nil {
		h.logger.Error("failed to replace availability", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, result)
}

// @Summary Set one cell of my week
// @Tags Availability
// @Accept json
// @Produce json
// @Param input body domain.UpdateCellDTO true "Cell and status"
// @Success 200 {object} domain.UserAvailability
// @Failure 400 {object} errorResponseBody
// @Failure 401 {object} errorResponseBody
// @Failure 500 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /availability/me/cells [patch]
func (h *Handler) updateMyCell(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.UpdateCellDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "invalid request body")
		return
	}

	result, err := h.services.Availability.UpdateCell(c.Request.Context(), userID, req)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	successResponse(c, http.StatusOK, result)
}

// @Summary Toggle one cell of my week
// @Tags Availability
// @Accept json
// @Produce json
// @Param input body domain.ToggleCellDTO true "Cell"
// @Success 200 {object} domain.UserAvailability
// @Failure 400 {object} errorResponseBody
// @Failure 401 {object} errorResponseBody
// @Failure 500 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /availability/me/cells/toggle [post]
func (h *Handler) toggleMyCell(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.ToggleCellDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "invalid request body")
		return
	}

	result, err := h.services.Availability.ToggleCell(c.Request.Context(), userID, req)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	successResponse(c, http.StatusOK, result)
}

// @Summary Export my availability as iCalendar
// @Tags Availability
// @Produce text/calendar
// @Success 200 {string} string
// @Failure 401 {object} errorResponseBody
// @Failure 500 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /availability/me/calendar.ics [get]
func (h *Handler) exportMyCalendar(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	data, err := h.services.Availability.ExportCalendar(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to export calendar", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="availability.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// @Summary Get pair availability with a partner
// @Description One fact per recurring cell: whether the caller and the partner are available
// @Tags Availability
// @Produce json
// @Param partnerId path int true "Partner user ID"
// @Success 200 {array} domain.PairAvailabilitySlot
// @Failure 400 {object} errorResponseBody
// @Failure 401 {object} errorResponseBody
// @Failure 500 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /availability/pair/{partnerId} [get]
func (h *Handler) getPairAvailability(c *gin.Context) {
	userID, partnerID, ok := h.pairParams(c)
	if !ok {
		return
	}

	slots, err := h.services.Availability.GetPairSlots(c.Request.Context(), userID, partnerID)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	successResponse(c, http.StatusOK, slots)
}

// @Summary Get the next 7 days of pair availability
// @Description Dates from today in the service timezone, two cells per day
// @Tags Availability
// @Produce json
// @Param partnerId path int true "Partner user ID"
// @Success 200 {object} domain.PairWindow
// @Failure 400 {object} errorResponseBody
// @Failure 401 {object} errorResponseBody
// @Failure 500 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /availability/pair/{partnerId}/week [get]
func (h *Handler) getPairWeek(c *gin.Context) {
	userID, partnerID, ok := h.pairParams(c)
	if !ok {
		return
	}

	window, err := h.services.Availability.GetPairWindow(c.Request.Context(), userID, partnerID)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	successResponse(c, http.StatusOK, window)
}

// @Summary Label tables
// @Description Display labels for weekdays, time slots, meal time slots and statuses
// @Tags Availability
// @Produce json
// @Success 200 {object} availability.LabelTable
// @Router /availability/labels [get]
func (h *Handler) getLabels(c *gin.Context) {
	successResponse(c, http.StatusOK, availability.Labels())
}

func (h *Handler) pairParams(c *gin.Context) (int64, int64, bool) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return 0, 0, false
	}

	partnerID, err := strconv.ParseInt(c.Param("partnerId"), 10, 64)
	if err != nil || partnerID <= 0 {
		badRequestResponse(c, "invalid partner id")
		return 0, 0, false
	}

	return userID, partnerID, true
}

func (h *Handler) handleAvailabilityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSelfPair),
		errors.Is(err, domain.ErrInvalidWeekday),
		errors.Is(err, domain.ErrInvalidTimeSlot),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrReservedStatus):
		badRequestResponse(c, err.Error())
	default:
		h.logger.Error("availability request failed", zap.Error(err))
		internalServerErrorResponse(c)
	}
}
