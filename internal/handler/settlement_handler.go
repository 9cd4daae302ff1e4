package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"iso-settlement-api/internal/constant"
	"iso-settlement-api/internal/dispatch"
	"iso-settlement-api/internal/dto"
	"iso-settlement-api/internal/settlement"
	"iso-settlement-api/internal/utils"
)

type SettlementHandler struct {
	svc        *settlement.Service
	dispatcher *dispatch.Dispatcher
}

func NewSettlementHandler(svc *settlement.Service, dispatcher *dispatch.Dispatcher) *SettlementHandler {
	return &SettlementHandler{svc: svc, dispatcher: dispatcher}
}

// ApplyBatch folds one feed batch into its settlement cycle. Replays are
// harmless: duplicates are counted and contribute nothing.
func (h *SettlementHandler) ApplyBatch(c *gin.Context) {
	var req dto.ApplyBatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, err.Error()))
		return
	}
	resp, err := h.svc.ApplyBatch(req)
	if err != nil {
		switch {
		case errors.Is(err, settlement.ErrAggregationConflict):
			c.JSON(http.StatusOK, utils.Error(constant.CodeAggregationConflict))
		case errors.Is(err, settlement.ErrSettlementFrozen):
			c.JSON(http.StatusOK, utils.Error(constant.CodeSettlementFrozen))
		case errors.Is(err, settlement.ErrCustomerInvalid):
			c.JSON(http.StatusOK, utils.Error(constant.CodeCustomerInactive))
		default:
			c.JSON(http.StatusOK, utils.Error(constant.CodeInternalError))
		}
		return
	}
	c.JSON(http.StatusOK, utils.Success(resp))
}

// Get returns one settlement with its merchant breakdown. The cycle date
// selects the monthly table; defaults to today.
func (h *SettlementHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
		return
	}
	date, ok := parseDate(c)
	if !ok {
		return
	}
	view, err := h.svc.GetView(id, date)
	if err != nil {
		c.JSON(http.StatusOK, utils.Error(constant.CodeInternalError))
		return
	}
	if view == nil {
		c.JSON(http.StatusOK, utils.Error(constant.CodeSettlementNotFound))
		return
	}
	c.JSON(http.StatusOK, utils.Success(view))
}

// Dispatch creates the disbursement orders for one merchant settlement.
func (h *SettlementHandler) Dispatch(c *gin.Context) {
	msID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
		return
	}
	date, ok := parseDate(c)
	if !ok {
		return
	}
	resp, err := h.dispatcher.Dispatch(msID, date)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrOrderLocked):
			c.JSON(http.StatusOK, utils.Error(constant.CodeOrderLocked))
		case errors.Is(err, dispatch.ErrRoutingNotFound):
			c.JSON(http.StatusOK, utils.Error(constant.CodeRoutingNotFound))
		case errors.Is(err, dispatch.ErrNothingToDispatch):
			c.JSON(http.StatusOK, utils.Error(constant.CodeNothingToDispatch))
		case errors.Is(err, dispatch.ErrSettlementNotFound):
			c.JSON(http.StatusOK, utils.Error(constant.CodeSettlementNotFound))
		default:
			c.JSON(http.StatusOK, utils.Error(constant.CodeInternalError))
		}
		return
	}
	c.JSON(http.StatusOK, utils.Success(resp))
}

// parseDate reads the cycle date query param, defaulting to today. Writes
// the error response itself when the value is malformed.
func parseDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, "date must be YYYY-MM-DD"))
		return time.Time{}, false
	}
	return date, true
}
