package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"iso-settlement-api/internal/constant"
	"iso-settlement-api/internal/dto"
	"iso-settlement-api/internal/solicitation"
	"iso-settlement-api/internal/utils"
)

type SolicitationHandler struct {
	svc *solicitation.Service
}

func NewSolicitationHandler(svc *solicitation.Service) *SolicitationHandler {
	return &SolicitationHandler{svc: svc}
}

// Create opens a pricing-change proposal in PENDING.
func (h *SolicitationHandler) Create(c *gin.Context) {
	var req dto.CreateSolicitationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, err.Error()))
		return
	}
	id, err := h.svc.Create(req)
	if err != nil {
		c.JSON(http.StatusOK, utils.Error(solicitationErrorCode(err)))
		return
	}
	c.JSON(http.StatusOK, utils.Success(gin.H{"id": id}))
}

// Get returns one solicitation row.
func (h *SolicitationHandler) Get(c *gin.Context) {
	id, ok := solicitationID(c)
	if !ok {
		return
	}
	row, err := h.svc.Get(id)
	if err != nil {
		c.JSON(http.StatusOK, utils.Error(constant.CodeInternalError))
		return
	}
	if row == nil {
		c.JSON(http.StatusOK, utils.Error(constant.CodeSolicitationNotFound))
		return
	}
	c.JSON(http.StatusOK, utils.Success(row))
}

// RequestDocuments moves PENDING -> SEND_DOCUMENTS.
func (h *SolicitationHandler) RequestDocuments(c *gin.Context) {
	h.simpleTransition(c, h.svc.RequestDocuments)
}

// Update reworks the proposal and sends it back to PENDING.
func (h *SolicitationHandler) Update(c *gin.Context) {
	id, ok := solicitationID(c)
	if !ok {
		return
	}
	var req dto.UpdateSolicitationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, err.Error()))
		return
	}
	if err := h.svc.Update(id, req); err != nil {
		c.JSON(http.StatusOK, utils.Error(solicitationErrorCode(err)))
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}

// Approve moves PENDING -> APPROVED.
func (h *SolicitationHandler) Approve(c *gin.Context) {
	h.simpleTransition(c, h.svc.Approve)
}

// Complete moves APPROVED -> COMPLETED.
func (h *SolicitationHandler) Complete(c *gin.Context) {
	h.simpleTransition(c, h.svc.Complete)
}

// Reject cancels the solicitation, recording the reason.
func (h *SolicitationHandler) Reject(c *gin.Context) {
	id, ok := solicitationID(c)
	if !ok {
		return
	}
	var req dto.RejectSolicitationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, err.Error()))
		return
	}
	if err := h.svc.Reject(id, req.Reason); err != nil {
		c.JSON(http.StatusOK, utils.Error(solicitationErrorCode(err)))
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}

// Promote copies an approved proposal over a production fee root.
func (h *SolicitationHandler) Promote(c *gin.Context) {
	id, ok := solicitationID(c)
	if !ok {
		return
	}
	var req dto.PromoteSolicitationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, err.Error()))
		return
	}
	if err := h.svc.Promote(id, req.TargetFeeRootID); err != nil {
		c.JSON(http.StatusOK, utils.Error(solicitationErrorCode(err)))
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}

func (h *SolicitationHandler) simpleTransition(c *gin.Context, fn func(uint64) error) {
	id, ok := solicitationID(c)
	if !ok {
		return
	}
	if err := fn(id); err != nil {
		c.JSON(http.StatusOK, utils.Error(solicitationErrorCode(err)))
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}

func solicitationID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
		return 0, false
	}
	return id, true
}

func solicitationErrorCode(err error) int {
	switch {
	case errors.Is(err, solicitation.ErrNotFound):
		return constant.CodeSolicitationNotFound
	case errors.Is(err, solicitation.ErrEmptyTree):
		return constant.CodeEmptyBrandTree
	case errors.Is(err, solicitation.ErrNotApproved):
		return constant.CodeInvalidTransition
	case errors.Is(err, solicitation.ErrInvalidTransition):
		return constant.CodeInvalidTransition
	default:
		return constant.CodeInternalError
	}
}
