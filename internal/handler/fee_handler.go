package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"iso-settlement-api/internal/constant"
	"iso-settlement-api/internal/dto"
	"iso-settlement-api/internal/fee"
	"iso-settlement-api/internal/utils"
)

type FeeHandler struct {
	svc *fee.Service
}

func NewFeeHandler(svc *fee.Service) *FeeHandler {
	return &FeeHandler{svc: svc}
}

// Resolve returns the effective pricing for one transaction shape.
func (h *FeeHandler) Resolve(c *gin.Context) {
	var req dto.ResolveFeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, err.Error()))
		return
	}
	resolved, err := h.svc.ResolveForMerchant(req)
	if err != nil {
		c.JSON(http.StatusOK, utils.Error(feeErrorCode(err)))
		return
	}
	c.JSON(http.StatusOK, utils.Success(resolved))
}

// Tree returns the merchant's effective fee tree snapshot.
func (h *FeeHandler) Tree(c *gin.Context) {
	merchantID, err := strconv.ParseUint(c.Param("merchantId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
		return
	}
	tree, err := h.svc.LoadTreeForMerchant(merchantID)
	if err != nil {
		c.JSON(http.StatusOK, utils.Error(feeErrorCode(err)))
		return
	}
	c.JSON(http.StatusOK, utils.Success(tree))
}

func feeErrorCode(err error) int {
	switch {
	case errors.Is(err, fee.ErrFeeRootNotFound):
		return constant.CodeFeeRootNotFound
	case errors.Is(err, fee.ErrUnknownBrand):
		return constant.CodeUnknownBrand
	case errors.Is(err, fee.ErrUnknownProductType):
		return constant.CodeUnknownProductType
	default:
		return constant.CodeInternalError
	}
}
