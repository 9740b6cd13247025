package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	pricingdomain "github.com/lodgeworks/tesoro/internal/pricing/domain"
	"github.com/shopspring/decimal"
)

type addPriceRequest struct {
	StartPeriod string          `json:"start_period"`
	Amount      decimal.Decimal `json:"amount"`
}

type updatePriceRequest struct {
	OldStartPeriod string          `json:"old_start_period"`
	StartPeriod    string          `json:"start_period"`
	Amount         decimal.Decimal `json:"amount"`
}

func (s *Server) ListPriceHistory(c *gin.Context) {
	resp, err := s.pricingSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AddPriceHistory(c *gin.Context) {
	var req addPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.pricingSvc.Add(c.Request.Context(), pricingdomain.AddRequest{
		StartPeriod: strings.TrimSpace(req.StartPeriod),
		Amount:      req.Amount,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) UpdatePriceHistory(c *gin.Context) {
	var req updatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.pricingSvc.Update(c.Request.Context(), pricingdomain.UpdateRequest{
		OldStartPeriod: strings.TrimSpace(req.OldStartPeriod),
		StartPeriod:    strings.TrimSpace(req.StartPeriod),
		Amount:         req.Amount,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) RemovePriceHistory(c *gin.Context) {
	startPeriod := strings.TrimSpace(c.Param("start_period"))
	if err := s.pricingSvc.Remove(c.Request.Context(), startPeriod); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func isPricingValidationError(err error) bool {
	switch err {
	case pricingdomain.ErrInvalidLodge,
		pricingdomain.ErrInvalidPeriod,
		pricingdomain.ErrInvalidAmount,
		pricingdomain.ErrEmptyHistory:
		return true
	default:
		return false
	}
}
