package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	ledgerdomain "github.com/lodgeworks/tesoro/internal/ledger/domain"
	"github.com/shopspring/decimal"
)

type extraFeeRequest struct {
	Period      string          `json:"period"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type recordPaymentRequest struct {
	Period      string          `json:"period"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	Comments    *string         `json:"comments"`
}

func (s *Server) SyncMember(c *gin.Context) {
	ops, err := s.ledgerSvc.SyncMember(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"ops": ops}})
}

func (s *Server) SyncRoster(c *gin.Context) {
	report, err := s.ledgerSvc.SyncRoster(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}

func (s *Server) ApplyExtraFee(c *gin.Context) {
	var req extraFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	report, err := s.ledgerSvc.ApplyExtraFee(c.Request.Context(), ledgerdomain.ExtraFeeRequest{
		Period:      strings.TrimSpace(req.Period),
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}

func (s *Server) ListLedgerEntries(c *gin.Context) {
	resp, err := s.ledgerSvc.ListEntries(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RecordPayment(c *gin.Context) {
	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ledgerSvc.RecordPayment(c.Request.Context(), ledgerdomain.RecordPaymentRequest{
		MemberID:    strings.TrimSpace(c.Param("id")),
		Period:      strings.TrimSpace(req.Period),
		Amount:      req.Amount,
		PaymentDate: strings.TrimSpace(req.PaymentDate),
		Comments:    req.Comments,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteLedgerEntry(c *gin.Context) {
	memberID := strings.TrimSpace(c.Param("id"))
	period := strings.TrimSpace(c.Param("period"))
	if err := s.ledgerSvc.DeleteEntry(c.Request.Context(), memberID, period); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) GetMemberStats(c *gin.Context) {
	var query struct {
		StartPeriod string `form:"start_period"`
		EndPeriod   string `form:"end_period"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ledgerSvc.MemberStats(
		c.Request.Context(),
		strings.TrimSpace(c.Param("id")),
		strings.TrimSpace(query.StartPeriod),
		strings.TrimSpace(query.EndPeriod),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isLedgerValidationError(err error) bool {
	switch err {
	case ledgerdomain.ErrInvalidLodge,
		ledgerdomain.ErrInvalidID,
		ledgerdomain.ErrInvalidPeriod,
		ledgerdomain.ErrInvalidAmount,
		ledgerdomain.ErrInvalidDate,
		ledgerdomain.ErrNoPriceHistory:
		return true
	default:
		return false
	}
}
