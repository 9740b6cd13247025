package server

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lodgeworks/tesoro/internal/lodgectx"
	"go.uber.org/zap"
)

const (
	HeaderLodge     = "X-Lodge-ID"
	HeaderRequestID = "X-Request-ID"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Set("request_id", id)
		c.Next()
	}
}

func AccessLog(log *zap.Logger) gin.HandlerFunc {
	access := log.Named("http.access")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		access.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}

// LodgeContext resolves the lodge every scoped route operates on: the
// X-Lodge-ID header when present, otherwise the configured default lodge.
func (s *Server) LodgeContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		var lodgeID snowflake.ID

		if raw := strings.TrimSpace(c.GetHeader(HeaderLodge)); raw != "" {
			parsed, err := snowflake.ParseString(raw)
			if err != nil {
				AbortWithError(c, newValidationError("lodge_id", "invalid_lodge", "invalid lodge id"))
				return
			}
			lodgeID = parsed
		} else if s.cfg.DefaultLodgeID != 0 {
			lodgeID = snowflake.ID(s.cfg.DefaultLodgeID)
		} else {
			lodges, err := s.lodgeSvc.List(c.Request.Context())
			if err != nil {
				AbortWithError(c, err)
				return
			}
			for _, lodge := range lodges {
				if lodge.IsDefault {
					lodgeID = lodge.ID
					break
				}
			}
		}

		if lodgeID == 0 {
			AbortWithError(c, newValidationError("lodge_id", "invalid_lodge", "no lodge resolved"))
			return
		}

		ctx := lodgectx.WithLodgeID(c.Request.Context(), lodgeID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
