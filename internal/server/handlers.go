package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// chatRequest is the POST /api/chat body. A missing session_id mints a
// fresh session, echoed back in the X-Session-ID header.
type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	c.Header("X-Session-ID", sessionID)

	resp, err := s.pipeline.Handle(c.Request.Context(), sessionID, req.Message)
	if err != nil {
		s.logger.Error("chat turn failed", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusBadGateway, errorResponse{Error: "upstream failure, try again"})
		return
	}

	if resp.Denied {
		status := http.StatusBadRequest
		if !resp.RateLimit.Allowed {
			status = http.StatusTooManyRequests
		}
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
