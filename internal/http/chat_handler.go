package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-chat/internal/chat"
)

// ChatHandler mantiene dependencias para endpoints de sesiones y mensajes.
type ChatHandler struct {
	logger  *zap.Logger
	manager *chat.Manager
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, manager *chat.Manager) *ChatHandler {
	return &ChatHandler{logger: logger, manager: manager}
}

// CreateSession maneja POST /session.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	session := h.manager.Create()
	c.JSON(http.StatusCreated, gin.H{
		"session_id": session.ID,
		"messages":   session.Messages(),
	})
}

// PostMessage maneja POST /session/:id/message. Devuelve 202: el mensaje del
// usuario queda pending y la respuesta remota llega al log por polling.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	msg, err := session.Submit(req.Text)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "message text is empty"})
		return
	case errors.Is(err, chat.ErrSessionClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "session closed"})
		return
	case err != nil:
		h.logger.Error("submit failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not submit message"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":   msg,
		"composing": session.Composing(),
	})
}

// ListMessages maneja GET /session/:id/messages.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"messages":  session.Messages(),
		"composing": session.Composing(),
	})
}

// ListAlerts maneja GET /session/:id/alerts. Drena las alertas acumuladas
// para que la UI muestre cada falla una sola vez.
func (h *ChatHandler) ListAlerts(c *gin.Context) {
	alerts, err := h.manager.Alerts(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// CloseSession maneja DELETE /session/:id.
func (h *ChatHandler) CloseSession(c *gin.Context) {
	if err := h.manager.Close(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"closed": true})
}

func (h *ChatHandler) session(c *gin.Context) (*chat.Session, bool) {
	session, err := h.manager.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return session, true
}
