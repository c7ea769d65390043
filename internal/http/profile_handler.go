package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-chat/internal/domain"
	"hospital-chat/internal/profile"
)

// ProfileHandler mantiene dependencias para endpoints del perfil de usuario.
type ProfileHandler struct {
	logger *zap.Logger
	store  *profile.Store
}

func NewProfileHandler(logger *zap.Logger, store *profile.Store) *ProfileHandler {
	return &ProfileHandler{logger: logger, store: store}
}

// profileResponse agrega el avatar derivado al registro persistido.
type profileResponse struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Accent domain.Accent `json:"accent"`
	Avatar string        `json:"avatar"`
}

func toProfileResponse(p domain.Profile) profileResponse {
	return profileResponse{
		ID:     p.ID,
		Name:   p.Name,
		Accent: p.Accent,
		Avatar: p.AvatarURL(),
	}
}

// GetProfile maneja GET /profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"profile": toProfileResponse(h.store.Profile())})
}

// UpdateProfile maneja PATCH /profile. Acepta campos parciales; el acento se
// elige por indice dentro de la paleta fija.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		Name   *string `json:"name"`
		Accent *int    `json:"accent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Name == nil && req.Accent == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	input := profile.UpdateInput{Name: req.Name}
	if req.Accent != nil {
		accent, err := domain.AccentAt(*req.Accent)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "accent index out of range"})
			return
		}
		input.Accent = &accent
	}

	updated, err := h.store.Update(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, profile.ErrPersistFailed) {
			// El cambio aplico en memoria: se devuelve con advertencia.
			c.JSON(http.StatusOK, gin.H{
				"profile": toProfileResponse(updated),
				"warning": "change saved in memory only and may not survive a restart",
			})
			return
		}
		h.logger.Error("update profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": toProfileResponse(updated)})
}

// ListAccents maneja GET /accents: expone la paleta para el selector de la UI.
func (h *ProfileHandler) ListAccents(c *gin.Context) {
	accents := make([]domain.Accent, 0, domain.PaletteSize())
	for i := 0; i < domain.PaletteSize(); i++ {
		accent, _ := domain.AccentAt(i)
		accents = append(accents, accent)
	}
	c.JSON(http.StatusOK, gin.H{"accents": accents})
}
