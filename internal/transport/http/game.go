package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/service/game"
)

type GameSession interface {
	Start(player1Color, player2Color string) (domain.Snapshot, error)
	DropPiece(ctx context.Context, column int) (game.MoveResult, error)
	Snapshot() (domain.Snapshot, bool)
}

type GameHandler struct {
	Session GameSession
}

func NewGameHandler(s GameSession) *GameHandler {
	return &GameHandler{Session: s}
}

func (h *GameHandler) Register(rg gin.IRoutes) {
	rg.GET("/api/health", h.Health)
	rg.GET("/api/game", h.GetGame)
	rg.POST("/api/game/start", h.StartGame)
	rg.POST("/api/game/drop", h.DropPiece)
}

type startRequest struct {
	Player1Color string `json:"player1Color"`
	Player2Color string `json:"player2Color"`
}

type dropRequest struct {
	Column *int `json:"column" binding:"required"`
}

func (h *GameHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetGame returns the current board for rendering
func (h *GameHandler) GetGame(c *gin.Context) {
	snap, ok := h.Session.Snapshot()
	if !ok {
		writeError(c, game.ErrNoGame)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// StartGame is the start button: a new board with the chosen colors
func (h *GameHandler) StartGame(c *gin.Context) {
	var req startRequest
	// an empty body means default colors
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	snap, err := h.Session.Start(req.Player1Color, req.Player2Color)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

func (h *GameHandler) DropPiece(c *gin.Context) {
	var req dropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	result, err := h.Session.DropPiece(c.Request.Context(), *req.Column)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidColumn):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, game.ErrNoGame):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrInputPaused):
		status = http.StatusTooManyRequests
	default:
		log.Error().Str("component", "http").Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
