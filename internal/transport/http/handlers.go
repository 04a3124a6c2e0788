package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mkravets/codeshare-server/internal/core"
	"github.com/mkravets/codeshare-server/internal/store"
)

// RoomHandlers provides read-only HTTP handlers for room inspection.
type RoomHandlers struct {
	hub          *core.Hub
	store        store.Store
	historyLimit int
	log          *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(hub *core.Hub, st store.Store, historyLimit int, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		hub:          hub,
		store:        st,
		historyLimit: historyLimit,
		log:          logger,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MembersResponse lists a room's current members in join order.
type MembersResponse struct {
	Room    string   `json:"room"`
	Members []string `json:"members"`
}

// RunResponse represents one recorded execution run.
type RunResponse struct {
	ID        int64  `json:"id"`
	Language  string `json:"language"`
	Version   string `json:"version"`
	Result    string `json:"result"`
	CreatedAt string `json:"created_at"`
}

// Members handles GET /api/rooms/:id/members.
func (h *RoomHandlers) Members(c *gin.Context) {
	roomID := c.Param("id")
	c.JSON(http.StatusOK, MembersResponse{
		Room:    roomID,
		Members: h.hub.Members(roomID),
	})
}

// Runs handles GET /api/rooms/:id/runs.
func (h *RoomHandlers) Runs(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "run history disabled"})
		return
	}

	roomID := c.Param("id")
	limit := h.historyLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	runs, err := h.store.RecentRuns(c.Request.Context(), roomID, limit)
	if err != nil {
		h.log.Error().Err(err).Str("room", roomID).Msg("failed to load run history")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	out := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, RunResponse{
			ID:        run.ID,
			Language:  run.Language,
			Version:   run.Version,
			Result:    run.Result,
			CreatedAt: run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	c.JSON(http.StatusOK, out)
}
