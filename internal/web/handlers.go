package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/games-hub/internal/config"
	"github.com/vovakirdan/games-hub/internal/economy"
	"github.com/vovakirdan/games-hub/internal/hub"
	"github.com/vovakirdan/games-hub/internal/registry"
	"github.com/vovakirdan/games-hub/internal/storage"
)

const (
	playerKey     = "player"
	webPlayer     = "web"
	historyLimit  = 20
	shareText     = "Beat me in Neon Pong ⚡"
	shareTitle    = "Neon Pong"
	historyMaxCap = 100
)

// withPlayer resolves the player from the X-Player header or the player
// query parameter. Browsers without either play as "web"; the local
// terminal namespace is never reachable over HTTP.
func (s *Server) withPlayer() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.GetHeader("X-Player")
		if name == "" {
			name = c.Query("player")
		}
		if name == hub.LocalPlayer {
			name = webPlayer
		}

		p, err := s.hub.Player(c.Request.Context(), name)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Set(playerKey, p)
		c.Next()
	}
}

func currentPlayer(c *gin.Context) *hub.Player {
	return c.MustGet(playerKey).(*hub.Player)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) listGames(c *gin.Context) {
	c.JSON(http.StatusOK, registry.List())
}

func (s *Server) share(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"title": shareTitle, "text": shareText})
}

func (s *Server) getEconomy(c *gin.Context) {
	eco := currentPlayer(c).Economy
	c.JSON(http.StatusOK, gin.H{
		"coins": eco.Coins(),
		"trail": eco.Trail(),
		"owned": eco.Owned(),
	})
}

func (s *Server) getLeaderboard(c *gin.Context) {
	c.JSON(http.StatusOK, currentPlayer(c).Economy.Leaderboard())
}

type historyQuery struct {
	Limit      int    `form:"limit" binding:"omitempty,min=1"`
	Difficulty string `form:"difficulty"`
}

func (s *Server) getHistory(c *gin.Context) {
	store := s.hub.Matches()
	if store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "match history needs the sqlite backend"})
		return
	}

	var q historyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if q.Limit == 0 {
		q.Limit = historyLimit
	}
	q.Limit = min(q.Limit, historyMaxCap)

	p := currentPlayer(c)
	ctx := c.Request.Context()
	matches, err := store.RecentMatches(ctx, p.Name, q.Limit)
	if err != nil {
		s.internalError(c, err)
		return
	}
	stats, err := store.Stats(ctx, storage.MatchFilter{Player: p.Name, Difficulty: q.Difficulty})
	if err != nil {
		s.internalError(c, err)
		return
	}
	if matches == nil {
		matches = []storage.MatchRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches, "stats": stats})
}

func (s *Server) getShop(c *gin.Context) {
	p := currentPlayer(c)
	c.JSON(http.StatusOK, gin.H{
		"coins": p.Economy.Coins(),
		"items": p.Economy.Shop(),
	})
}

type itemRequest struct {
	Item string `json:"item" binding:"required"`
}

func (s *Server) buy(c *gin.Context) {
	s.shopAction(c, (*economy.Economy).Purchase)
}

func (s *Server) equip(c *gin.Context) {
	s.shopAction(c, (*economy.Economy).Equip)
}

func (s *Server) shopAction(c *gin.Context, action func(*economy.Economy, string) error) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eco := currentPlayer(c).Economy
	if err := action(eco, req.Item); err != nil {
		c.JSON(shopStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"coins": eco.Coins(), "trail": eco.Trail()})
}

func shopStatus(err error) int {
	switch {
	case errors.Is(err, economy.ErrUnknownItem):
		return http.StatusNotFound
	case errors.Is(err, economy.ErrInsufficientCoins):
		return http.StatusPaymentRequired
	case errors.Is(err, economy.ErrNotOwned):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, currentPlayer(c).Settings.Values())
}

type difficultyRequest struct {
	Difficulty string `json:"difficulty" binding:"required"`
}

func (s *Server) setDifficulty(c *gin.Context) {
	var req difficultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := config.ParseDifficulty(req.Difficulty)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := currentPlayer(c).Settings
	settings.SetDifficulty(d)
	c.JSON(http.StatusOK, settings.Values())
}

type audioRequest struct {
	Enabled *bool    `json:"enabled"`
	Volume  *float64 `json:"volume"`
}

func (s *Server) setAudio(c *gin.Context) {
	var req audioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := currentPlayer(c).Settings
	if req.Enabled != nil {
		settings.SetAudioEnabled(*req.Enabled)
	}
	if req.Volume != nil {
		settings.SetAudioVolume(*req.Volume)
	}
	c.JSON(http.StatusOK, settings.Values())
}

type themeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=cyan pink lime sunset"`
}

func (s *Server) setTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := currentPlayer(c).Settings
	settings.SetTheme(req.Theme)
	c.JSON(http.StatusOK, settings.Values())
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("internal error: %v", err)})
}
