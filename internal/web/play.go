package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/games-hub/internal/config"
	"github.com/vovakirdan/games-hub/internal/core"
	"github.com/vovakirdan/games-hub/internal/games/pong"
	"github.com/vovakirdan/games-hub/internal/loop"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 1024
	sendBuffer     = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is the websocket envelope in both directions.
type Message struct {
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Client message types.
const (
	MsgKeys        = "keys"         // data: {"up":bool,"down":bool}
	MsgPointerDown = "pointer_down" // data: {"y":number}
	MsgPointerMove = "pointer_move" // data: {"y":number}
	MsgPointerUp   = "pointer_up"
	MsgStart       = "start"
	MsgPause       = "pause"
	MsgDifficulty  = "difficulty" // data: {"difficulty":"hard"}
	MsgResize      = "resize"     // data: {"width":number,"height":number}
)

// Server message types.
const (
	MsgSnapshot = "snapshot"
	MsgError    = "error"
)

type keysData struct {
	Up   bool `json:"up"`
	Down bool `json:"down"`
}

type pointerData struct {
	Y float64 `json:"y"`
}

type difficultyData struct {
	Difficulty string `json:"difficulty"`
}

type resizeData struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// client is one browser playing one session.
type client struct {
	conn    *websocket.Conn
	session *pong.Session
	input   core.InputState
	send    chan []byte
	logger  *log.Logger
}

// play upgrades the request and runs a session until the socket closes.
func (s *Server) play(c *gin.Context) {
	p := currentPlayer(c)

	width, height, err := s.playfield(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := s.hub.Services(p)
	session, err := pong.NewSession(pong.SessionConfig{
		Width:    width,
		Height:   height,
		Config:   s.hub.Config(),
		Economy:  svc.Economy,
		Settings: svc.Settings,
		Recorder: svc.Recorder,
		Logger:   s.logger.With("player", p.Name),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	cl := &client{
		conn:    conn,
		session: session,
		send:    make(chan []byte, sendBuffer),
		logger:  s.logger.With("player", p.Name, "remote", c.ClientIP()),
	}
	cl.logger.Info("player connected")

	ctx, cancel := context.WithCancel(context.Background())
	go cl.writePump(ctx)
	go loop.NewDriver(cl.logger).Run(ctx, s.cfg.FPS, cl.frame)

	cl.readPump()
	cancel()
	cl.logger.Info("player disconnected")
}

func (s *Server) playfield(c *gin.Context) (float64, float64, error) {
	width, height := s.cfg.Width, s.cfg.Height
	if v := c.Query("width"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid width %q", v)
		}
		width = f
	}
	if v := c.Query("height"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid height %q", v)
		}
		height = f
	}
	return width, height, nil
}

// frame advances the session and queues a snapshot. Runs on the driver
// goroutine.
func (cl *client) frame(dt float64) {
	res := cl.session.Frame(dt, cl.input.Snapshot())
	snap := cl.session.Snapshot()
	snap.Cues = res.Cues

	data, err := json.Marshal(snap)
	if err != nil {
		cl.logger.Error("cannot encode snapshot", "error", err)
		return
	}
	cl.queue(Message{Type: MsgSnapshot, Data: data})
}

// queue drops the message when the client is not keeping up; the next
// snapshot supersedes it anyway.
func (cl *client) queue(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		cl.logger.Error("cannot encode message", "error", err)
		return
	}
	select {
	case cl.send <- data:
	default:
		cl.logger.Debug("send buffer full, dropping message", "type", msg.Type)
	}
}

// sendError waits for buffer space, unlike snapshots, so the client always
// learns why a message was rejected.
func (cl *client) sendError(err error) {
	data, mErr := json.Marshal(Message{Type: MsgError, Message: err.Error()})
	if mErr != nil {
		return
	}
	select {
	case cl.send <- data:
	case <-time.After(writeWait):
		cl.logger.Debug("dropping error message", "error", err)
	}
}

func (cl *client) readPump() {
	cl.conn.SetReadLimit(maxMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				cl.logger.Warn("websocket read error", "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			cl.sendError(fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := cl.handle(msg); err != nil {
			cl.sendError(err)
		}
	}
}

func (cl *client) handle(msg Message) error {
	switch msg.Type {
	case MsgKeys:
		var d keysData
		if err := decode(msg, &d); err != nil {
			return err
		}
		cl.input.SetUp(d.Up)
		cl.input.SetDown(d.Down)

	case MsgPointerDown, MsgPointerMove:
		var d pointerData
		if err := decode(msg, &d); err != nil {
			return err
		}
		if msg.Type == MsgPointerDown {
			cl.input.PointerPress(d.Y)
		} else {
			cl.input.PointerMove(d.Y)
		}

	case MsgPointerUp:
		cl.input.PointerRelease()

	case MsgStart:
		switch cl.session.State() {
		case pong.StateRunning, pong.StatePaused:
		default:
			cl.input.Reset()
			cl.session.Start()
		}

	case MsgPause:
		cl.session.TogglePause()

	case MsgDifficulty:
		var d difficultyData
		if err := decode(msg, &d); err != nil {
			return err
		}
		preset, err := config.ParseDifficulty(d.Difficulty)
		if err != nil {
			return err
		}
		return cl.session.SetDifficulty(preset)

	case MsgResize:
		var d resizeData
		if err := decode(msg, &d); err != nil {
			return err
		}
		return cl.session.Resize(d.Width, d.Height)

	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

func decode(msg Message, v any) error {
	if len(msg.Data) == 0 {
		return errors.New(msg.Type + ": missing data")
	}
	if err := json.Unmarshal(msg.Data, v); err != nil {
		return fmt.Errorf("%s: %w", msg.Type, err)
	}
	return nil
}

// writePump is the only writer on the connection.
func (cl *client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = cl.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case data := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				cl.logger.Debug("websocket write error", "error", err)
				return
			}

		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				cl.logger.Debug("websocket ping error", "error", err)
				return
			}
		}
	}
}
