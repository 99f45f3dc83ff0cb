package stage

import (
	"log/slog"
	"net"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-nao-story/pkg/director"
)

const eventBufferSize = 500

// ShowState is the dashboard's snapshot of the performance.
type ShowState struct {
	Phase       string   `json:"phase"`
	Chapter     int      `json:"chapter"`
	Words       []string `json:"words"`
	LastOutcome string   `json:"last_outcome"`
	LastLine    string   `json:"last_line"`
}

// Server is the stage monitor: REST snapshot plus a websocket event feed.
// It implements director.EventSink.
type Server struct {
	app    *fiber.App
	port   string
	logger *slog.Logger

	state   ShowState
	stateMu sync.RWMutex

	events   []director.Event
	eventsMu sync.RWMutex

	eventHub *Hub
}

// NewServer creates a stage monitor listening on the given port.
func NewServer(port string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		port:     port,
		logger:   logger.With("component", "stage"),
		events:   make([]director.Event, 0, eventBufferSize),
		eventHub: NewHub("events", logger),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Storyteller Stage",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/show", s.handleShow)
	api.Get("/events", s.handleEvents)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/events", websocket.New(func(conn *websocket.Conn) {
		serveClient(s.eventHub, conn)
	}))

	s.app = app
	return s
}

// Start blocks serving the dashboard.
func (s *Server) Start() error {
	go s.eventHub.Run()
	s.logger.Info("stage monitor listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// StartListener serves on an existing listener (tests pick a free port).
func (s *Server) StartListener(ln net.Listener) error {
	go s.eventHub.Run()
	return s.app.Listener(ln)
}

// StartAsync serves in a background goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Error("stage server stopped", "error", err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Publish implements director.EventSink: fold the event into the show
// snapshot, buffer it, and broadcast it to connected dashboards.
func (s *Server) Publish(e director.Event) {
	s.stateMu.Lock()
	s.fold(e)
	s.stateMu.Unlock()

	s.eventsMu.Lock()
	s.events = append(s.events, e)
	if len(s.events) > eventBufferSize {
		s.events = s.events[1:]
	}
	s.eventsMu.Unlock()

	s.eventHub.BroadcastJSON(e)
}

// fold applies one event to the snapshot. Caller holds stateMu.
func (s *Server) fold(e director.Event) {
	if e.Chapter > 0 && e.Chapter != s.state.Chapter {
		s.state.Chapter = e.Chapter
		s.state.Words = nil
	}
	switch e.Kind {
	case director.EventPhase:
		s.state.Phase = e.Text
	case director.EventWordAccept:
		s.state.Words = append(s.state.Words, e.Text)
	case director.EventPerformance:
		s.state.LastOutcome = e.Detail
		s.state.LastLine = e.Text
	case director.EventScript:
		s.state.LastLine = e.Text
	}
}

func (s *Server) handleShow(c *fiber.Ctx) error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return c.JSON(s.state)
}

func (s *Server) handleEvents(c *fiber.Ctx) error {
	s.eventsMu.RLock()
	defer s.eventsMu.RUnlock()
	return c.JSON(s.events)
}

var _ director.EventSink = (*Server)(nil)
