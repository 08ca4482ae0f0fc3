package server

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/spance/adbpanel-go/analyzer"
	"github.com/spance/adbpanel-go/devicectl"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Server wires the control panel HTTP surface to one Device and one Session.
type Server struct {
	engine   *gin.Engine
	device   devicectl.Device
	session  *Session
	analyzer *analyzer.Analyzer
}

// Options for New. Analyzer and the page assets are optional; a nil Static
// disables the embedded panel and leaves only the JSON API.
type Options struct {
	Device   devicectl.Device
	Session  *Session
	Analyzer *analyzer.Analyzer

	// IndexHTML is the rendered panel page served at /.
	IndexHTML string
	// Static is the embedded asset tree served under /static.
	Static fs.FS

	Debug bool
}

func New(opts Options) *Server {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine:   gin.New(),
		device:   opts.Device,
		session:  opts.Session,
		analyzer: opts.Analyzer,
	}
	if s.session == nil {
		s.session = NewSession()
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	s.registerRoutes(opts.IndexHTML, opts.Static)
	return s
}

func (s *Server) registerRoutes(indexHTML string, static fs.FS) {
	s.engine.GET("/devices", s.getDevices)
	s.engine.POST("/connect", s.connectDevice)
	s.engine.POST("/disconnect", s.disconnectDevice)
	s.engine.GET("/screenshot", s.takeScreenshot)
	s.engine.POST("/tap", s.tapScreen)
	s.engine.POST("/key", s.pressKey)
	s.engine.POST("/swipe", s.swipeScreen)
	s.engine.POST("/input", s.inputText)
	s.engine.POST("/analyze", s.analyzeScreen)

	if indexHTML != "" {
		s.engine.GET("/", func(c *gin.Context) {
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
		})
	}
	if static != nil {
		s.engine.StaticFS("/static", http.FS(static))
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	log.Info().Str("addr", addr).Msg("control panel listening")
	return s.engine.Run(addr)
}
