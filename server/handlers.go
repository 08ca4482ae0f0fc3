package server

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spance/adbpanel-go/devicectl/definitions"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

func errorJSON(c *gin.Context, format string, args ...any) {
	c.JSON(http.StatusOK, gin.H{
		"status":  statusError,
		"message": fmt.Sprintf(format, args...),
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  statusError,
		"message": message,
	})
}

// requireConnected gates device operations on the Connected state.
func (s *Server) requireConnected(c *gin.Context) (string, bool) {
	serial := s.session.Current()
	if serial == "" {
		errorJSON(c, "no device connected")
		return "", false
	}
	return serial, true
}

func (s *Server) getDevices(c *gin.Context) {
	devices, err := s.device.ListDevices(c.Request.Context())
	if err != nil {
		errorJSON(c, "listing devices failed: %v", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": statusSuccess,
		"devices": lo.Map(devices, func(d definitions.DeviceInfo, _ int) gin.H {
			return gin.H{
				"id":     d.DeviceID,
				"model":  d.Model,
				"status": d.Status,
			}
		}),
		"connected_device": s.session.Current(),
	})
}

func (s *Server) connectDevice(c *gin.Context) {
	var request struct {
		DeviceID string `json:"device_id"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, "invalid request payload")
		return
	}
	if request.DeviceID == "" {
		errorJSON(c, "no device id provided")
		return
	}

	ctx := c.Request.Context()

	devices, err := s.device.ListDevices(ctx)
	if err != nil {
		errorJSON(c, "listing devices failed: %v", err)
		return
	}

	target, found := lo.Find(devices, func(d definitions.DeviceInfo) bool {
		return d.DeviceID == request.DeviceID
	})

	// A host:port serial that is not attached yet goes through adb connect
	// first, then shows up in the device list.
	if !found && strings.Contains(request.DeviceID, ":") {
		if msg, err := s.device.ConnectRemote(ctx, request.DeviceID); err != nil {
			errorJSON(c, "connecting to %s failed: %s", request.DeviceID, msg)
			return
		}
		devices, err = s.device.ListDevices(ctx)
		if err != nil {
			errorJSON(c, "listing devices failed: %v", err)
			return
		}
		target, found = lo.Find(devices, func(d definitions.DeviceInfo) bool {
			return d.DeviceID == request.DeviceID
		})
	}

	if !found {
		errorJSON(c, "device %s is not attached", request.DeviceID)
		return
	}
	if !target.Ready() {
		errorJSON(c, "device %s is %s, not ready", target.DeviceID, target.Status)
		return
	}

	// Screen size is cached for tap bounds checking; a device that refuses
	// wm size is still usable.
	size, err := s.device.ScreenSize(ctx, target.DeviceID)
	if err != nil {
		log.Warn().Err(err).Str("serial", target.DeviceID).Msg("reading screen size failed")
		size = nil
	}

	s.session.Connect(target.DeviceID, size)
	log.Info().Str("serial", target.DeviceID).Msg("device connected")

	resp := gin.H{
		"status":  statusSuccess,
		"message": fmt.Sprintf("connected to device %s", target.DeviceID),
	}
	if size != nil {
		resp["screen_size"] = size
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) disconnectDevice(c *gin.Context) {
	serial := s.session.Current()
	if serial == "" {
		errorJSON(c, "no device connected")
		return
	}

	// Only host:port serials hold an adb-level connection worth tearing down.
	if strings.Contains(serial, ":") {
		if msg, err := s.device.Disconnect(c.Request.Context(), serial); err != nil {
			errorJSON(c, "disconnecting %s failed: %s", serial, msg)
			return
		}
	}

	s.session.Clear()
	log.Info().Str("serial", serial).Msg("device disconnected")

	c.JSON(http.StatusOK, gin.H{
		"status":  statusSuccess,
		"message": fmt.Sprintf("disconnected from device %s", serial),
	})
}

func (s *Server) takeScreenshot(c *gin.Context) {
	serial, ok := s.requireConnected(c)
	if !ok {
		return
	}

	shot, err := s.device.Screenshot(c.Request.Context(), serial)
	if err != nil {
		errorJSON(c, "capturing screenshot failed: %v", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    statusSuccess,
		"image":     base64.StdEncoding.EncodeToString(shot.Data),
		"timestamp": time.Now().UnixMilli(),
		"width":     shot.Width,
		"height":    shot.Height,
	})
}

type tapRequest struct {
	// Ready device pixel coordinates.
	X *int `json:"x"`
	Y *int `json:"y"`

	// Raw click, translated server-side. The rect must be the rendered
	// bounding rectangle captured for this very click.
	ClientX *float64     `json:"client_x"`
	ClientY *float64     `json:"client_y"`
	Rect    *DisplayRect `json:"rect"`
	Natural *NaturalSize `json:"natural"`
}

func (s *Server) tapScreen(c *gin.Context) {
	serial, ok := s.requireConnected(c)
	if !ok {
		return
	}

	var request tapRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, "invalid request payload")
		return
	}

	var point Point
	switch {
	case request.ClientX != nil && request.ClientY != nil && request.Rect != nil && request.Natural != nil:
		var err error
		point, err = Translate(*request.Rect, *request.Natural, *request.ClientX, *request.ClientY)
		if err != nil {
			errorJSON(c, "translating click failed: %v", err)
			return
		}
	case request.X != nil && request.Y != nil:
		point = Point{X: *request.X, Y: *request.Y}
	default:
		errorJSON(c, "no tap coordinates provided")
		return
	}

	if size := s.session.Size(); size != nil {
		if point.X < 0 || point.X >= size.Width || point.Y < 0 || point.Y >= size.Height {
			errorJSON(c, "tap (%d, %d) is outside the %dx%d screen", point.X, point.Y, size.Width, size.Height)
			return
		}
	}

	if err := s.device.Tap(c.Request.Context(), point.X, point.Y, serial); err != nil {
		errorJSON(c, "tap (%d, %d) failed: %v", point.X, point.Y, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  statusSuccess,
		"message": fmt.Sprintf("tapped (%d, %d)", point.X, point.Y),
		"x":       point.X,
		"y":       point.Y,
	})
}

func (s *Server) pressKey(c *gin.Context) {
	serial, ok := s.requireConnected(c)
	if !ok {
		return
	}

	var request struct {
		KeyCode *int `json:"key_code"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, "invalid request payload")
		return
	}
	if request.KeyCode == nil {
		errorJSON(c, "no key code provided")
		return
	}

	if err := s.device.Key(c.Request.Context(), *request.KeyCode, serial); err != nil {
		errorJSON(c, "key %d failed: %v", *request.KeyCode, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  statusSuccess,
		"message": fmt.Sprintf("sent key %d", *request.KeyCode),
	})
}

func (s *Server) swipeScreen(c *gin.Context) {
	serial, ok := s.requireConnected(c)
	if !ok {
		return
	}

	var request struct {
		X1       *int `json:"x1"`
		Y1       *int `json:"y1"`
		X2       *int `json:"x2"`
		Y2       *int `json:"y2"`
		Duration int  `json:"duration"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, "invalid request payload")
		return
	}
	if request.X1 == nil || request.Y1 == nil || request.X2 == nil || request.Y2 == nil {
		errorJSON(c, "no swipe coordinates provided")
		return
	}

	err := s.device.Swipe(c.Request.Context(),
		*request.X1, *request.Y1, *request.X2, *request.Y2, request.Duration, serial)
	if err != nil {
		errorJSON(c, "swipe failed: %v", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": statusSuccess,
		"message": fmt.Sprintf("swiped (%d, %d) -> (%d, %d)",
			*request.X1, *request.Y1, *request.X2, *request.Y2),
	})
}

func (s *Server) inputText(c *gin.Context) {
	serial, ok := s.requireConnected(c)
	if !ok {
		return
	}

	var request struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, "invalid request payload")
		return
	}
	if request.Text == "" {
		errorJSON(c, "no input text provided")
		return
	}

	if err := s.device.TypeText(c.Request.Context(), request.Text, serial); err != nil {
		errorJSON(c, "typing text failed: %v", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  statusSuccess,
		"message": "text sent",
	})
}

func (s *Server) analyzeScreen(c *gin.Context) {
	serial, ok := s.requireConnected(c)
	if !ok {
		return
	}
	if s.analyzer == nil {
		errorJSON(c, "analyzer is not configured, start with --apikey")
		return
	}

	shot, err := s.device.Screenshot(c.Request.Context(), serial)
	if err != nil {
		errorJSON(c, "capturing screenshot failed: %v", err)
		return
	}

	description, err := s.analyzer.Describe(c.Request.Context(), shot.Data)
	if err != nil {
		errorJSON(c, "analyzing screenshot failed: %v", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      statusSuccess,
		"description": description,
	})
}
