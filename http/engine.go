package http

import (
	"time"

	"github.com/aura-studio/smoke/handler"
	"github.com/aura-studio/smoke/logging"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Engine serves the smoke handler over HTTP for local development.
type Engine struct {
	*Options
	*gin.Engine
	smoke *handler.Handler
	log   *logrus.Logger
}

// NewEngine builds the gin engine. Extra handler options are applied after
// the ones derived from httpOpts.
func NewEngine(httpOpts []Option, handlerOpts ...handler.Option) *Engine {
	o := NewOptions(httpOpts...)
	log := logging.New(o.DebugMode)

	if !o.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	opts := append([]handler.Option{
		handler.WithDebugMode(o.DebugMode),
		handler.WithProbeURL(o.ProbeURL),
		handler.WithProbeTimeout(o.ProbeTimeout),
		handler.WithLogger(log),
	}, handlerOpts...)

	e := &Engine{
		Options: o,
		Engine:  gin.New(),
		smoke:   handler.NewHandler(opts...),
		log:     log,
	}
	e.HandleMethodNotAllowed = true

	e.Use(gin.Recovery(), e.AccessLog)

	if e.CorsMode {
		e.Use(Cors())
	}

	e.InstallHandlers()

	return e
}

// AccessLog writes one structured line per request.
func (e *Engine) AccessLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	e.log.WithFields(logrus.Fields{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency_ms": time.Since(start).Milliseconds(),
	}).Debug("[HTTP] request")
}

// Cors allows any origin, for browser-based local testing.
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
