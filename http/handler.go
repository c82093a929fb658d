package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/aura-studio/smoke/engine"
	"github.com/aura-studio/smoke/handler"
	"github.com/aura-studio/smoke/meta"
	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	EventContext    = "event"
	ResponseContext = "response"
	ErrorContext    = "error"
	PanicContext    = "panic"
	DebugContext    = "debug"
	StdoutContext   = "stdout"
	StderrContext   = "stderr"
)

var methods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodHead, http.MethodOptions}

func (e *Engine) InstallHandlers() {
	e.HandleAllMethods("/", e.OK)
	e.HandleAllMethods("/health-check", e.OK)
	e.GET("/invoke", e.Invoke)
	e.POST("/invoke", e.Invoke)
	e.GET("/_/invoke", e.Debug, e.Invoke)
	e.POST("/_/invoke", e.Debug, e.Invoke)
	e.GET("/meta", e.Meta)
	e.NoRoute(e.PageNotFound)
	e.NoMethod(e.MethodNotAllowed)
}

func (e *Engine) HandleAllMethods(relativePath string, handlers ...gin.HandlerFunc) {
	for _, method := range methods {
		e.Handle(method, relativePath, handlers...)
	}
}

func (e *Engine) OK(c *gin.Context) {
	c.String(http.StatusOK, "OK")
	c.Abort()
}

func (e *Engine) Debug(c *gin.Context) {
	c.Set(DebugContext, true)
}

// Invoke runs the handler with an event built from the query string (GET) or
// the JSON object body (POST).
func (e *Engine) Invoke(c *gin.Context) {
	event, ok := e.genEvent(c)
	if !ok {
		return
	}
	c.Set(EventContext, event)

	if c.GetBool(DebugContext) {
		e.debugProcessor(c)
		c.Data(http.StatusOK, "application/json", []byte(e.formatDebug(c)))
		c.Abort()
		return
	}

	e.safeProcessor(c)
	if v, ok := c.Get(PanicContext); ok && v != nil {
		c.String(http.StatusInternalServerError, v.(error).Error())
		c.Abort()
		return
	} else if v, ok := c.Get(ErrorContext); ok && v != nil {
		c.String(http.StatusInternalServerError, v.(error).Error())
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, c.MustGet(ResponseContext))
	c.Abort()
}

// Meta reports the bundled dependency versions of the running binary.
func (e *Engine) Meta(c *gin.Context) {
	extra, _ := sjson.Set("{}", "server", map[string]any{
		"mode":    "http",
		"address": e.Address,
		"debug":   e.DebugMode,
	})
	doc := meta.Collect().Generate(extra)
	c.Data(http.StatusOK, "application/json", []byte(doc))
	c.Abort()
}

func (e *Engine) PageNotFound(c *gin.Context) {
	c.String(http.StatusNotFound, "404 page not found")
	c.Abort()
}

func (e *Engine) MethodNotAllowed(c *gin.Context) {
	c.String(http.StatusMethodNotAllowed, "405 method not allowed")
	c.Abort()
}

func (e *Engine) genEvent(c *gin.Context) (handler.Event, bool) {
	event := handler.Event{}

	if c.Request.Method == http.MethodGet {
		for k, v := range c.Request.URL.Query() {
			event[k] = v[0]
		}
		return event, true
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		c.Abort()
		return nil, false
	}
	if len(data) == 0 {
		return event, true
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		c.String(http.StatusBadRequest, "event must be a JSON object")
		c.Abort()
		return nil, false
	}
	if err := json.Unmarshal(data, &event); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		c.Abort()
		return nil, false
	}
	return event, true
}

func (e *Engine) doProcessor(c *gin.Context) {
	event := c.MustGet(EventContext).(handler.Event)
	rsp, err := e.smoke.Handle(c.Request.Context(), event)
	c.Set(ResponseContext, rsp)
	if err != nil {
		c.Set(ErrorContext, err)
	}
}

func (e *Engine) safeProcessor(c *gin.Context) {
	if err := engine.DoSafe(func() {
		e.doProcessor(c)
	}); err != nil {
		c.Set(PanicContext, err)
	}
}

func (e *Engine) debugProcessor(c *gin.Context) {
	stdout, stderr, panicErr := engine.DoDebug(func() {
		e.doProcessor(c)
	})
	c.Set(StdoutContext, stdout)
	c.Set(StderrContext, stderr)
	if panicErr != nil {
		c.Set(PanicContext, panicErr)
	}
}

// formatDebug assembles the debug document: the event, the response and
// everything written to stdout and stderr while handling it.
func (e *Engine) formatDebug(c *gin.Context) string {
	doc := "{}"

	if v, ok := c.Get(EventContext); ok {
		doc, _ = sjson.Set(doc, "event", v)
	}
	if v, ok := c.Get(ResponseContext); ok {
		doc, _ = sjson.Set(doc, "response", v)
	}
	doc, _ = sjson.Set(doc, "stdout", c.GetString(StdoutContext))
	doc, _ = sjson.Set(doc, "stderr", c.GetString(StderrContext))
	if v, ok := c.Get(ErrorContext); ok && v != nil {
		doc, _ = sjson.Set(doc, "error", v.(error).Error())
	}
	if v, ok := c.Get(PanicContext); ok && v != nil {
		doc, _ = sjson.Set(doc, "panic", v.(error).Error())
	}

	return doc
}
