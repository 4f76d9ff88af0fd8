package chatbot

import (
	"html"
	"net/http"

	"smartslot/internal/session"
	"smartslot/internal/shared/utils/response"
	"smartslot/internal/upstream"
	"smartslot/pkg/logger"

	"github.com/gin-gonic/gin"
)

// chat request payload
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type Controller struct {
	engine   *Engine
	upstream *upstream.Client
	sessions *session.Store
	logger   *logger.Logger
}

func NewController(engine *Engine, up *upstream.Client, sessions *session.Store, log *logger.Logger) *Controller {
	return &Controller{
		engine:   engine,
		upstream: up,
		sessions: sessions,
		logger:   log,
	}
}

// Chat answers one message. The upstream assistant is tried first; on any
// failure the local engine answers instead, silently, so the widget never
// surfaces an assistant outage.
func (c *Controller) Chat(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "message is required")
		return
	}

	sid := ""
	if v, ok := ctx.Get("session_id"); ok {
		sid, _ = v.(string)
	}

	token := ""
	if sid != "" {
		if sess := c.sessions.Get(ctx.Request.Context(), sid); sess.SignedIn() {
			token = sess.Token
		}
	}

	reply, err := c.upstream.Chat(ctx.Request.Context(), token, req.Message)
	if err != nil || reply == "" {
		if err != nil {
			c.logger.WithError(err).Debug("assistant upstream unavailable, using local engine")
		}
		reply = c.engine.Reply(ctx.Request.Context(), sid, req.Message)
	} else {
		reply = html.EscapeString(reply)
	}

	response.OK(ctx, http.StatusOK, "Reply generated", gin.H{"reply": reply})
}

func (c *Controller) Suggestions(ctx *gin.Context) {
	response.OK(ctx, http.StatusOK, "Suggestions retrieved", gin.H{"suggestions": c.engine.Suggestions()})
}
