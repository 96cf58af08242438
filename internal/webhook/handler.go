package webhook

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smallkid/line-ledger-bot/internal/ledger"
	"github.com/smallkid/line-ledger-bot/internal/models"
)

// payload is the webhook request body: a batch of events.
type payload struct {
	Events []event `json:"events"`
}

type event struct {
	Type       string      `json:"type"`
	ReplyToken string      `json:"replyToken"`
	Source     source      `json:"source"`
	Message    messageBody `json:"message"`
}

type messageBody struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type source struct {
	Type    string `json:"type"` // user, group or room
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
	RoomID  string `json:"roomId"`
}

// inboundEvent maps a webhook event to the core's normalized form.
func (e *event) inboundEvent() models.InboundEvent {
	ev := models.InboundEvent{
		Text:     e.Message.Text,
		SenderID: e.Source.UserID,
		Kind:     models.Conversation(e.Source.Type),
	}
	switch e.Source.Type {
	case "group":
		ev.ConversationID = e.Source.GroupID
	case "room":
		ev.ConversationID = e.Source.RoomID
	}
	return ev
}

// Handler receives chat-platform webhooks and replies through the
// reply client.
type Handler struct {
	svc    *ledger.Service
	client *ReplyClient
	secret string
}

func NewHandler(svc *ledger.Service, client *ReplyClient, secret string) *Handler {
	return &Handler{svc: svc, client: client, secret: secret}
}

// Register wires the webhook routes. HEAD is answered unconditionally
// for uptime probes.
func (h *Handler) Register(router *gin.Engine) {
	router.HEAD("/callback", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.POST("/callback", h.Callback)
}

func (h *Handler) Callback(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "bad body")
		return
	}

	signature := c.GetHeader("X-Line-Signature")
	if !ValidSignature(h.secret, body, signature) {
		c.String(http.StatusBadRequest, "bad signature")
		return
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		c.String(http.StatusBadRequest, "bad payload")
		return
	}

	for i := range p.Events {
		h.handleEvent(c, &p.Events[i])
	}

	c.String(http.StatusOK, "OK")
}

func (h *Handler) handleEvent(c *gin.Context, e *event) {
	if e.Type != "message" || e.Message.Type != "text" {
		return
	}

	outcome := h.svc.HandleMessage(c.Request.Context(), e.inboundEvent())

	messages := RenderReply(outcome)
	if len(messages) == 0 || e.ReplyToken == "" {
		return
	}

	if err := h.client.Reply(c.Request.Context(), e.ReplyToken, messages); err != nil {
		// Replies are best effort; the record (if any) is already
		// durable.
		log.Printf("reply failed: %v", err)
	}
}
