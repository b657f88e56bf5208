package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"vocab-progress-service/internal/app"
	"vocab-progress-service/internal/domain"
)

var connSeq uint64

// WSHandler exposes the progress engine over a websocket, one practice
// session per connection.
type WSHandler struct {
	service  *app.ProgressService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.ProgressService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type questionPayload struct {
	Kind string `json:"kind"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}

type countPayload struct {
	N int `json:"n"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type okPayload struct {
	Username string `json:"username"`
}

// ServeWS upgrades HTTP requests to websockets and drives the engine's use
// cases from inbound frames. Every frame is handled synchronously, so
// replies arrive in request order.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := fmt.Sprintf("conn-%d", atomic.AddUint64(&connSeq, 1))
	session := h.service.Open(sessionID, "")
	defer h.service.Close(sessionID)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		h.handle(r.Context(), conn, sessionID, session, inbound)
	}
}

func (h *WSHandler) handle(ctx context.Context, conn *websocket.Conn, sessionID string, session *app.QuizSession, inbound inboundMessage) {
	switch inbound.Type {
	case "register":
		var payload credentialsPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			writeError(conn, "invalid register payload")
			return
		}
		if err := h.service.Register(ctx, payload.Username, payload.Password); err != nil {
			writeError(conn, err.Error())
			return
		}
		write(conn, "registered", okPayload{Username: payload.Username})

	case "login":
		var payload credentialsPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			writeError(conn, "invalid login payload")
			return
		}
		snap, err := h.service.Authenticate(ctx, payload.Username, payload.Password)
		if err != nil {
			writeError(conn, err.Error())
			return
		}
		session.Bind(snap.Username)
		write(conn, "snapshot", snap)

	case "question":
		var payload questionPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			writeError(conn, "invalid question payload")
			return
		}
		view, err := h.service.NextQuestion(ctx, sessionID, domain.QuestionKind(payload.Kind))
		if err != nil {
			writeError(conn, err.Error())
			return
		}
		write(conn, "question", view)

	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			writeError(conn, "invalid answer payload")
			return
		}
		result, err := h.service.SubmitAnswer(ctx, sessionID, payload.Answer)
		if errors.Is(err, domain.ErrAlreadyGraded) {
			// Repeated submit is an idempotent no-op, not a user-facing error.
			log.Printf("ignoring duplicate submit on %s", sessionID)
			return
		}
		if err != nil {
			writeError(conn, err.Error())
			return
		}
		write(conn, "answerResult", result)

	case "snapshot":
		snap, err := h.service.Snapshot(ctx, session.Username())
		if err != nil {
			writeError(conn, err.Error())
			return
		}
		write(conn, "snapshot", snap)

	case "leaderboard":
		var payload countPayload
		if len(inbound.Payload) > 0 {
			_ = json.Unmarshal(inbound.Payload, &payload)
		}
		lb, err := h.service.TopAccounts(ctx, payload.N)
		if err != nil {
			writeError(conn, err.Error())
			return
		}
		write(conn, "leaderboard", lb)

	case "mistakes":
		var payload countPayload
		if len(inbound.Payload) > 0 {
			_ = json.Unmarshal(inbound.Payload, &payload)
		}
		entries, err := h.service.Mistakes(ctx, payload.N)
		if err != nil {
			writeError(conn, err.Error())
			return
		}
		write(conn, "mistakes", entries)

	default:
		writeError(conn, "unsupported message type")
	}
}

func write[T any](conn *websocket.Conn, msgType string, payload T) {
	if err := conn.WriteJSON(outboundMessage[T]{Type: msgType, Payload: payload}); err != nil {
		log.Printf("ws write error: %v", err)
	}
}

func writeError(conn *websocket.Conn, message string) {
	write(conn, "error", errorPayload{Message: message})
}
