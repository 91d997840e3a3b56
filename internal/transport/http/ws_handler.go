package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"classquiz-service/internal/app"
	"classquiz-service/internal/domain"
	"classquiz-service/internal/game"
	"github.com/gorilla/websocket"
)

// WSHandler wires the presenter display into the game service over a single
// websocket. Inbound messages are game commands; outbound messages are state
// snapshots and the match's upward notifications. The display never drives
// control flow beyond issuing commands.
type WSHandler struct {
	service  *app.GameService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService) *WSHandler {
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

type startPayload struct {
	ActivityID string `json:"activityId"`
}

type answerPayload struct {
	Team  domain.TeamID `json:"team"`
	Value string        `json:"value"`
}

type teamPayload struct {
	Team domain.TeamID `json:"team"`
}

type letterPayload struct {
	Letter string `json:"letter"`
}

type teamNamePayload struct {
	Team domain.TeamID `json:"team"`
	Name string        `json:"name"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type welcomePayload struct {
	Session    domain.SessionSnapshot `json:"session"`
	Activities []domain.Activity      `json:"activities"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the presenter connection and pumps commands and events.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 32)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	var cancelPump func()
	var pumpDone chan struct{}
	stopPump := func() {
		if cancelPump != nil {
			cancelPump()
			<-pumpDone
			cancelPump = nil
		}
	}

	// pump forwards match events to the display, each followed by a fresh
	// state snapshot so the UI only has to render the latest view.
	startPump := func(m *game.Match) {
		stopPump()
		events, cancel := m.Subscribe()
		cancelPump = cancel
		done := make(chan struct{})
		pumpDone = done
		go func() {
			defer close(done)
			for ev := range events {
				trySend(send, outboundMessage[any]{Type: "event", Payload: ev})
				trySend(send, outboundMessage[any]{Type: "state", Payload: m.View()})
			}
		}()
	}

	send <- outboundMessage[any]{Type: "welcome", Payload: welcomePayload{
		Session:    h.service.Session(),
		Activities: h.service.Activities(),
	}}
	if m, err := h.service.Match(); err == nil {
		startPump(m)
		send <- outboundMessage[any]{Type: "state", Payload: m.View()}
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.handleCommand(inbound, send, startPump, stopPump)
	}

	stopPump()
	close(send)
	<-writerDone
}

func (h *WSHandler) handleCommand(inbound inboundMessage, send chan outboundMessage[any], startPump func(*game.Match), stopPump func()) {
	fail := func(msg string) {
		trySend(send, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}})
	}

	switch inbound.Type {
	case "start":
		var payload startPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			fail("invalid start payload")
			return
		}
		m, err := h.service.StartMatch(context.Background(), payload.ActivityID)
		if err != nil {
			fail(err.Error())
			return
		}
		startPump(m)
		trySend(send, outboundMessage[any]{Type: "state", Payload: m.View()})
	case "setTeamName":
		var payload teamNamePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			fail("invalid team name payload")
			return
		}
		h.service.SetTeamName(payload.Team, payload.Name)
		trySend(send, outboundMessage[any]{Type: "session", Payload: h.service.Session()})
	case "exit":
		stopPump()
		h.service.ExitMatch()
		trySend(send, outboundMessage[any]{Type: "session", Payload: h.service.Session()})
	default:
		m, err := h.service.Match()
		if err != nil {
			fail(err.Error())
			return
		}
		h.handleMatchCommand(m, inbound, fail)
		trySend(send, outboundMessage[any]{Type: "state", Payload: m.View()})
	}
}

func (h *WSHandler) handleMatchCommand(m *game.Match, inbound inboundMessage, fail func(string)) {
	switch inbound.Type {
	case "begin":
		m.Start()
	case "answer", "steal":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			fail("invalid answer payload")
			return
		}
		m.SubmitAnswer(payload.Team, payload.Value)
	case "declineSteal":
		m.DeclineSteal()
	case "buzz":
		var payload teamPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			fail("invalid buzz payload")
			return
		}
		m.BuzzIn(payload.Team)
	case "cancelBuzz":
		m.CancelBuzz()
	case "letter":
		var payload letterPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			fail("invalid letter payload")
			return
		}
		m.GuessLetter(payload.Letter)
	case "next":
		m.Next()
	case "pause":
		m.Pause()
	case "resume":
		m.Resume()
	default:
		fail("unsupported message type")
	}
}

// trySend drops the message if the writer has gone away instead of blocking
// the game loop.
func trySend(send chan outboundMessage[any], msg outboundMessage[any]) {
	select {
	case send <- msg:
	default:
	}
}
