package websocket

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"intervuehub/internal/session"
	"intervuehub/models"
	"intervuehub/services"
)

var upgrader = websocket.Upgrader{
	// In production, adjust the CheckOrigin function to allow only trusted origins.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	sessionStore  *session.Store
	personaSvc    *services.PersonaService
	chatClient    services.CompletionClient
	chatModel     string
	replyTimeout  = 60 * time.Second
	historyLimit  = 40
)

// Init wires the dependencies the interview socket needs. Must be called
// before the handler is registered.
func Init(store *session.Store, personas *services.PersonaService, client services.CompletionClient, model string) {
	sessionStore = store
	personaSvc = personas
	chatClient = client
	chatModel = model
}

// inboundMessage is what the student's client sends over the socket.
type inboundMessage struct {
	Type      string   `json:"type"`
	Text      string   `json:"text,omitempty"`
	Timestamp *float64 `json:"timestamp,omitempty"`
}

// outboundMessage is what the server sends back.
type outboundMessage struct {
	Type      string `json:"type"`
	Speaker   string `json:"speaker,omitempty"`
	Text      string `json:"text,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}

// InterviewHandler runs a live interview chat: each student message is
// appended to the session transcript, sent to the model in the persona's
// voice, and the reply is recorded and returned.
func InterviewHandler(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		log.Println("WebSocket connection failed: missing sessionId parameter")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing sessionId parameter"})
		return
	}

	personaID, err := sessionStore.PersonaID(sessionID)
	if err != nil {
		log.Printf("WebSocket connection failed: %v", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	persona, ok := personaSvc.Get(personaID)
	if !ok {
		log.Printf("WebSocket connection failed: persona %s not found", personaID)
		c.JSON(http.StatusNotFound, gin.H{"error": "Persona not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	log.Printf("Interview session %s connected (persona: %s)", sessionID, persona.Name)
	systemPrompt := personaSvc.BuildPersonaPrompt(persona)

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("WebSocket read error in session %s: %v", sessionID, err)
			break
		}

		switch msg.Type {
		case "message":
			handleStudentMessage(conn, sessionID, systemPrompt, msg)
		case "ping":
			writeMessage(conn, outboundMessage{Type: "pong", Timestamp: time.Now().Unix()})
		default:
			log.Printf("Unknown message type '%s' in session %s", msg.Type, sessionID)
		}
	}

	log.Printf("Interview session %s disconnected", sessionID)
}

func handleStudentMessage(conn *websocket.Conn, sessionID, systemPrompt string, msg inboundMessage) {
	turn := models.InterviewTurn{
		Speaker:   models.SpeakerStudent,
		Text:      msg.Text,
		Timestamp: msg.Timestamp,
	}
	if err := turn.Normalize(); err != nil {
		writeMessage(conn, outboundMessage{Type: "error", Error: err.Error()})
		return
	}
	if err := sessionStore.AppendTurn(sessionID, turn); err != nil {
		log.Printf("Failed to record student turn in session %s: %v", sessionID, err)
		writeMessage(conn, outboundMessage{Type: "error", Error: "Failed to record message"})
		return
	}

	history, err := sessionStore.Turns(sessionID)
	if err != nil {
		log.Printf("Failed to read history for session %s: %v", sessionID, err)
		history = []models.InterviewTurn{turn}
	}

	reply, err := generatePersonaReply(systemPrompt, history)
	if err != nil {
		log.Printf("Persona reply failed in session %s: %v", sessionID, err)
		writeMessage(conn, outboundMessage{Type: "error", Error: "Failed to generate reply"})
		return
	}

	now := float64(time.Now().Unix())
	personaTurn := models.InterviewTurn{
		Speaker:   models.SpeakerPersona,
		Text:      reply,
		Timestamp: &now,
	}
	if err := personaTurn.Normalize(); err != nil {
		log.Printf("Model returned empty reply in session %s", sessionID)
		writeMessage(conn, outboundMessage{Type: "error", Error: "Failed to generate reply"})
		return
	}
	if err := sessionStore.AppendTurn(sessionID, personaTurn); err != nil {
		log.Printf("Failed to record persona turn in session %s: %v", sessionID, err)
	}

	writeMessage(conn, outboundMessage{
		Type:      "message",
		Speaker:   string(models.SpeakerPersona),
		Text:      personaTurn.Text,
		Timestamp: int64(now),
	})
}

// generatePersonaReply replays the recent transcript as a chat exchange and
// asks the model for the persona's next line.
func generatePersonaReply(systemPrompt string, history []models.InterviewTurn) (string, error) {
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	messages := []models.ChatMessage{{Role: "system", Content: systemPrompt}}
	for _, turn := range history {
		role := "user"
		if turn.Speaker == models.SpeakerPersona {
			role = "assistant"
		} else if turn.Speaker == models.SpeakerSystem {
			continue
		}
		messages = append(messages, models.ChatMessage{Role: role, Content: turn.Text})
	}

	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()

	resp, err := chatClient.GenerateText(ctx, models.ChatRequest{
		Model:       chatModel,
		Messages:    messages,
		MaxTokens:   300,
		Temperature: 0.8,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func writeMessage(conn *websocket.Conn, msg outboundMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("WebSocket write error: %v", err)
	}
}
