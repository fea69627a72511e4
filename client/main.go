package main

import (
	"bufio"
	"encoding/json"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/gorilla/websocket"
)

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// send wraps a payload in the wire envelope and writes it.
func send(c *websocket.Conn, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	env := envelope{Event: event, Data: data}
	return c.WriteJSON(env)
}

func main() {
	if len(os.Args) < 3 {
		log.Fatalf("usage: %s <roomCode> <participantId>", os.Args[0])
	}
	roomCode := os.Args[1]
	participantID := os.Args[2]

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: "localhost:4000", Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Printf("Read error: %v", err)
				return
			}
			var env envelope
			if err := json.Unmarshal(message, &env); err != nil {
				log.Printf("Bad envelope: %s", message)
				continue
			}
			log.Printf("<- %s %s", env.Event, env.Data)
		}
	}()

	if err := send(c, "join-room", map[string]string{
		"roomCode":      roomCode,
		"participantId": participantID,
	}); err != nil {
		log.Fatalf("Join failed: %v", err)
	}

	// Input loop: plain lines are guesses, /start begins the game,
	// /word <w> picks the drawing word.
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			switch {
			case line == "/start":
				send(c, "start-game", map[string]string{"roomCode": roomCode})
			case strings.HasPrefix(line, "/word "):
				send(c, "word-chosen", map[string]string{
					"roomCode": roomCode,
					"word":     strings.TrimPrefix(line, "/word "),
				})
			default:
				send(c, "send-guess", map[string]string{
					"roomCode": roomCode,
					"guess":    line,
				})
			}
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		log.Println("Interrupted, closing connection.")
		c.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
}
