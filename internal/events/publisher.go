package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher emits account lifecycle events for downstream consumers
// (notification workers, analytics). Publishing is best-effort: the auth
// flow never fails because the broker is down.
type Publisher interface {
	PublishUserRegistered(userID, email string, role string) error
	PublishUserLoggedIn(userID string) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (*NatsPublisher, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

type UserRegisteredEvent struct {
	EventType    string    `json:"event_type"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	RegisteredAt time.Time `json:"registered_at"`
}

type UserLoggedInEvent struct {
	EventType  string    `json:"event_type"`
	UserID     string    `json:"user_id"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

func (p *NatsPublisher) PublishUserRegistered(userID, email, role string) error {
	event := UserRegisteredEvent{
		EventType:    "user.registered",
		UserID:       userID,
		Email:        email,
		Role:         role,
		RegisteredAt: time.Now(),
	}

	return p.publish("user.registered", event)
}

func (p *NatsPublisher) PublishUserLoggedIn(userID string) error {
	event := UserLoggedInEvent{
		EventType:  "user.loggedin",
		UserID:     userID,
		LoggedInAt: time.Now(),
	}

	return p.publish("user.loggedin", event)
}

func (p *NatsPublisher) publish(subject string, event any) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		slog.Error("Error marshalling event JSON", "error", err)
		return err
	}

	if err := p.conn.Publish(subject, eventJSON); err != nil {
		slog.Error("Error publishing to NATS", "subject", subject, "error", err)
		return err
	}

	return nil
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishUserRegistered(string, string, string) error { return nil }
func (NoopPublisher) PublishUserLoggedIn(string) error                   { return nil }
