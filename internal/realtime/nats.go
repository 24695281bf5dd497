package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"flowstudio/internal/api/service"
	"flowstudio/internal/api/websocket"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Subject builds "<prefix>.container.<containerID>.classified".
func Subject(prefix, containerID string) string {
	return fmt.Sprintf("%s.container.%s.classified", prefix, containerID)
}

// parseContainerIDFromSubject extracts containerID from "<prefix>.container.<containerID>.classified"
func parseContainerIDFromSubject(prefix, subject string) (string, error) {
	rest, ok := strings.CutPrefix(subject, prefix+".container.")
	if !ok {
		return "", fmt.Errorf("subject %q outside prefix %q", subject, prefix)
	}
	containerID, ok := strings.CutSuffix(rest, ".classified")
	if !ok || containerID == "" || strings.Contains(containerID, ".") {
		return "", fmt.Errorf("malformed subject %q", subject)
	}
	return containerID, nil
}

// NATSPublisher publishes classification events so every API replica can
// notify its own editors.
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

func NewNATSPublisher(conn *nats.Conn, prefix string) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: prefix}
}

func (p *NATSPublisher) Publish(ctx context.Context, event service.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("nats: marshal event: %w", err)
	}
	if err = p.conn.Publish(Subject(p.prefix, event.ContainerID), data); err != nil {
		return fmt.Errorf("nats publish: %w", err)
	}
	return nil
}

// NATSBridge subscribes to classification subjects and pushes them into the Hub.
type NATSBridge struct {
	conn   *nats.Conn
	hub    *websocket.Hub
	prefix string
	sub    *nats.Subscription
	logger zerolog.Logger
}

func NewNATSBridge(conn *nats.Conn, prefix string, hub *websocket.Hub, logger zerolog.Logger) *NATSBridge {
	return &NATSBridge{conn: conn, hub: hub, prefix: prefix, logger: logger}
}

// Connect dials the NATS server at url.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url, nats.Name("flowstudio-api"))
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return nc, nil
}

// Subscribe listens on <prefix>.container.*.classified
func (b *NATSBridge) Subscribe() error {
	subject := Subject(b.prefix, "*")
	sub, err := b.conn.Subscribe(subject, b.handle)
	if err != nil {
		return fmt.Errorf("nats subscribe %q: %w", subject, err)
	}
	b.sub = sub

	b.logger.Info().Str("subject", subject).Msg("NATS bridge subscribed")
	return nil
}

func (b *NATSBridge) handle(msg *nats.Msg) {
	containerID, err := parseContainerIDFromSubject(b.prefix, msg.Subject)
	if err != nil {
		b.logger.Warn().Err(err).Str("subject", msg.Subject).Msg("nats: bad subject")
		return
	}

	var event service.Event
	if err = json.Unmarshal(msg.Data, &event); err != nil {
		b.logger.Warn().Err(err).Str("subject", msg.Subject).Msg("nats: bad payload")
		return
	}
	// The subject is authoritative for routing.
	event.ContainerID = containerID

	if err = b.hub.Send(context.Background(), websocket.EventMessage(event)); err != nil {
		b.logger.Warn().Err(err).Str("containerId", containerID).Msg("nats: event dropped")
	}
}

// Close unsubscribes and drains the NATS connection.
func (b *NATSBridge) Close() {
	if b.sub != nil {
		if err := b.sub.Unsubscribe(); err != nil {
			b.logger.Warn().Err(err).Msg("nats unsubscribe")
		}
	}
	if err := b.conn.Drain(); err != nil {
		b.logger.Warn().Err(err).Msg("nats drain")
	}
}
