package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/lottolab/powerpick/internal/config"
	"github.com/lottolab/powerpick/internal/lottery"
	"github.com/lottolab/powerpick/pkg/common/logger"
)

// NATSEmitter publishes events to NATS under "<prefix>.<event type>".
type NATSEmitter struct {
	conn          *nats.Conn
	subjectPrefix string
}

func NewNATSEmitter(cfg config.NATSConfig) (*NATSEmitter, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1), // retry forever
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectHandler(func(nc *nats.Conn) {
			logger.Warn("Disconnected from NATS")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	url := cfg.URL
	if url == "" {
		url = nats.DefaultURL
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEmitter{
		conn:          conn,
		subjectPrefix: cfg.SubjectPrefix,
	}, nil
}

func (e *NATSEmitter) EmitDraw(draw lottery.Draw) error {
	return e.emit(TypeDrawAdded, draw)
}

func (e *NATSEmitter) EmitJackpot(jackpot lottery.Jackpot) error {
	return e.emit(TypeJackpotUpdated, jackpot)
}

func (e *NATSEmitter) EmitError(err error) error {
	return e.emit(TypeRefreshError, map[string]string{"error": err.Error()})
}

func (e *NATSEmitter) emit(eventType string, data any) error {
	event := Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return e.conn.Publish(subjectFor(e.subjectPrefix, eventType), payload)
}

func (e *NATSEmitter) Close() {
	if e.conn != nil {
		e.conn.Close()
	}
}
