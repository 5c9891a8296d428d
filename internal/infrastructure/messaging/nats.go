package messaging

import (
	"fmt"
	"time"

	"content-admin/config"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

const (
	connectWait   = 5 * time.Second
	maxReconnects = -1
	reconnectWait = 2 * time.Second
)

// NewNATSConnection returns nil when no URL is configured.
func NewNATSConnection(cfg config.NATSConfig, log *logrus.Logger) (*nats.Conn, error) {
	if cfg.URL == "" {
		log.Info("NATS_URL not set, OTP dispatch events are disabled")
		return nil, nil
	}

	opts := []nats.Option{
		nats.Name("content-admin"),
		nats.Timeout(connectWait),
		nats.MaxReconnects(maxReconnects),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warnf("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Infof("NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.URL, err)
	}

	log.Infof("Successfully connected to NATS at %s", nc.ConnectedUrl())
	return nc, nil
}
