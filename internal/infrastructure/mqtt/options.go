package mqtt

import (
	"crypto/tls"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ferment8/brauhaus-core/internal/infrastructure/config"
)

const (
	// connectTimeout bounds the initial broker handshake.
	connectTimeout = 10 * time.Second

	// publishTimeout bounds publish, subscribe and unsubscribe acks.
	publishTimeout = 5 * time.Second

	// disconnectQuiesceMS is how long Disconnect waits for in-flight
	// work, in milliseconds (paho's unit).
	disconnectQuiesceMS = 1000

	keepAlive = 60 * time.Second

	// maxQoS is the highest valid MQTT QoS level.
	maxQoS = 2
)

// buildClientOptions translates the broker section of config.yaml into
// paho options: broker URL, credentials, clean session, auto-reconnect
// with backoff from the reconnect config, and the LWT crash marker.
func buildClientOptions(cfg config.MQTTConfig) *pahomqtt.ClientOptions {
	scheme := "tcp"
	if cfg.Broker.TLS {
		scheme = "ssl"
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("%s://%s:%d", scheme, cfg.Broker.Host, cfg.Broker.Port)).
		SetClientID(cfg.Broker.ClientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(time.Duration(cfg.Reconnect.InitialDelay) * time.Second).
		SetMaxReconnectInterval(time.Duration(cfg.Reconnect.MaxDelay) * time.Second).
		SetConnectTimeout(connectTimeout).
		SetKeepAlive(keepAlive)

	if cfg.Auth.Username != "" {
		opts.SetUsername(cfg.Auth.Username)
		opts.SetPassword(cfg.Auth.Password)
	}

	if cfg.Broker.TLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	// LWT: the broker publishes this if we drop without a graceful
	// Close, so dashboards can tell a crash from a shutdown. QoS 1,
	// retained.
	opts.SetWill(Topics{}.SystemStatus(),
		presencePayload("offline", cfg.Broker.ClientID, "unexpected_disconnect"),
		1, true)

	return opts
}

// presencePayload builds the JSON body for system status messages. The
// reason field is omitted when empty (the normal online case).
func presencePayload(status, clientID, reason string) string {
	ts := time.Now().UTC().Format(time.RFC3339)
	if reason == "" {
		return fmt.Sprintf(`{"status":%q,"client_id":%q,"timestamp":%q}`,
			status, clientID, ts)
	}
	return fmt.Sprintf(`{"status":%q,"client_id":%q,"reason":%q,"timestamp":%q}`,
		status, clientID, reason, ts)
}
