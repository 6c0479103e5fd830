// Package broker wraps the MQTT client. Received publications are converted
// to immutable events and handed to a single channel, so the consumer sees
// all traffic in arrival order without sharing state with the client's
// callback goroutines.
package broker

import (
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"

	"github.com/yeager/mqtt-inspector/internal/core/inspect"
)

// eventBuffer is the capacity of the event channel. Bursts beyond this block
// the client's router briefly rather than dropping messages.
const eventBuffer = 256

// EventKind discriminates broker events.
type EventKind int

const (
	EventMessage EventKind = iota
	EventDisconnected
)

// Event is one item on the broker's event stream: either a received message
// or a connection loss.
type Event struct {
	Kind    EventKind
	Message inspect.Message
	Err     error
}

// Options describes one broker connection.
type Options struct {
	Host      string
	Port      int
	TLS       bool
	ClientID  string
	Username  string
	Password  string
	KeepAlive int // seconds
}

// URI returns the connection URI for the options, e.g. "tcp://host:1883".
func (o Options) URI() string {
	scheme := "tcp"
	if o.TLS {
		scheme = "ssl"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, o.Host, o.Port)
}

// Client manages one connection to an MQTT broker.
type Client struct {
	client mqtt.Client
	opts   Options
	events chan Event
	logger zerolog.Logger
}

// New creates an unconnected client for the given broker.
func New(opts Options, logger zerolog.Logger) *Client {
	c := &Client{
		opts:   opts,
		events: make(chan Event, eventBuffer),
		logger: logger.With().Str("component", "broker").Logger(),
	}

	mqttOpts := mqtt.NewClientOptions().
		AddBroker(opts.URI()).
		SetClientID(opts.ClientID).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetCleanSession(true).
		SetAutoReconnect(false).
		SetKeepAlive(time.Duration(opts.KeepAlive) * time.Second).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			c.logger.Warn().Err(err).Msg("connection lost")
			c.events <- Event{Kind: EventDisconnected, Err: err}
		})

	if opts.TLS {
		mqttOpts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	c.client = mqtt.NewClient(mqttOpts)
	return c
}

// Events returns the stream of received messages and connection losses.
// Events arrive in the order the client observed them.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Connect dials the broker, blocking until the connection is established or
// refused.
func (c *Client) Connect() error {
	c.logger.Info().Str("uri", c.opts.URI()).Str("client_id", c.opts.ClientID).Msg("connecting")

	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect to %s: %w", c.opts.URI(), token.Error())
	}
	return nil
}

// Subscribe registers the filter at the given QoS. Received publications are
// timestamped on arrival and queued on the event channel.
func (c *Client) Subscribe(filter string, qos byte) error {
	token := c.client.Subscribe(filter, qos, func(_ mqtt.Client, msg mqtt.Message) {
		c.events <- Event{
			Kind: EventMessage,
			Message: inspect.Message{
				Topic:      msg.Topic(),
				Payload:    msg.Payload(),
				Text:       strings.ToValidUTF8(string(msg.Payload()), "\uFFFD"),
				QoS:        msg.Qos(),
				Retain:     msg.Retained(),
				ReceivedAt: time.Now(),
			},
		}
	})
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe to %q: %w", filter, token.Error())
	}

	c.logger.Info().Str("filter", filter).Uint8("qos", qos).Msg("subscribed")
	return nil
}

// Unsubscribe removes the filter.
func (c *Client) Unsubscribe(filter string) error {
	if token := c.client.Unsubscribe(filter); token.Wait() && token.Error() != nil {
		return fmt.Errorf("unsubscribe from %q: %w", filter, token.Error())
	}
	return nil
}

// Publish sends one message, blocking until the broker acknowledges it at
// the requested QoS.
func (c *Client) Publish(topic string, qos byte, retain bool, payload []byte) error {
	if token := c.client.Publish(topic, qos, retain, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish to %q: %w", topic, token.Error())
	}
	return nil
}

// Connected reports whether the client has a live connection.
func (c *Client) Connected() bool {
	return c.client.IsConnected()
}

// Disconnect closes the connection, allowing a short grace period for
// in-flight work.
func (c *Client) Disconnect() {
	if c.client.IsConnected() {
		c.client.Disconnect(250)
		c.logger.Info().Msg("disconnected")
	}
}
