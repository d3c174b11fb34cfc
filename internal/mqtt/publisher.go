// Package mqtt announces admin content changes so connected displays can refresh.
package mqtt

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTopicPrefix = "umqura/changes"
	publishTimeout     = 5 * time.Second
	queueSize          = 64
)

type Action string

const (
	Created Action = "created"
	Updated Action = "updated"
	Deleted Action = "deleted"
)

// Event is the JSON payload published for every admin mutation.
type Event struct {
	Entity string    `json:"entity"`
	Action Action    `json:"action"`
	ID     int       `json:"id"`
	At     time.Time `json:"at"`
}

type Publisher interface {
	Publish(ev Event)
	Close()
}

// Noop is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(Event) {}
func (Noop) Close()        {}

type Config struct {
	BrokerURL   string
	ClientID    string
	TopicPrefix string
}

// pahoPublisher queues events and sends them from a single goroutine.
type pahoPublisher struct {
	client  paho.Client
	prefix  string
	now     func() time.Time
	timeout time.Duration

	queue     chan Event
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// MQTT connection handler
var connectHandler paho.OnConnectHandler = func(client paho.Client) {
	log.Info().Msg("connected to MQTT broker")
}

// MQTT connection lost handler
var connectLostHandler paho.ConnectionLostHandler = func(client paho.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// New connects to the broker, or returns Noop when BrokerURL is empty.
func New(cfg Config) (Publisher, error) {
	if cfg.BrokerURL == "" {
		log.Info().Msg("MQTT_BROKER_URL not set, change notifications disabled")
		return Noop{}, nil
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "um-qura-back"
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.BrokerURL)
	opts.SetClientID(cfg.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(10 * time.Second)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	log.Info().Str("broker", cfg.BrokerURL).Msg("MQTT client initialized successfully")
	return NewWithClient(client, cfg.TopicPrefix), nil
}

// NewWithClient wraps an already connected client.
func NewWithClient(client paho.Client, prefix string) Publisher {
	return newPublisher(client, prefix, publishTimeout)
}

func newPublisher(client paho.Client, prefix string, timeout time.Duration) *pahoPublisher {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	p := &pahoPublisher{
		client:  client,
		prefix:  prefix,
		now:     time.Now,
		timeout: timeout,
		queue:   make(chan Event, queueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go p.run()
	return p
}

// Topic is <prefix>/<entity>.
func (p *pahoPublisher) Topic(entity string) string {
	return p.prefix + "/" + entity
}

// Publish enqueues ev and returns immediately. When the queue is full the
// event is dropped.
func (p *pahoPublisher) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = p.now().UTC()
	}
	select {
	case <-p.done:
		return
	default:
	}
	select {
	case p.queue <- ev:
	default:
		log.Warn().Str("entity", ev.Entity).Int("id", ev.ID).Msg("MQTT queue full, change event dropped")
	}
}

func (p *pahoPublisher) run() {
	defer close(p.stopped)
	for {
		select {
		case ev := <-p.queue:
			p.send(ev)
		case <-p.done:
			// flush what is already queued
			for {
				select {
				case ev := <-p.queue:
					p.send(ev)
				default:
					return
				}
			}
		}
	}
}

// send publishes at QoS 1. Failures are logged, never returned.
func (p *pahoPublisher) send(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode change event")
		return
	}

	topic := p.Topic(ev.Entity)
	token := p.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(p.timeout) {
		log.Warn().Str("topic", topic).Msg("MQTT publish timed out")
		return
	}
	if err := token.Error(); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to publish change event")
		return
	}
	log.Debug().Str("topic", topic).Int("id", ev.ID).Str("action", string(ev.Action)).Msg("change event published")
}

// Close stops accepting events, sends the queued ones, then disconnects.
func (p *pahoPublisher) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
		<-p.stopped
		p.client.Disconnect(250)
		log.Info().Msg("MQTT client disconnected")
	})
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *Recorder) Close() {}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
