package remote

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ferment8/brauhaus-core/internal/infrastructure/mqtt"
)

// publishQueueSize bounds the publish backlog. A stalled broker drops
// updates once the queue fills; the retained topic catches up on the next
// accepted publish.
const publishQueueSize = 64

// Client is the MQTT surface the binding needs. Satisfied by
// *mqtt.Client; tests substitute a fake.
type Client interface {
	// Publish sends a message to a topic.
	Publish(topic string, payload []byte, qos byte, retained bool) error

	// Subscribe registers a handler for a topic pattern.
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// Logger is the logging interface used by the binding.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Binding wires a set of process variables to an MQTT client.
//
// Outbound: accepted writes on streaming variables are queued and
// published retained to brauhaus/var/{name} from the binding's own
// goroutine, so broker lag never reaches the writer.
//
// Inbound: writes to brauhaus/var/{name}/set and latch changes on
// brauhaus/var/{name}/override are applied to the named variable.
//
// Thread Safety: all methods are safe for concurrent use.
type Binding struct {
	client Client
	topics mqtt.Topics
	vars   map[string]Variable

	queue    chan Variable
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once

	logger   Logger
	loggerMu sync.RWMutex
}

// NewBinding creates a binding over the given variables. Variable names
// must be non-empty, topic-safe and unique. Call Start to begin
// operation.
func NewBinding(client Client, vars ...Variable) (*Binding, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	byName := make(map[string]Variable, len(vars))
	for _, v := range vars {
		if err := validateName(v.Name()); err != nil {
			return nil, err
		}
		if _, exists := byName[v.Name()]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, v.Name())
		}
		byName[v.Name()] = v
	}

	return &Binding{
		client: client,
		vars:   byName,
		queue:  make(chan Variable, publishQueueSize),
		done:   make(chan struct{}),
		logger: noopLogger{},
	}, nil
}

// Start attaches the notify hooks, subscribes to the inbound topics,
// starts the publisher goroutine and seeds the retained value topics so
// late subscribers see current state immediately.
func (b *Binding) Start() error {
	for _, v := range b.vars {
		if v.StreamsOut() {
			v.SetNotify(b.push)
		}
	}

	if err := b.client.Subscribe(b.topics.AllVarSets(), 1, b.handleSet); err != nil {
		return fmt.Errorf("subscribe to variable writes: %w", err)
	}
	if err := b.client.Subscribe(b.topics.AllVarOverrides(), 1, b.handleOverride); err != nil {
		return fmt.Errorf("subscribe to override controls: %w", err)
	}

	b.wg.Add(1)
	go b.run()

	for name, v := range b.vars {
		if v.StreamsOut() {
			b.push(name)
		}
	}

	b.getLogger().Info("remote variable binding started", "variables", len(b.vars))
	return nil
}

// Stop detaches the notify hooks and shuts down the publisher goroutine.
// Updates still queued are discarded.
func (b *Binding) Stop() {
	b.stopOnce.Do(func() {
		for _, v := range b.vars {
			v.SetNotify(nil)
		}
		close(b.done)
		b.wg.Wait()
	})
}

// push queues a variable for publishing without blocking the caller.
func (b *Binding) push(name string) {
	v, ok := b.vars[name]
	if !ok {
		return
	}
	select {
	case b.queue <- v:
	default:
		b.getLogger().Warn("publish queue full, dropping update", "variable", name)
	}
}

// run is the publisher goroutine. It reads each variable's payload at
// publish time, so a burst of writes collapses into the latest value, and
// skips publishes that would repeat the retained state.
func (b *Binding) run() {
	defer b.wg.Done()

	published := make(map[string][]byte)
	for {
		select {
		case <-b.done:
			return
		case v := <-b.queue:
			payload := v.Payload()
			if prev, ok := published[v.Name()]; ok && bytes.Equal(prev, payload) {
				continue
			}

			topic := b.topics.Var(v.Name())
			if err := b.client.Publish(topic, payload, 1, true); err != nil {
				b.getLogger().Error("failed to publish variable", "topic", topic, "error", err)
				continue
			}
			published[v.Name()] = payload
		}
	}
}

// handleSet applies an inbound remote write to the named variable.
func (b *Binding) handleSet(topic string, payload []byte) error {
	name := mqtt.VarNameFromTopic(topic)
	v, ok := b.vars[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVariable, name)
	}

	if err := v.ApplyRemote(payload); err != nil {
		return fmt.Errorf("remote write to %s: %w", name, err)
	}

	b.getLogger().Debug("remote write applied",
		"variable", name,
		"payload", string(payload))

	// Mirror the accepted value back to the retained state topic.
	if v.StreamsOut() {
		b.push(name)
	}
	return nil
}

// handleOverride engages or releases the named variable's override latch.
func (b *Binding) handleOverride(topic string, payload []byte) error {
	name := mqtt.VarNameFromTopic(topic)
	v, ok := b.vars[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVariable, name)
	}

	active, err := strconv.ParseBool(strings.TrimSpace(string(payload)))
	if err != nil {
		return fmt.Errorf("override for %s: %w: %q", name, ErrBadPayload, payload)
	}

	if err := v.ApplyOverride(active); err != nil {
		return fmt.Errorf("override for %s: %w", name, err)
	}

	b.getLogger().Info("variable override changed",
		"variable", name,
		"active", active)
	return nil
}

// SetLogger sets the logger for the binding.
func (b *Binding) SetLogger(logger Logger) {
	if logger == nil {
		return
	}
	b.loggerMu.Lock()
	b.logger = logger
	b.loggerMu.Unlock()
}

func (b *Binding) getLogger() Logger {
	b.loggerMu.RLock()
	defer b.loggerMu.RUnlock()
	return b.logger
}
