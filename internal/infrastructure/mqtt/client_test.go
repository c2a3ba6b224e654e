package mqtt

import (
	"errors"
	"testing"
)

// These tests exercise validation and topic construction without a broker.
// Connection behaviour is covered by integration_test.go, which requires a
// running Mosquitto at 127.0.0.1:1883 and the "integration" build tag.

// =============================================================================
// Lifecycle Edge Cases
// =============================================================================

func TestCloseNil(t *testing.T) {
	client := &Client{}
	err := client.Close()
	if err != nil {
		t.Errorf("Close() on nil client error = %v, want nil", err)
	}
}

func TestIsConnected_InitialState(t *testing.T) {
	client := &Client{}

	if client.IsConnected() {
		t.Error("IsConnected() should be false for uninitialised client")
	}
}

// =============================================================================
// Publish Validation
// =============================================================================

func TestPublishEmptyTopic(t *testing.T) {
	client := &Client{}

	err := client.Publish("", []byte("test"), 1, false)
	if !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Publish() error = %v, want ErrInvalidTopic", err)
	}
}

func TestPublishInvalidQoS(t *testing.T) {
	client := &Client{}

	err := client.Publish("test/topic", []byte("test"), 3, false)
	if !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("Publish() error = %v, want ErrInvalidQoS", err)
	}
}

func TestPublishDisconnected(t *testing.T) {
	client := &Client{}

	err := client.Publish("test/topic", []byte("test"), 1, false)
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("Publish() error = %v, want ErrNotConnected", err)
	}
}

// =============================================================================
// Subscribe Validation
// =============================================================================

func TestSubscribeEmptyTopic(t *testing.T) {
	client := &Client{}

	err := client.Subscribe("", 1, func(string, []byte) error { return nil })
	if !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Subscribe() error = %v, want ErrInvalidTopic", err)
	}
}

func TestSubscribeInvalidQoS(t *testing.T) {
	client := &Client{}

	err := client.Subscribe("test/topic", 3, func(string, []byte) error { return nil })
	if !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("Subscribe() error = %v, want ErrInvalidQoS", err)
	}
}

func TestSubscribeNilHandler(t *testing.T) {
	client := &Client{}

	err := client.Subscribe("test/topic", 1, nil)
	if !errors.Is(err, ErrSubscribeFailed) {
		t.Errorf("Subscribe() error = %v, want ErrSubscribeFailed", err)
	}
}

func TestUnsubscribeEmptyTopic(t *testing.T) {
	client := &Client{}

	err := client.Unsubscribe("")
	if !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Unsubscribe() error = %v, want ErrInvalidTopic", err)
	}
}

// =============================================================================
// Topics Tests
// =============================================================================

func TestTopicBuilders(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() string
		expected string
	}{
		{
			name: "Var",
			builder: func() string {
				return Topics{}.Var("boil_kettle_temp")
			},
			expected: "brauhaus/var/boil_kettle_temp",
		},
		{
			name: "VarSet",
			builder: func() string {
				return Topics{}.VarSet("boil_kettle_setpoint")
			},
			expected: "brauhaus/var/boil_kettle_setpoint/set",
		},
		{
			name: "VarOverride",
			builder: func() string {
				return Topics{}.VarOverride("pump_on")
			},
			expected: "brauhaus/var/pump_on/override",
		},
		{
			name: "Event",
			builder: func() string {
				return Topics{}.Event("state_changed")
			},
			expected: "brauhaus/event/state_changed",
		},
		{
			name: "EventStateChanged",
			builder: func() string {
				return Topics{}.EventStateChanged()
			},
			expected: "brauhaus/event/state_changed",
		},
		{
			name: "EventSession",
			builder: func() string {
				return Topics{}.EventSession()
			},
			expected: "brauhaus/event/session",
		},
		{
			name: "SystemStatus",
			builder: func() string {
				return Topics{}.SystemStatus()
			},
			expected: "brauhaus/system/status",
		},
		{
			name: "SystemTime",
			builder: func() string {
				return Topics{}.SystemTime()
			},
			expected: "brauhaus/system/time",
		},
		{
			name: "AllVarSets",
			builder: func() string {
				return Topics{}.AllVarSets()
			},
			expected: "brauhaus/var/+/set",
		},
		{
			name: "AllVarOverrides",
			builder: func() string {
				return Topics{}.AllVarOverrides()
			},
			expected: "brauhaus/var/+/override",
		},
		{
			name: "AllVars",
			builder: func() string {
				return Topics{}.AllVars()
			},
			expected: "brauhaus/var/+",
		},
		{
			name: "AllEvents",
			builder: func() string {
				return Topics{}.AllEvents()
			},
			expected: "brauhaus/event/+",
		},
		{
			name: "AllTopics",
			builder: func() string {
				return Topics{}.AllTopics()
			},
			expected: "brauhaus/#",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.builder()
			if result != tt.expected {
				t.Errorf("%s() = %q, want %q", tt.name, result, tt.expected)
			}
		})
	}
}

func TestVarNameFromTopic(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{
			name:  "value topic",
			topic: "brauhaus/var/boil_kettle_temp",
			want:  "boil_kettle_temp",
		},
		{
			name:  "set topic",
			topic: "brauhaus/var/pump_on/set",
			want:  "pump_on",
		},
		{
			name:  "override topic",
			topic: "brauhaus/var/pump_on/override",
			want:  "pump_on",
		},
		{
			name:  "outside var prefix",
			topic: "brauhaus/system/status",
			want:  "",
		},
		{
			name:  "bare prefix",
			topic: "brauhaus/var/",
			want:  "",
		},
		{
			name:  "unrelated topic",
			topic: "other/var/x",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VarNameFromTopic(tt.topic); got != tt.want {
				t.Errorf("VarNameFromTopic(%q) = %q, want %q", tt.topic, got, tt.want)
			}
		})
	}
}
