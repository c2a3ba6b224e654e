package mqtt

import "fmt"

// Topic prefixes for the Brauhaus MQTT namespace.
//
// Remote process variables use the flat scheme: brauhaus/var/{name}
// with /set and /override suffixes for inbound writes.
const (
	// TopicPrefix is the base for all Brauhaus topics.
	TopicPrefix = "brauhaus"

	// TopicPrefixVar is the base for remote process variable topics.
	TopicPrefixVar = "brauhaus/var"

	// TopicPrefixEvent is the base for brewhouse event topics.
	TopicPrefixEvent = "brauhaus/event"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "brauhaus/system"
)

// Topics provides builders for Brauhaus MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	stateTopic := topics.Var("boil_kettle_temp")
//	// Returns: "brauhaus/var/boil_kettle_temp"
type Topics struct{}

// =============================================================================
// Process Variable Topics
// =============================================================================

// Var returns the topic a process variable's value is streamed to.
// Values are published retained so late subscribers see the last state.
//
// Example: brauhaus/var/boil_kettle_temp
func (Topics) Var(name string) string {
	return fmt.Sprintf("%s/%s", TopicPrefixVar, name)
}

// VarSet returns the topic remote writers publish new values to.
// Only variables that accept overrides act on these messages.
//
// Example: brauhaus/var/boil_kettle_setpoint/set
func (Topics) VarSet(name string) string {
	return fmt.Sprintf("%s/%s/set", TopicPrefixVar, name)
}

// VarOverride returns the topic that engages or releases a variable's
// override latch. Payload "1"/"true" engages, "0"/"false" releases.
//
// Example: brauhaus/var/pump_on/override
func (Topics) VarOverride(name string) string {
	return fmt.Sprintf("%s/%s/override", TopicPrefixVar, name)
}

// =============================================================================
// Event Topics
// =============================================================================

// Event returns the topic for brewhouse events.
//
// Example: brauhaus/event/state_changed
func (Topics) Event(eventType string) string {
	return fmt.Sprintf("%s/%s", TopicPrefixEvent, eventType)
}

// EventStateChanged returns the topic announcing recipe state transitions.
//
// Example: brauhaus/event/state_changed
func (Topics) EventStateChanged() string {
	return fmt.Sprintf("%s/state_changed", TopicPrefixEvent)
}

// EventSession returns the topic announcing brew session lifecycle changes.
//
// Example: brauhaus/event/session
func (Topics) EventSession() string {
	return fmt.Sprintf("%s/session", TopicPrefixEvent)
}

// =============================================================================
// System Topics
// =============================================================================

// SystemStatus returns the system status topic.
// Carries the online payload, the LWT crash payload, and the graceful
// offline payload, all retained.
//
// Example: brauhaus/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// SystemTime returns the time sync topic.
//
// Example: brauhaus/system/time
func (Topics) SystemTime() string {
	return fmt.Sprintf("%s/time", TopicPrefixSystem)
}

// =============================================================================
// Wildcard Patterns for Subscriptions
// =============================================================================

// AllVarSets returns a pattern matching all variable write topics.
//
// Pattern: brauhaus/var/+/set
func (Topics) AllVarSets() string {
	return fmt.Sprintf("%s/+/set", TopicPrefixVar)
}

// AllVarOverrides returns a pattern matching all override control topics.
//
// Pattern: brauhaus/var/+/override
func (Topics) AllVarOverrides() string {
	return fmt.Sprintf("%s/+/override", TopicPrefixVar)
}

// AllVars returns a pattern matching all streamed variable values.
// Note this also matches the /set and /override subtopics when used with
// a multi-level wildcard; this single-level pattern does not.
//
// Pattern: brauhaus/var/+
func (Topics) AllVars() string {
	return fmt.Sprintf("%s/+", TopicPrefixVar)
}

// AllEvents returns a pattern matching all brewhouse events.
//
// Pattern: brauhaus/event/+
func (Topics) AllEvents() string {
	return fmt.Sprintf("%s/+", TopicPrefixEvent)
}

// AllTopics returns a pattern matching all Brauhaus topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: brauhaus/#
func (Topics) AllTopics() string {
	return "brauhaus/#"
}

// VarNameFromTopic extracts the variable name from a var subtopic.
// It accepts value, /set and /override topics and returns the name
// segment, or "" if the topic is not under the var prefix.
//
// Example: "brauhaus/var/pump_on/set" -> "pump_on"
func VarNameFromTopic(topic string) string {
	const prefix = TopicPrefixVar + "/"
	if len(topic) <= len(prefix) || topic[:len(prefix)] != prefix {
		return ""
	}
	rest := topic[len(prefix):]
	for i := 0; i < len(rest); i++ {
		if rest[i] == '/' {
			return rest[:i]
		}
	}
	return rest
}
