package models

import (
	"fmt"
	"strings"
)

// PIDStatus is the lifecycle state of a persistent identifier. It is
// persisted as a single-character code so any serialized representation
// stays compatible across implementations.
type PIDStatus string

const (
	// StatusNew means the PID has not yet been registered with the
	// service provider.
	StatusNew PIDStatus = "N"

	// StatusReserved means the PID is reserved in the service provider
	// but not yet fully registered.
	StatusReserved PIDStatus = "K"

	// StatusRegistered means the PID has been registered with the
	// service provider.
	StatusRegistered PIDStatus = "R"

	// StatusRedirected means the PID has been redirected to another
	// persistent identifier.
	StatusRedirected PIDStatus = "M"

	// StatusDeleted means the PID has been deleted/inactivated with the
	// service provider. This should happen very rarely, and must be kept
	// track of, as the PID value must not be reused for something else.
	StatusDeleted PIDStatus = "D"
)

var statusTitles = map[PIDStatus]string{
	StatusNew:        "New",
	StatusReserved:   "Reserved",
	StatusRegistered: "Registered",
	StatusRedirected: "Redirected",
	StatusDeleted:    "Deleted",
}

// ValidStatuses returns all recognized PID statuses in lifecycle order.
func ValidStatuses() []PIDStatus {
	return []PIDStatus{
		StatusNew,
		StatusReserved,
		StatusRegistered,
		StatusRedirected,
		StatusDeleted,
	}
}

// IsValid returns true if this is a recognized status code.
func (s PIDStatus) IsValid() bool {
	_, ok := statusTitles[s]
	return ok
}

// Title returns the human-readable name of the status.
func (s PIDStatus) Title() string {
	if title, ok := statusTitles[s]; ok {
		return title
	}
	return "Unknown"
}

// String returns the single-character status code.
func (s PIDStatus) String() string {
	return string(s)
}

// ParseStatus converts a status name ("NEW", "RESERVED", ...) or a
// single-character code into a PIDStatus. Matching is case-insensitive.
func ParseStatus(v string) (PIDStatus, error) {
	switch strings.ToUpper(v) {
	case "NEW", "N":
		return StatusNew, nil
	case "RESERVED", "K":
		return StatusReserved, nil
	case "REGISTERED", "R":
		return StatusRegistered, nil
	case "REDIRECTED", "M":
		return StatusRedirected, nil
	case "DELETED", "D":
		return StatusDeleted, nil
	default:
		return "", fmt.Errorf("unknown PID status: %q", v)
	}
}
