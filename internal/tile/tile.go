// Package tile provides the behaviors bound to board waypoints. Tile kinds
// are a closed, author-controlled set dispatched by a switch rather than an
// open class hierarchy.
package tile

import (
	"fmt"

	"github.com/samdwyer/boardwalk/internal/entity"
)

// Kind classifies a tile's behavior.
type Kind int

const (
	// KindNormal tiles do nothing when entered.
	KindNormal Kind = iota
	// KindEvent tiles show a message when a token stops on them.
	KindEvent
	// KindZone tiles offer a transfer off the board; the transfer must be
	// confirmed before it commits.
	KindZone
	// KindGate tiles fire on every traversal, not just when stopped on.
	KindGate
)

// String returns the kind's data identifier.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindEvent:
		return "event"
	case KindZone:
		return "zone"
	case KindGate:
		return "gate"
	default:
		return "unknown"
	}
}

// ParseKind maps a data identifier to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "normal", "":
		return KindNormal, nil
	case "event":
		return KindEvent, nil
	case "zone":
		return KindZone, nil
	case "gate":
		return KindGate, nil
	default:
		return KindNormal, fmt.Errorf("unknown tile kind %q", s)
	}
}

// Descriptor describes one tile. Descriptors are authored data, read-only at
// runtime; waypoints reference them by ID.
type Descriptor struct {
	ID            string
	Kind          Kind
	TriggerOnPass bool   // fire on intermediate steps, not only on stop
	Message       string // shown when the tile fires
	Zone          string // KindZone: destination identifier
	Color         string // display color name
}

// Transfer is a request to move the token off the board. It requires a
// confirmation before it commits.
type Transfer struct {
	Zone    string
	Message string
}

// Outcome is what happened when a tile fired. Outcomes are values; applying
// the same enter twice produces the same outcome (per-call idempotence).
type Outcome struct {
	Fired    bool
	Message  string
	Transfer *Transfer
}

// Dispatch executes a tile's enter effect for the given token. A nil
// descriptor or an unrecognized kind is a data fault and yields an inert
// outcome rather than an error.
func Dispatch(desc *Descriptor, tok *entity.Token) Outcome {
	if desc == nil {
		return Outcome{}
	}
	switch desc.Kind {
	case KindNormal:
		return Outcome{}
	case KindEvent:
		return Outcome{
			Fired:   true,
			Message: fmt.Sprintf("%s: %s", tok.Name, desc.Message),
		}
	case KindZone:
		return Outcome{
			Fired:   true,
			Message: fmt.Sprintf("%s: %s", tok.Name, desc.Message),
			Transfer: &Transfer{
				Zone:    desc.Zone,
				Message: desc.Message,
			},
		}
	case KindGate:
		return Outcome{
			Fired:   true,
			Message: fmt.Sprintf("%s passes through: %s", tok.Name, desc.Message),
		}
	default:
		return Outcome{}
	}
}
