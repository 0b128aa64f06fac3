package tile

import (
	"testing"

	"github.com/samdwyer/boardwalk/internal/entity"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"normal", KindNormal, false},
		{"", KindNormal, false},
		{"event", KindEvent, false},
		{"zone", KindZone, false},
		{"gate", KindGate, false},
		{"teleporter", KindNormal, true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNormal, "normal"},
		{KindEvent, "event"},
		{KindZone, "zone"},
		{KindGate, "gate"},
		{Kind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestDispatchNormalIsInert(t *testing.T) {
	tok := entity.NewPlayer()
	out := Dispatch(&Descriptor{ID: "plain", Kind: KindNormal}, tok)
	if out.Fired || out.Transfer != nil {
		t.Errorf("normal tile fired: %+v", out)
	}
}

func TestDispatchEventCarriesMessage(t *testing.T) {
	tok := entity.NewPlayer()
	out := Dispatch(&Descriptor{ID: "shrine", Kind: KindEvent, Message: "a quiet shrine"}, tok)
	if !out.Fired {
		t.Fatal("event tile should fire")
	}
	if out.Transfer != nil {
		t.Error("event tile should not request a transfer")
	}
	if out.Message == "" {
		t.Error("event tile should carry a message")
	}
}

func TestDispatchZoneRequestsTransfer(t *testing.T) {
	tok := entity.NewPlayer()
	desc := &Descriptor{ID: "cave", Kind: KindZone, Message: "enter the cave?", Zone: "cave-1"}

	out := Dispatch(desc, tok)
	if out.Transfer == nil {
		t.Fatal("zone tile should request a transfer")
	}
	if out.Transfer.Zone != "cave-1" {
		t.Errorf("Transfer.Zone = %q, want %q", out.Transfer.Zone, "cave-1")
	}

	// Dispatch is idempotent per call: same enter, same outcome
	again := Dispatch(desc, tok)
	if again.Transfer == nil || again.Transfer.Zone != out.Transfer.Zone || again.Message != out.Message {
		t.Error("repeated dispatch should produce the same outcome")
	}
}

func TestDispatchNilDescriptor(t *testing.T) {
	out := Dispatch(nil, entity.NewPlayer())
	if out.Fired {
		t.Error("nil descriptor should be inert")
	}
}
