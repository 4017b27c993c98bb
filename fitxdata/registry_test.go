package fitxdata

import (
	"testing"

	"github.com/lucasjlepore/fitcore/fitproto"
)

func TestRegisterWithKnownApplicationUsesGUIDKey(t *testing.T) {
	r := New()
	r.RecordApplication(0, "27dfb7e5900f4c2d80abc57015f42124")

	ft := r.Register(0, 1, "eE", fitproto.Uint16)
	if ft.StableKey != "27dfb7e5900f4c2d80abc57015f42124-1" {
		t.Fatalf("unexpected stable key: %q", ft.StableKey)
	}

	got, ok := r.Lookup(DevDataOffset+0, 1)
	if !ok {
		t.Fatal("expected lookup to succeed")
	}
	if got.StableKey != ft.StableKey || got.Base != fitproto.Uint16 {
		t.Fatalf("unexpected lookup result: %+v", got)
	}
}

func TestRegisterWithoutApplicationUsesFieldName(t *testing.T) {
	r := New()
	ft := r.Register(2, 5, "custom_metric", fitproto.Float32)
	if ft.StableKey != "custom_metric" {
		t.Fatalf("expected field name as key, got %q", ft.StableKey)
	}
}

func TestResetClearsState(t *testing.T) {
	r := New()
	r.RecordApplication(0, "abc")
	r.Register(0, 1, "x", fitproto.Uint8)
	r.Reset()

	if _, ok := r.ApplicationGUID(0); ok {
		t.Fatal("expected application guid to be cleared after Reset")
	}
	if _, ok := r.Lookup(DevDataOffset+0, 1); ok {
		t.Fatal("expected field registration to be cleared after Reset")
	}
}
