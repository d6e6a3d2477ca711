// ABOUTME: Tests for entity models
// ABOUTME: Covers legacy contact_ids decoding and interaction type normalization
package models

import (
	"encoding/json"
	"testing"
)

func TestInteractionUnmarshalListShape(t *testing.T) {
	data := []byte(`{"id":"x","contact_ids":["a","b"],"date":"2026-01-02","type":"call"}`)

	var in Interaction
	if err := json.Unmarshal(data, &in); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if len(in.ContactIDs) != 2 || in.ContactIDs[0] != "a" || in.ContactIDs[1] != "b" {
		t.Errorf("Expected [a b], got %v", in.ContactIDs)
	}
}

func TestInteractionUnmarshalLegacyScalar(t *testing.T) {
	data := []byte(`{"id":"x","contact_ids":"a","date":"2026-01-02","type":"call"}`)

	var in Interaction
	if err := json.Unmarshal(data, &in); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if len(in.ContactIDs) != 1 || in.ContactIDs[0] != "a" {
		t.Errorf("Expected [a], got %v", in.ContactIDs)
	}
}

func TestInteractionUnmarshalLegacyContactIDField(t *testing.T) {
	data := []byte(`{"id":"x","contact_id":"a","date":"2026-01-02","type":"call"}`)

	var in Interaction
	if err := json.Unmarshal(data, &in); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if len(in.ContactIDs) != 1 || in.ContactIDs[0] != "a" {
		t.Errorf("Expected [a], got %v", in.ContactIDs)
	}
}

func TestInteractionMarshalWritesListShape(t *testing.T) {
	in := Interaction{ID: "x", ContactIDs: []string{"a"}, Date: "2026-01-02", Type: "call"}

	data, err := json.Marshal(&in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if _, ok := raw["contact_ids"].([]interface{}); !ok {
		t.Errorf("contact_ids was not written as a list: %v", raw["contact_ids"])
	}
}

func TestNormalizeInteractionType(t *testing.T) {
	cases := map[string]string{
		"":          DefaultInteractionType,
		"call":      InteractionCall,
		"catch-up":  InteractionCatchUp,
		"carrier-pigeon": InteractionOther,
	}

	for input, want := range cases {
		if got := NormalizeInteractionType(input); got != want {
			t.Errorf("NormalizeInteractionType(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestHasParticipant(t *testing.T) {
	in := Interaction{ContactIDs: []string{"a", "b"}}

	if !in.HasParticipant("a") {
		t.Error("Expected participant a to be found")
	}
	if in.HasParticipant("c") {
		t.Error("Did not expect participant c")
	}
}
