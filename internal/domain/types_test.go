package domain

import (
	"encoding/json"
	"testing"
)

func TestOutcomeJSON(t *testing.T) {
	payload, err := json.Marshal(map[string]Outcome{"outcome": Player2Wins})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(payload) != `{"outcome":"player2_wins"}` {
		t.Fatalf("unexpected encoding %s", payload)
	}

	var decoded struct {
		Outcome Outcome `json:"outcome"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Outcome != Player2Wins || decoded.Outcome.Winner() != Player2 {
		t.Fatalf("expected player2_wins, got %s", decoded.Outcome)
	}

	if err := json.Unmarshal([]byte(`{"outcome":"stalemate"}`), &decoded); err == nil {
		t.Fatalf("expected an error for an unknown outcome")
	}
}
