package v1

import (
	"encoding/json"
	"testing"
)

func TestOptionalTriState(t *testing.T) {
	type payload struct {
		Field optional[string] `json:"field"`
	}

	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValue   *string
	}{
		{name: "absent key", body: `{}`, wantPresent: false},
		{name: "explicit null", body: `{"field":null}`, wantPresent: true, wantValue: nil},
		{name: "value", body: `{"field":"x"}`, wantPresent: true, wantValue: strPtr("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			if p.Field.Present() != tt.wantPresent {
				t.Errorf("present: got %v want %v", p.Field.Present(), tt.wantPresent)
			}
			got := p.Field.Value()
			switch {
			case tt.wantValue == nil && got != nil:
				t.Errorf("value: got %q want nil", *got)
			case tt.wantValue != nil && (got == nil || *got != *tt.wantValue):
				t.Errorf("value: got %v want %q", got, *tt.wantValue)
			}
		})
	}
}

func TestOptionalRejectsWrongType(t *testing.T) {
	type payload struct {
		Field optional[int64] `json:"field"`
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"field":"not a number"}`), &p); err == nil {
		t.Fatal("expected a type error")
	}
}

func strPtr(s string) *string { return &s }
