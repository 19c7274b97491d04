package handlers

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDecodeSettings(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    map[string]any
		wantErr bool
	}{
		{"empty body", "", map[string]any{}, false},
		{"whitespace", "  \n", map[string]any{}, false},
		{"null", "null", map[string]any{}, false},
		{"object", `{"theme":"dark"}`, map[string]any{"theme": "dark"}, false},
		{"large integer", `{"n":12345678901234567890}`, map[string]any{"n": json.Number("12345678901234567890")}, false},
		{"array", `[1,2]`, nil, true},
		{"scalar", `"dark"`, nil, true},
		{"trailing data", `{"a":1} {"b":2}`, nil, true},
		{"malformed", `{"a":`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeSettings([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}
