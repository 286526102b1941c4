package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse(t *testing.T) {
	schema := &Schema{
		Name: "validate-test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"explanation": map[string]any{"type": "string"},
				"tip":         map[string]any{"type": "string"},
			},
			"required": []string{"explanation"},
		},
	}

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"explanation":"x","tip":"y"}`, false},
		{"missing required", `{"tip":"y"}`, true},
		{"wrong type", `{"explanation":3}`, true},
		{"not json", `explanation: x`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(schema, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			var inv *ErrInvalidResponse
			if err != nil && !errors.As(err, &inv) {
				t.Errorf("error = %T, want *ErrInvalidResponse", err)
			}
		})
	}
}

func TestValidateNilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json`)); err != nil {
		t.Errorf("validateResponse(nil) = %v, want nil", err)
	}
}

func TestFinishTotals(t *testing.T) {
	resp, err := finish(Request{}, json.RawMessage(`{}`), Usage{InputTokens: 3, OutputTokens: 4}, "m", stopEnd)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Usage.TotalTokens != 7 {
		t.Errorf("TotalTokens = %d, want 7", resp.Usage.TotalTokens)
	}

	// Without a schema a truncated response is returned as is.
	resp, err = finish(Request{}, json.RawMessage(`{"a`), Usage{}, "m", stopMaxTokens)
	if err != nil || resp.StopReason != stopMaxTokens {
		t.Errorf("finish() = %v, %v; want truncated response", resp, err)
	}
}
