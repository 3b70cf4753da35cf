package schema

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	s := Schema{
		"model":       {Type: String(), Required: true},
		"temperature": {Type: Float()},
		"retries":     {Type: Int()},
		"stream":      {Type: Bool()},
		"stops":       {Type: Slice(String())},
		"mode":        {Type: Enum("chat", "completion")},
	}

	tests := []struct {
		name    string
		data    map[string]any
		wantErr string // substring; empty means valid
	}{
		{
			name: "Valid Full Payload",
			data: map[string]any{
				"model":       "gemini-pro",
				"temperature": 0.7,
				"retries":     3,
				"stream":      true,
				"stops":       []any{"END"},
				"mode":        "chat",
			},
		},
		{
			name: "Missing Optional Fields",
			data: map[string]any{"model": "gemini-pro"},
		},
		{
			name:    "Missing Required Field",
			data:    map[string]any{"temperature": 0.2},
			wantErr: `field "model": required`,
		},
		{
			name:    "Wrong Type",
			data:    map[string]any{"model": "m", "retries": "three"},
			wantErr: "expected int",
		},
		{
			name: "JSON Whole Float Accepted As Int",
			data: map[string]any{"model": "m", "retries": float64(3)},
		},
		{
			name:    "Fractional Float Rejected As Int",
			data:    map[string]any{"model": "m", "retries": 3.5},
			wantErr: "not a whole number",
		},
		{
			name:    "Enum Rejects Unknown Option",
			data:    map[string]any{"model": "m", "mode": "dream"},
			wantErr: "is not one of",
		},
		{
			name:    "Slice Element Type Checked",
			data:    map[string]any{"model": "m", "stops": []any{"ok", 7}},
			wantErr: "element 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(s, tt.data)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_AggregatesAllFailures(t *testing.T) {
	s := Schema{
		"a": {Type: String(), Required: true},
		"b": {Type: Int(), Required: true},
	}
	err := Validate(s, map[string]any{})

	var agg *AggregateError
	if !errors.As(err, &agg) {
		t.Fatalf("expected AggregateError, got %T", err)
	}
	if len(agg.Errors) != 2 {
		t.Errorf("got %d errors, want 2", len(agg.Errors))
	}
}

func TestValidate_EmptySchemaSkipsValidation(t *testing.T) {
	if err := Validate(nil, map[string]any{"anything": struct{}{}}); err != nil {
		t.Errorf("empty schema must not validate: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	s := Schema{
		"model":       {Type: String(), Default: "gemini-flash"},
		"temperature": {Type: Float(), Default: 1.0},
	}
	in := map[string]any{"temperature": 0.1}

	out := ApplyDefaults(s, in)
	if out["model"] != "gemini-flash" {
		t.Errorf("default not applied: %v", out)
	}
	if out["temperature"] != 0.1 {
		t.Errorf("explicit value overridden: %v", out)
	}
	if _, exists := in["model"]; exists {
		t.Error("input map was mutated")
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "string", want: "string"},
		{in: "int", want: "int"},
		{in: "float", want: "float"},
		{in: "bool", want: "bool"},
		{in: "[string]", want: "[string]"},
		{in: "[[int]]", want: "[[int]]"},
		{in: "wibble", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseType(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseType(%q) error: %v", tt.in, err)
			continue
		}
		if got.Name() != tt.want {
			t.Errorf("ParseType(%q).Name() = %q, want %q", tt.in, got.Name(), tt.want)
		}
	}
}

func TestWidgetFor(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{String(), WidgetText},
		{Bool(), WidgetCheckbox},
		{Int(), WidgetNumber},
		{Float(), WidgetNumber},
		{Slice(String()), WidgetList},
		{Enum("a", "b"), WidgetSelect},
	}
	for _, tt := range tests {
		if got := WidgetFor(tt.typ); got != tt.want {
			t.Errorf("WidgetFor(%s) = %q, want %q", tt.typ.Name(), got, tt.want)
		}
	}
}
