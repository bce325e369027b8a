package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigValidator_Required(t *testing.T) {
	cv := NewConfigValidator("Paths")
	cv.Required("Features", "")

	if !cv.HasErrors() {
		t.Error("Expected error for empty required field")
	}

	cv2 := NewConfigValidator("Paths")
	cv2.Required("Features", "data/txs_features.csv")

	if cv2.HasErrors() {
		t.Error("Expected no error for non-empty required field")
	}
}

func TestConfigValidator_Less(t *testing.T) {
	tests := []struct {
		name    string
		a, b    float64
		wantErr bool
	}{
		{"below", 30, 40, false},
		{"equal", 40, 40, true},
		{"above", 50, 40, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfigValidator("Split").Less("TrainEnd", tt.a, "ValEnd", tt.b).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Less(%v, %v) error = %v, wantErr %v", tt.a, tt.b, err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidator_CollectsAllErrors(t *testing.T) {
	cv := NewConfigValidator("Config").
		Required("Name", "").
		Positive("Workers", 0).
		OneOf("Format", "csv", []string{"general", "analytics", "tensor"})

	if got := len(cv.Errors()); got != 3 {
		t.Fatalf("Errors() len = %d, want 3", got)
	}
	err := cv.Validate()
	if err == nil || !strings.Contains(err.Error(), "Config.Format") {
		t.Errorf("Validate() = %v, want joined error mentioning Config.Format", err)
	}
}

func TestConfigValidator_CustomAndWhen(t *testing.T) {
	sentinel := errors.New("nope")

	cv := NewConfigValidator("Config").
		When(false, func(cv *ConfigValidator) { cv.Required("Skipped", "") }).
		Custom("Hook", func() error { return sentinel })

	err := cv.Validate()
	if !errors.Is(err, sentinel) {
		t.Errorf("Validate() = %v, want wrapped sentinel", err)
	}
	if len(cv.Errors()) != 1 {
		t.Errorf("Errors() len = %d, want 1", len(cv.Errors()))
	}
}
