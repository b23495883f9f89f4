package errors

import (
	"strings"
	"testing"
)

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative", "resources/RAM.bin", false},
		{"absolute", "/tmp/graph.json", false},
		{"empty", "", true},
		{"control character", "ram\x00.bin", true},
		{"newline", "ram\n.bin", true},
		{"too long", strings.Repeat("a", maxPathLength+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateFilePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateTargetName(t *testing.T) {
	valid := []string{"instaboss", "panic-dash", "melt_panic-arena", "time-cut2"}
	for _, name := range valid {
		if err := ValidateTargetName(name); err != nil {
			t.Errorf("ValidateTargetName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "Panic", "-dash", "dash-", "a--b", "a b", strings.Repeat("x", 65)}
	for _, name := range invalid {
		if err := ValidateTargetName(name); err == nil {
			t.Errorf("ValidateTargetName(%q) = nil, want error", name)
		}
	}
}

func TestValidateDepth(t *testing.T) {
	if err := ValidateDepth(0); err != nil {
		t.Errorf("ValidateDepth(0) = %v", err)
	}
	if err := ValidateDepth(-1); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateDepth(-1) = %v, want INVALID_INPUT", err)
	}
}

func TestValidateBackend(t *testing.T) {
	if err := ValidateBackend("Redis", "file", "redis"); err != nil {
		t.Errorf("ValidateBackend(Redis) = %v", err)
	}
	err := ValidateBackend("s3", "file", "redis")
	if !Is(err, ErrCodeInvalidConfig) {
		t.Fatalf("ValidateBackend(s3) = %v, want INVALID_CONFIG", err)
	}
	if !strings.Contains(err.Error(), "file, redis") {
		t.Errorf("message should list allowed backends: %v", err)
	}
}
