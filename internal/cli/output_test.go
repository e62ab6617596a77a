package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

type mockDataWithID struct {
	ID   int
	Name string
}

func (m mockDataWithID) GetID() int {
	return m.ID
}

type mockDataWithoutID struct {
	Name  string
	Value int
}

// captureStdout runs fn with os.Stdout redirected
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout = old
	return <-outC
}

func TestOutputFormatter_Success_JSON(t *testing.T) {
	f := &OutputFormatter{JSON: true}
	out := captureStdout(t, func() {
		if err := f.Success(mockDataWithoutID{Name: "x", Value: 42}, nil); err != nil {
			t.Errorf("Success returned error: %v", err)
		}
	})

	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, out)
	}
	if result["success"] != true {
		t.Error("Expected success to be true")
	}
	data := result["data"].(map[string]any)
	if data["Value"] != float64(42) {
		t.Errorf("Expected data.Value to be 42, got %v", data["Value"])
	}
}

func TestOutputFormatter_Success_Quiet(t *testing.T) {
	f := &OutputFormatter{Quiet: true}

	out := captureStdout(t, func() { _ = f.Success(mockDataWithID{ID: 17}, nil) })
	if strings.TrimSpace(out) != "17" {
		t.Errorf("Expected quiet output 17, got %q", out)
	}

	// nothing to print without an id
	out = captureStdout(t, func() { _ = f.Success(mockDataWithoutID{Name: "x"}, func() string { return "human" }) })
	if out != "" {
		t.Errorf("Expected no output, got %q", out)
	}
}

func TestOutputFormatter_Success_Human(t *testing.T) {
	f := &OutputFormatter{}
	out := captureStdout(t, func() { _ = f.Success(mockDataWithID{ID: 3}, func() string { return "rendered" }) })
	if strings.TrimSpace(out) != "rendered" {
		t.Errorf("Expected human renderer output, got %q", out)
	}
}

func TestOutputFormatter_Fail(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantName string
	}{
		{"validation", fmt.Errorf("%w: bad effort", models.ErrValidation), ExitValidation, "VALIDATION_ERROR"},
		{"not found", fmt.Errorf("%w: task 9", models.ErrNotFound), ExitNotFound, "NOT_FOUND"},
		{"usage", &CommandError{Code: ExitUsage, Err: errors.New("missing id")}, ExitUsage, "USAGE_ERROR"},
		{"other", errors.New("disk on fire"), ExitError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &OutputFormatter{JSON: true}
			var err error
			out := captureStdout(t, func() { err = f.Fail(tt.err) })

			if got := ExitCodeFor(err); got != tt.wantCode {
				t.Errorf("ExitCodeFor() = %d, want %d", got, tt.wantCode)
			}
			if !errors.Is(err, tt.err) {
				t.Error("Fail should wrap the original error")
			}

			var result map[string]any
			if jsonErr := json.Unmarshal([]byte(out), &result); jsonErr != nil {
				t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", jsonErr, out)
			}
			errData := result["error"].(map[string]any)
			if errData["code"] != tt.wantName {
				t.Errorf("code = %v, want %s", errData["code"], tt.wantName)
			}
		})
	}
}

func TestExitCodeFor_Nil(t *testing.T) {
	if got := ExitCodeFor(nil); got != ExitSuccess {
		t.Errorf("ExitCodeFor(nil) = %d, want %d", got, ExitSuccess)
	}
}
