package judge

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/question-bank/backend/internal/models"
)

func newTestClient(serverURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		apiURL:     serverURL,
	}
}

// fakeJudge returns a Judge0 server that echoes the decoded stdin as
// stdout with an accepted status.
func fakeJudge(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req submissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode submission: %v", err)
		}
		stdin, err := base64.StdEncoding.DecodeString(req.Stdin)
		if err != nil {
			t.Fatalf("stdin not base64: %v", err)
		}

		stdout := base64.StdEncoding.EncodeToString(stdin)
		execTime := "0.02"
		mem := 1024
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(submissionResult{
			Stdout: &stdout,
			Time:   &execTime,
			Memory: &mem,
			Status: struct {
				ID          int    `json:"id"`
				Description string `json:"description"`
			}{ID: acceptedStatus, Description: "Accepted"},
		})
	}))
}

func TestSubmit(t *testing.T) {
	server := fakeJudge(t)
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Submit(context.Background(), "print(input())", "python", "hello")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !result.Success {
		t.Error("expected success")
	}
	if result.Output != "hello" {
		t.Errorf("Output = %q, want %q", result.Output, "hello")
	}
	if result.ExecutionTime != 0.02 {
		t.Errorf("ExecutionTime = %f, want 0.02", result.ExecutionTime)
	}
	if result.MemoryUsage != 1024 {
		t.Errorf("MemoryUsage = %d, want 1024", result.MemoryUsage)
	}
}

func TestSubmitUnsupportedLanguage(t *testing.T) {
	client := newTestClient("http://unused")
	if _, err := client.Submit(context.Background(), "code", "cobol", ""); err == nil {
		t.Error("expected error for unsupported language")
	}
}

func TestRunTestsAllPass(t *testing.T) {
	server := fakeJudge(t)
	defer server.Close()

	client := newTestClient(server.URL)
	cases := []models.TestCase{
		{Input: "a", ExpectedOutput: "a"},
		{Input: "b", ExpectedOutput: "b\n"}, // whitespace is trimmed
	}
	result, err := client.RunTests(context.Background(), "echo", "python", cases)
	if err != nil {
		t.Fatalf("RunTests: %v", err)
	}
	if !result.Success {
		t.Errorf("expected success, got error %q", result.Error)
	}
	if result.TestCasesPassed != 2 || result.TotalTestCases != 2 {
		t.Errorf("passed %d/%d, want 2/2", result.TestCasesPassed, result.TotalTestCases)
	}
}

func TestRunTestsWrongAnswer(t *testing.T) {
	server := fakeJudge(t)
	defer server.Close()

	client := newTestClient(server.URL)
	cases := []models.TestCase{
		{Input: "a", ExpectedOutput: "a"},
		{Input: "b", ExpectedOutput: "c"},
		{Input: "d", ExpectedOutput: "d"},
	}
	result, err := client.RunTests(context.Background(), "echo", "python", cases)
	if err != nil {
		t.Fatalf("RunTests: %v", err)
	}
	if result.Success {
		t.Error("expected failure")
	}
	// Stops at the first mismatch, so the third case never runs.
	if result.TestCasesPassed != 1 {
		t.Errorf("passed = %d, want 1", result.TestCasesPassed)
	}
	if result.Error == "" {
		t.Error("expected an error message")
	}
}

func TestParseResultCompileError(t *testing.T) {
	compileOut := base64.StdEncoding.EncodeToString([]byte("syntax error"))
	r := &submissionResult{CompileOutput: &compileOut}
	r.Status.ID = 6
	r.Status.Description = "Compilation Error"

	result := parseResult(r)
	if result.Success {
		t.Error("expected failure")
	}
	if result.Error != "syntax error" {
		t.Errorf("Error = %q, want %q", result.Error, "syntax error")
	}
}

func TestSupportedLanguage(t *testing.T) {
	if !SupportedLanguage("Python") {
		t.Error("python should be supported, case-insensitively")
	}
	if SupportedLanguage("cobol") {
		t.Error("cobol should not be supported")
	}
}
