// Package judge runs user-submitted code against the Judge0 API and
// serves a small catalog of imported external problems.
package judge

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/question-bank/backend/internal/models"
)

// languageIDs maps supported language names to Judge0 language IDs.
var languageIDs = map[string]int{
	"python":     71,
	"java":       62,
	"cpp":        54,
	"c":          50,
	"javascript": 63,
	"go":         60,
	"rust":       73,
	"csharp":     51,
}

// acceptedStatus is Judge0's status ID for a run that finished cleanly.
const acceptedStatus = 3

type Client struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
}

// NewClient reads JUDGE0_API_URL and RAPIDAPI_KEY from the environment.
// The key is only attached when set, so a self-hosted Judge0 works too.
func NewClient() *Client {
	apiURL := os.Getenv("JUDGE0_API_URL")
	if apiURL == "" {
		apiURL = "https://judge0-ce.p.rapidapi.com"
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiURL:     strings.TrimRight(apiURL, "/"),
		apiKey:     os.Getenv("RAPIDAPI_KEY"),
	}
}

// SupportedLanguage reports whether code in the given language can be run.
func SupportedLanguage(language string) bool {
	_, ok := languageIDs[strings.ToLower(language)]
	return ok
}

type submissionRequest struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
	Stdin      string `json:"stdin,omitempty"`
}

type submissionResult struct {
	Stdout        *string `json:"stdout"`
	Stderr        *string `json:"stderr"`
	CompileOutput *string `json:"compile_output"`
	Time          *string `json:"time"`
	Memory        *int    `json:"memory"`
	Status        struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
}

// Submit runs code once with the given stdin and returns the outcome.
// Payloads travel base64-encoded; wait=true makes Judge0 block until the
// run finishes instead of returning a polling token.
func (c *Client) Submit(ctx context.Context, code, language, stdin string) (*models.ExecutionResult, error) {
	langID, ok := languageIDs[strings.ToLower(language)]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}

	body, err := json.Marshal(submissionRequest{
		SourceCode: base64.StdEncoding.EncodeToString([]byte(code)),
		LanguageID: langID,
		Stdin:      base64.StdEncoding.EncodeToString([]byte(stdin)),
	})
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	url := c.apiURL + "/submissions?base64_encoded=true&wait=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("judge request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("judge returned status %d", resp.StatusCode)
	}

	var result submissionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode judge response: %w", err)
	}

	return parseResult(&result), nil
}

func parseResult(r *submissionResult) *models.ExecutionResult {
	exec := &models.ExecutionResult{
		Success: r.Status.ID == acceptedStatus,
	}

	if r.Stdout != nil {
		exec.Output = decodeField(*r.Stdout)
	}
	if !exec.Success {
		switch {
		case r.CompileOutput != nil && *r.CompileOutput != "":
			exec.Error = decodeField(*r.CompileOutput)
		case r.Stderr != nil && *r.Stderr != "":
			exec.Error = decodeField(*r.Stderr)
		default:
			exec.Error = r.Status.Description
		}
	}
	if r.Time != nil {
		fmt.Sscanf(*r.Time, "%f", &exec.ExecutionTime)
	}
	if r.Memory != nil {
		exec.MemoryUsage = *r.Memory
	}
	return exec
}

// decodeField tolerates both base64 and plain-text fields; some Judge0
// deployments return errors unencoded.
func decodeField(s string) string {
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return s
	}
	return string(decoded)
}

// RunTests executes the code once per test case and compares trimmed
// stdout with the expected output. It stops at the first execution error
// since later cases would fail the same way.
func (c *Client) RunTests(ctx context.Context, code, language string, cases []models.TestCase) (*models.ExecutionResult, error) {
	if len(cases) == 0 {
		return c.Submit(ctx, code, language, "")
	}

	combined := &models.ExecutionResult{TotalTestCases: len(cases)}
	for _, tc := range cases {
		result, err := c.Submit(ctx, code, language, tc.Input)
		if err != nil {
			return nil, err
		}

		combined.ExecutionTime += result.ExecutionTime
		if result.MemoryUsage > combined.MemoryUsage {
			combined.MemoryUsage = result.MemoryUsage
		}
		combined.Output = result.Output

		if !result.Success {
			combined.Error = result.Error
			break
		}
		if strings.TrimSpace(result.Output) != strings.TrimSpace(tc.ExpectedOutput) {
			combined.Error = fmt.Sprintf("wrong answer on input %q: got %q, want %q",
				tc.Input, strings.TrimSpace(result.Output), strings.TrimSpace(tc.ExpectedOutput))
			break
		}
		combined.TestCasesPassed++
	}

	combined.Success = combined.TestCasesPassed == combined.TotalTestCases
	return combined, nil
}
