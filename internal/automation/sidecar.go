package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Sidecar result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// SidecarResult is the JSON object the sidecar prints on stdout.
type SidecarResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// Runner executes a program and captures its output. ExecRunner runs real
// processes; tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

// Run starts name with args and waits for it to exit. A non-zero exit status
// is returned as an *exec.ExitError along with the captured output.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// SidecarSubmitter hands payloads to the form-automation executable as
// "--json <payload>".
type SidecarSubmitter struct {
	path   string
	runner Runner
	logger *slog.Logger
}

// NewSidecarSubmitter creates a submitter for the executable at path. A nil
// runner means ExecRunner, a nil logger discards.
func NewSidecarSubmitter(path string, runner Runner, logger *slog.Logger) *SidecarSubmitter {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SidecarSubmitter{path: path, runner: runner, logger: logger}
}

// Submit runs the sidecar and decodes its verdict.
//
// RETURNS:
//   - The sidecar's result. Output that is not a result object becomes a
//     StatusError result whose details carry stderr.
//   - ErrNoSidecar when no path is configured, or an error when the payload
//     cannot be encoded. A sidecar that ran but failed is not a Go error.
func (s *SidecarSubmitter) Submit(ctx context.Context, payload Payload) (SidecarResult, error) {
	if s.path == "" {
		return SidecarResult{}, ErrNoSidecar
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return SidecarResult{}, fmt.Errorf("failed to encode payload: %w", err)
	}

	s.logger.Info("starting form automation", "sidecar", s.path, "items", len(payload.OrderData.Items))
	stdout, stderr, runErr := s.runner.Run(ctx, s.path, "--json", string(data))
	if len(stderr) > 0 {
		s.logger.Debug("sidecar stderr", "output", strings.TrimSpace(string(stderr)))
	}

	result, parseErr := parseSidecarOutput(stdout)
	if parseErr != nil {
		details := strings.TrimSpace(string(stderr))
		if details == "" {
			details = parseErr.Error()
			if runErr != nil {
				details = runErr.Error()
			}
		}
		if ctx.Err() != nil {
			details = ctx.Err().Error()
		}
		return SidecarResult{Status: StatusError, Message: "Failed to parse sidecar output", Details: details}, nil
	}

	s.logger.Info("form automation finished", "status", result.Status, "message", result.Message)
	return result, nil
}

// parseSidecarOutput decodes the last non-empty stdout line, which is where
// the sidecar prints its verdict.
func parseSidecarOutput(stdout []byte) (SidecarResult, error) {
	lines := strings.Split(strings.TrimSpace(string(stdout)), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return SidecarResult{}, errors.New("sidecar printed nothing")
	}

	var result SidecarResult
	if err := json.Unmarshal([]byte(last), &result); err != nil {
		return SidecarResult{}, fmt.Errorf("failed to decode sidecar output: %w", err)
	}
	switch result.Status {
	case StatusSuccess, StatusError:
		return result, nil
	default:
		return SidecarResult{}, fmt.Errorf("unknown sidecar status %q", result.Status)
	}
}
