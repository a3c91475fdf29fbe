package recommender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Predictor produces recommendation hints from a user's rating history.
// Implementations are fallible as a whole: a failed prediction run yields
// no hints at all, never a partial list.
type Predictor interface {
	Predict(ctx context.Context, userID int64, ratings []RatingEntry) ([]Hint, error)
}

// ScriptPredictor runs a Python script as a subprocess. The script
// receives the user id and the rating history as arguments and prints a
// JSON array of hints on stdout.
type ScriptPredictor struct {
	python  string
	script  string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewScriptPredictor creates a subprocess-backed predictor.
func NewScriptPredictor(python, script string, timeout time.Duration, logger zerolog.Logger) *ScriptPredictor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ScriptPredictor{
		python:  python,
		script:  script,
		timeout: timeout,
		logger:  logger.With().Str("component", "predictor").Logger(),
	}
}

// Predict invokes the script and parses its stdout. Non-zero exit or
// unparsable output is a single request-level error.
func (p *ScriptPredictor) Predict(ctx context.Context, userID int64, ratings []RatingEntry) ([]Hint, error) {
	payload, err := json.Marshal(ratings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ratings: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.python, p.script,
		"--user-id", strconv.FormatInt(userID, 10),
		"--ratings", string(payload),
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("recommender script failed: %w: %s", err, stderr.String())
	}

	var hints []Hint
	if err := json.Unmarshal(stdout.Bytes(), &hints); err != nil {
		return nil, fmt.Errorf("recommender returned malformed output: %w", err)
	}

	p.logger.Debug().
		Int64("userId", userID).
		Int("ratings", len(ratings)).
		Int("hints", len(hints)).
		Dur("elapsed", time.Since(start)).
		Msg("prediction completed")

	return hints, nil
}
