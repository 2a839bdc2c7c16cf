package triage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/FrenchMajesty/ticket-triage/pkg/heuristic"
	"github.com/FrenchMajesty/ticket-triage/pkg/types"
)

// Analyzer dispatches a ticket to the selected strategy. It holds no mutable state,
// so one Analyzer can serve concurrent calls.
type Analyzer struct {
	remote RemoteAnalyzer
	model  string
	logger *slog.Logger
}

// NewAnalyzer creates a new Analyzer with the given configuration
func NewAnalyzer(cfg Config) *Analyzer {
	cfg.applyDefaults()

	return &Analyzer{
		remote: cfg.Remote,
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// Analyze triages text with the strategy named in opts
func (a *Analyzer) Analyze(ctx context.Context, text string, opts Options) (*types.Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, types.ErrEmptyTicket
	}

	strategy := opts.Strategy
	if strategy == "" {
		strategy = types.StrategyHeuristic
	}

	start := time.Now()
	log := a.logger.With("strategy", strategy, "ticket_len", len(text))

	var (
		result *types.Result
		err    error
	)
	switch strategy {
	case types.StrategyHeuristic:
		result = heuristic.Analyze(text)
	case types.StrategyRemote:
		result, err = a.analyzeRemote(ctx, text, opts)
	default:
		return nil, fmt.Errorf("unsupported strategy %q", strategy)
	}

	if err != nil {
		log.Debug("triage failed", "duration", time.Since(start), "error", err)
		return nil, err
	}

	log.Debug("triage complete", "duration", time.Since(start), "severity", result.Severity, "panic", result.Panic)
	return result, nil
}

func (a *Analyzer) analyzeRemote(ctx context.Context, text string, opts Options) (*types.Result, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, types.ErrMissingCredential
	}

	model := opts.Model
	if model == "" {
		model = a.model
	}

	return a.remote.Analyze(ctx, text, apiKey, model)
}

// Retryable reports whether a failed Analyze call is worth repeating.
// The analyzer never retries on its own; callers use this to apply their own policy.
func Retryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if errors.Is(err, types.ErrEmptyTicket) || errors.Is(err, types.ErrMissingCredential) {
		return false
	}

	var parseErr *types.ParseError
	if errors.As(err, &parseErr) {
		return false
	}

	var transportErr *types.TransportError
	if errors.As(err, &transportErr) {
		switch code := transportErr.StatusCode; {
		case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests:
			return true
		case code >= 500:
			return true
		default:
			return false
		}
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
