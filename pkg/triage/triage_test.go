package triage

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrenchMajesty/ticket-triage/pkg/adapters"
	"github.com/FrenchMajesty/ticket-triage/pkg/heuristic"
	"github.com/FrenchMajesty/ticket-triage/pkg/testutil"
	"github.com/FrenchMajesty/ticket-triage/pkg/types"
)

func TestAnalyze_RejectsEmptyTicket(t *testing.T) {
	remote := &testutil.MockRemoteAnalyzer{}
	a := NewAnalyzer(Config{Remote: remote})

	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"whitespace only - spaces", "   "},
		{"whitespace only - tabs", "\t\t"},
		{"whitespace only - newlines", "\n\n"},
		{"whitespace only - mixed", " \t\n \r\n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, strategy := range []types.Strategy{types.StrategyHeuristic, types.StrategyRemote} {
				_, err := a.Analyze(context.Background(), tt.text, Options{Strategy: strategy, APIKey: "sk"})
				assert.ErrorIs(t, err, types.ErrEmptyTicket)
			}
		})
	}
	assert.Equal(t, 0, remote.Calls())
}

func TestAnalyze_HeuristicByDefault(t *testing.T) {
	remote := &testutil.MockRemoteAnalyzer{}
	a := NewAnalyzer(Config{Remote: remote})

	got, err := a.Analyze(context.Background(), "  the export button is broken  ", Options{})
	require.NoError(t, err)

	if diff := cmp.Diff(heuristic.Analyze("the export button is broken"), got); diff != "" {
		t.Errorf("Analyze() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, remote.Calls())
}

func TestAnalyze_RemoteMissingCredential(t *testing.T) {
	remote := &testutil.MockRemoteAnalyzer{}
	a := NewAnalyzer(Config{Remote: remote})

	_, err := a.Analyze(context.Background(), "site down", Options{Strategy: types.StrategyRemote, APIKey: "  "})

	assert.ErrorIs(t, err, types.ErrMissingCredential)
	assert.Equal(t, 0, remote.Calls())
}

func TestAnalyze_RemotePassesInputs(t *testing.T) {
	remote := &testutil.MockRemoteAnalyzer{}
	a := NewAnalyzer(Config{Remote: remote, Model: "gpt-config"})

	got, err := a.Analyze(context.Background(), " site down ", Options{Strategy: types.StrategyRemote, APIKey: " sk-1 "})
	require.NoError(t, err)

	assert.Equal(t, types.StrategyRemote, got.Source)
	assert.Equal(t, "site down", remote.LastText)
	assert.Equal(t, "sk-1", remote.LastAPIKey)
	assert.Equal(t, "gpt-config", remote.LastModel)

	_, err = a.Analyze(context.Background(), "site down", Options{Strategy: types.StrategyRemote, APIKey: "sk-1", Model: "gpt-call"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-call", remote.LastModel)
}

func TestAnalyze_DefaultModel(t *testing.T) {
	remote := &testutil.MockRemoteAnalyzer{}
	a := NewAnalyzer(Config{Remote: remote})

	_, err := a.Analyze(context.Background(), "hi", Options{Strategy: types.StrategyRemote, APIKey: "sk"})
	require.NoError(t, err)
	assert.Equal(t, adapters.DefaultModel, remote.LastModel)
}

func TestAnalyze_RemoteErrorsSurface(t *testing.T) {
	parseErr := &types.ParseError{Output: "nope", Err: errors.New("bad")}
	remote := &testutil.MockRemoteAnalyzer{
		AnalyzeFunc: func(ctx context.Context, text, apiKey, model string) (*types.Result, error) {
			return nil, parseErr
		},
	}
	a := NewAnalyzer(Config{Remote: remote})

	got, err := a.Analyze(context.Background(), "hi", Options{Strategy: types.StrategyRemote, APIKey: "sk"})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, parseErr)
	assert.Equal(t, 1, remote.Calls())
}

func TestAnalyze_UnknownStrategy(t *testing.T) {
	a := NewAnalyzer(Config{Remote: &testutil.MockRemoteAnalyzer{}})

	_, err := a.Analyze(context.Background(), "hi", Options{Strategy: "crystal-ball"})
	assert.Error(t, err)
}

func TestAnalyze_ConcurrentCallsIndependent(t *testing.T) {
	remote := &testutil.MockRemoteAnalyzer{
		AnalyzeFunc: func(ctx context.Context, text, apiKey, model string) (*types.Result, error) {
			return &types.Result{Severity: types.SeverityLow, Notes: text + "|" + apiKey, Source: types.StrategyRemote}, nil
		},
	}
	a := NewAnalyzer(Config{Remote: remote})

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := fmt.Sprintf("ticket-%d", i)
			key := fmt.Sprintf("key-%d", i)
			got, err := a.Analyze(context.Background(), text, Options{Strategy: types.StrategyRemote, APIKey: key})
			if err != nil {
				errs <- err
				return
			}
			if got.Notes != text+"|"+key {
				errs <- fmt.Errorf("call %d got notes %q", i, got.Notes)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	assert.Equal(t, 20, remote.Calls())
}

func TestRetryable(t *testing.T) {
	netErr := fmt.Errorf("failed to get LLM response: %w", &url.Error{Op: "Post", URL: "x", Err: &net.OpError{Op: "dial", Err: errors.New("refused")}})

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"empty ticket", types.ErrEmptyTicket, false},
		{"missing key", types.ErrMissingCredential, false},
		{"parse", &types.ParseError{}, false},
		{"cancelled", fmt.Errorf("wrapped: %w", context.Canceled), false},
		{"deadline", context.DeadlineExceeded, false},
		{"401", &types.TransportError{StatusCode: 401}, false},
		{"400", &types.TransportError{StatusCode: 400}, false},
		{"408", &types.TransportError{StatusCode: 408}, true},
		{"429", &types.TransportError{StatusCode: 429}, true},
		{"503", &types.TransportError{StatusCode: 503}, true},
		{"network", netErr, true},
		{"other", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Retryable(tt.err))
		})
	}
}
