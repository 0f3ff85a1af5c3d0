// Package llm implements repair.Adapter by sending the AIR source and its
// error diagnostics to an external language model and gating the response
// by re-parsing it. Transport-layer retries (429/5xx/timeout) are owned
// entirely by this adapter via internal/retrypolicy; it never retries on
// semantic failure, since that loop belongs to internal/agent.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/airengine/airengine/internal/diagnostics"
	"github.com/airengine/airengine/internal/parser"
	"github.com/airengine/airengine/internal/repair"
	"github.com/airengine/airengine/internal/retrypolicy"
)

// Client abstracts the HTTP round-trip so tests can substitute a fake
// transport without a real network call.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// Adapter is the LLM-backed repair.Adapter.
type Adapter struct {
	Endpoint string
	APIKey   string
	Client   Client
	Policy   retrypolicy.Policy
}

// New constructs an Adapter with the default retry policy and http.Client.
func New(endpoint, apiKey string) *Adapter {
	return &Adapter{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: 30 * time.Second},
		Policy:   retrypolicy.Default(),
	}
}

func (a *Adapter) Name() string { return "llm" }

type requestBody struct {
	Source      string                    `json:"source"`
	Diagnostics []diagnostics.Diagnostic `json:"diagnostics"`
}

type responseBody struct {
	Source string `json:"source"`
}

// Repair sends source+diags to the configured endpoint, retrying transport
// failures per a.Policy, then gates the returned source by re-parsing it:
//
//	parse-valid        -> repaired
//	changed, not valid  -> partial
//	unchanged            -> noop
//	transport failure    -> failed
func (a *Adapter) Repair(source string, diags []diagnostics.Diagnostic, rctx repair.Context) (repair.Result, error) {
	body, err := json.Marshal(requestBody{Source: source, Diagnostics: diags})
	if err != nil {
		return repair.Result{}, fmt.Errorf("llm adapter: encode request: %w", err)
	}

	var respBody responseBody
	var lastErr error
	attempts := a.Policy.MaxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		respBody, lastErr = a.doOnce(body)
		if lastErr == nil {
			break
		}
		if attempt >= attempts || errors.Is(lastErr, errNonRetryable) {
			break
		}
		time.Sleep(a.Policy.Delay(attempt))
	}
	if lastErr != nil {
		return repair.Result{
			Status:         repair.StatusFailed,
			OriginalSource: source,
			RepairedSource: source,
		}, fmt.Errorf("llm adapter: %w", lastErr)
	}

	candidate := respBody.Source
	if candidate == source {
		return repair.Result{Status: repair.StatusNoop, OriginalSource: source, RepairedSource: source}, nil
	}

	status := repair.StatusRepaired
	if _, err := parser.Parse(candidate); err != nil {
		status = repair.StatusPartial
	}

	return repair.Result{
		Status:         status,
		OriginalSource: source,
		RepairedSource: candidate,
		SourceChanged:  true,
		AppliedCount:   1,
	}, nil
}

// errNonRetryable marks a non-OK, non-transient status that Repair does not retry.
var errNonRetryable = errors.New("non-OK status")

func (a *Adapter) doOnce(body []byte) (responseBody, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, a.Endpoint, bytes.NewReader(body))
	if err != nil {
		return responseBody{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.APIKey)
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return responseBody{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return responseBody{}, errors.New("transient status " + resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return responseBody{}, fmt.Errorf("%w %s", errNonRetryable, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return responseBody{}, err
	}
	var out responseBody
	if err := json.Unmarshal(raw, &out); err != nil {
		return responseBody{}, err
	}
	return out, nil
}
