// Package oracle talks to the external action-proposal service (spec.md
// §4.5/§4.6): it sends the underutilized-section set and gets back a list
// of proposed SPLIT/ADD/REMOVE/MERGE actions for internal/actions to
// validate. No pack repo makes outbound HTTP calls — every pack repo is a
// server, never a client of one — so this is built directly against the
// standard library rather than grounded on an example.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Request describes one underutilized section for the oracle to judge.
type Request struct {
	SectionID  string  `json:"section_id"`
	CourseID   string  `json:"course_id"`
	Department string  `json:"department"`
	Enrollment int     `json:"enrollment"`
	Capacity   int     `json:"capacity"`
	Ratio      float64 `json:"ratio"`
}

// Proposal is one action the oracle recommends for a section, matching
// spec.md §6's oracle response shape exactly: `{section_id, action,
// merge_with?, reason}`. Any other field present in the response is
// unmarshaled and discarded.
type Proposal struct {
	SectionID string `json:"section_id"`
	Action    string `json:"action"`
	MergeWith string `json:"merge_with,omitempty"`
	Reason    string `json:"reason"`
}

// Client sends underutilization reports to an oracle endpoint over HTTP.
type Client struct {
	httpClient *http.Client
	endpoint   string
	log        zerolog.Logger
}

// NewClient builds a Client bound to endpoint with the given per-request
// timeout.
func NewClient(endpoint string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		log:        log,
	}
}

// Propose posts reqs to the oracle and returns its proposals. Per spec.md
// §4.6's fallback policy, any network, status, or decode failure is
// non-fatal: it is logged and returns (nil, err) so the driver can treat it
// as "propose nothing this iteration" rather than aborting the run.
func (c *Client) Propose(ctx context.Context, reqs []Request) ([]Proposal, error) {
	body, err := json.Marshal(reqs)
	if err != nil {
		return nil, fmt.Errorf("oracle: encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("oracle: building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Warn().Err(err).Msg("oracle: request failed, proceeding with zero proposed actions")
		return nil, fmt.Errorf("oracle: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("oracle: non-200 response, proceeding with zero proposed actions")
		return nil, fmt.Errorf("oracle: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn().Err(err).Msg("oracle: reading response failed, proceeding with zero proposed actions")
		return nil, fmt.Errorf("oracle: reading response: %w", err)
	}

	var proposals []Proposal
	if err := json.Unmarshal(raw, &proposals); err != nil {
		c.log.Warn().Err(err).Msg("oracle: malformed response, proceeding with zero proposed actions")
		return nil, fmt.Errorf("oracle: decoding response: %w", err)
	}

	return proposals, nil
}
