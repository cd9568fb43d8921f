// Package signaling exchanges WebRTC session descriptions with a relay.
//
// The exchange is a single POST of the raw offer SDP with content type
// application/sdp; the relay answers with the raw answer SDP. There is no
// JSON envelope and no retry.
package signaling

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pion/webrtc/v3"

	"github.com/teslashibe/go-handcar/internal/httpc"
)

// ContentTypeSDP is the media type of offers and answers on the wire.
const ContentTypeSDP = "application/sdp"

// maxAnswerSize bounds the answer body read from the relay.
const maxAnswerSize = 1 << 20

// ErrEmptyOffer is returned when asked to negotiate an empty offer.
var ErrEmptyOffer = errors.New("empty SDP offer")

// Negotiator turns a local offer into a remote answer.
type Negotiator interface {
	Negotiate(ctx context.Context, offer string) (string, error)
}

// NegotiatorFunc adapts a function to Negotiator.
type NegotiatorFunc func(ctx context.Context, offer string) (string, error)

// Negotiate calls f.
func (f NegotiatorFunc) Negotiate(ctx context.Context, offer string) (string, error) {
	return f(ctx, offer)
}

// TransportError reports a relay that was unreachable or answered badly.
type TransportError struct {
	Op     string // "post", "status", "read" or "parse"
	URL    string
	Status int // HTTP status, when one was received
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("signaling %s %s: status %d: %v", e.Op, e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("signaling %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPNegotiator posts offers to a relay URL.
type HTTPNegotiator struct {
	// URL of the relay endpoint.
	URL string

	// Token is sent as a bearer token when non-empty.
	Token string

	// Client defaults to httpc.Client.
	Client *http.Client
}

// NewHTTPNegotiator creates a negotiator for url without authentication.
func NewHTTPNegotiator(url string) *HTTPNegotiator {
	return &HTTPNegotiator{URL: url}
}

// Negotiate posts offer and returns the answer SDP.
func (n *HTTPNegotiator) Negotiate(ctx context.Context, offer string) (string, error) {
	if strings.TrimSpace(offer) == "" {
		return "", ErrEmptyOffer
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewBufferString(offer))
	if err != nil {
		return "", &TransportError{Op: "post", URL: n.URL, Err: err}
	}
	req.Header.Set("Content-Type", ContentTypeSDP)
	if n.Token != "" {
		req.Header.Set("Authorization", "Bearer "+n.Token)
	}

	client := n.Client
	if client == nil {
		client = httpc.Client
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", &TransportError{Op: "post", URL: n.URL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAnswerSize))
	if err != nil {
		return "", &TransportError{Op: "read", URL: n.URL, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{
			Op:     "status",
			URL:    n.URL,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected response: %s", truncate(string(body), 200)),
		}
	}

	answer := string(body)
	if err := ValidateAnswer(answer); err != nil {
		return "", &TransportError{Op: "parse", URL: n.URL, Status: resp.StatusCode, Err: err}
	}
	return answer, nil
}

// ValidateAnswer checks that sdp parses as a session description.
func ValidateAnswer(sdp string) error {
	if strings.TrimSpace(sdp) == "" {
		return errors.New("empty SDP answer")
	}
	desc := webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: sdp}
	if _, err := desc.Unmarshal(); err != nil {
		return fmt.Errorf("malformed SDP answer: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
