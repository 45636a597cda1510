package qa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrNotConfigured = errors.New("qa remote not configured")
	ErrEmptyAnswer   = errors.New("qa remote returned empty answer")
)

// Client talks to the remote question-answering service. The endpoint and
// credential are injected; nothing is read from ambient state at call time.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(token),
		http:    &http.Client{Timeout: timeout},
	}
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	if c == nil || c.baseURL == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(askRequest{Question: question})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, res.Body)
		_ = res.Body.Close()
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("qa remote status %d", res.StatusCode)
	}

	var out askResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}

	answer := strings.TrimSpace(out.Answer)
	if answer == "" {
		return "", ErrEmptyAnswer
	}
	return answer, nil
}
