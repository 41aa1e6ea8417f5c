package common

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// HTTPResult carries the status code alongside the decoded body so callers
// can distinguish a provider 404 from a 5xx. Body is nil when the response
// was empty or not valid JSON; Raw always holds the bytes as received.
type HTTPResult struct {
	StatusCode int
	Body       map[string]interface{}
	Raw        []byte
}

func (r *HTTPResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

var defaultClient = &http.Client{Timeout: 30 * time.Second}

func do(req *http.Request, headers map[string]string) (*HTTPResult, error) {
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := defaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	result := &HTTPResult{StatusCode: resp.StatusCode, Raw: raw}
	if len(raw) > 0 {
		var body map[string]interface{}
		if err := json.Unmarshal(raw, &body); err == nil {
			result.Body = body
		}
	}
	return result, nil
}

// GetJSON sends a GET request and decodes the JSON response.
func GetJSON(url string, headers map[string]string) (*HTTPResult, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return do(req, headers)
}

// PostJSON sends a POST request with a JSON payload and decodes the response.
func PostJSON(url string, payload interface{}, headers map[string]string) (*HTTPResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return do(req, headers)
}
