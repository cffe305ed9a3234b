package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxResponseBytes caps how much of an upstream body is read.
const maxResponseBytes = 1 << 20

// HttpPostJsonWithContext 发送 POST JSON 请求. Any HTTP status is returned to the
// caller; only transport failures produce an error.
func HttpPostJsonWithContext(ctx context.Context, client *http.Client, url string, headers map[string]string, data interface{}) (int, []byte, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal json error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return 0, nil, fmt.Errorf("new request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("http request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response error: %w", err)
	}
	return resp.StatusCode, body, nil
}

// IsSuccessStatus reports a 2xx status.
func IsSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}
