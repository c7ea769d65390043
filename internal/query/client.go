package query

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client define la interfaz hacia el servicio remoto de respuestas.
type Client interface {
	Ask(ctx context.Context, query string) (string, error)
}

// HTTPClient implementa Client contra el endpoint POST /query del backend.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient construye un cliente apuntando al servicio de respuestas.
// El timeout vive aca: el controlador de sesion trata cualquier rechazo igual.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Answer *string `json:"answer"`
}

func (c *HTTPClient) Ask(ctx context.Context, query string) (string, error) {
	bodyBytes, err := json.Marshal(queryRequest{Query: query})
	if err != nil {
		return "", &Error{Kind: KindMalformed, Message: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &Error{Kind: KindNetwork, Message: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		kind := KindNetwork
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			kind = KindTimeout
		} else if errors.Is(err, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		return "", &Error{Kind: kind, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: KindNetwork, Message: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("query service error status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return "", &Error{Kind: KindStatus, Message: "status " + resp.Status}
	}

	var qr queryResponse
	if err := json.Unmarshal(respBody, &qr); err != nil {
		return "", &Error{Kind: KindMalformed, Message: "decode response", Err: err}
	}

	if qr.Answer == nil || strings.TrimSpace(*qr.Answer) == "" {
		return "", &Error{Kind: KindMalformed, Message: "response without answer"}
	}

	return *qr.Answer, nil
}
