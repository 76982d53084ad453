// internal/embedding/client.go
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	commonhttp "speech-scorer/internal/common/http"
	"speech-scorer/internal/common/logger"
	"speech-scorer/internal/common/metrics"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Config holds settings for the OpenAI-compatible embeddings endpoint.
type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	CacheSize  int
	Dimensions int
}

func (c *Config) applyDefaults() {
	if c.Model == "" {
		c.Model = "all-minilm"
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	if c.CacheSize == 0 {
		c.CacheSize = 10000
	}
	if c.Dimensions == 0 {
		c.Dimensions = 384
	}
}

// Client calls an OpenAI-compatible /embeddings endpoint with an in-process
// LRU cache in front of it.
type Client struct {
	config *Config
	client *commonhttp.Client
	cache  *lru.Cache[string, []float32]
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) (*Client, error) {
	config.applyDefaults()
	if config.BaseURL == "" {
		return nil, fmt.Errorf("embedding base URL is required")
	}

	cache, err := lru.New[string, []float32](config.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create embedding cache: %w", err)
	}

	return &Client{
		config: config,
		client: commonhttp.NewClient(0), // rely on per-call context deadlines
		cache:  cache,
		logger: log.WithFields(map[string]interface{}{"component": "embedding"}),
	}, nil
}

func (c *Client) Dimensions() int {
	return c.config.Dimensions
}

// Embed generates the embedding for a single text, serving repeats from cache.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if cached, ok := c.cache.Get(text); ok {
		metrics.EmbeddingRequestsTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.EmbeddingRequestsTotal.WithLabelValues("miss").Inc()

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	vector, err := c.callAPI(ctx, text)
	if err != nil {
		metrics.EmbeddingFailuresTotal.Inc()
		return nil, err
	}

	c.cache.Add(text, vector)
	return vector, nil
}

func (c *Client) callAPI(ctx context.Context, text string) ([]float32, error) {
	requestBody := map[string]interface{}{
		"model": c.config.Model,
		"input": []string{text},
	}
	body, _ := json.Marshal(requestBody)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ErrEmbeddingTimeout
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", c.config.BaseURL+"/embeddings", bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.config.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
		}

		resp, lastErr = c.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			respBody, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
			resp = nil
		}

		if ctx.Err() != nil {
			return nil, ErrEmbeddingTimeout
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrEmbeddingTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, lastErr)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: no successful response after retries", ErrEmbeddingFailed)
	}
	defer resp.Body.Close()

	var apiResponse struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrEmbeddingFailed, err)
	}
	if len(apiResponse.Data) == 0 || len(apiResponse.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding in response", ErrEmbeddingFailed)
	}

	return apiResponse.Data[0].Embedding, nil
}
