// Package remote fetches the one-time task seed list from the network.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Fetch error categories. Callers log these and move on; a failed fetch
// never surfaces to the user.
var (
	// ErrUnavailable means no network path to the remote was available.
	ErrUnavailable = errors.New("remote unavailable")
	// ErrBadStatus means the remote answered with a non-2xx status.
	ErrBadStatus = errors.New("unexpected status")
)

// Record is a single task as the remote serializes it. There is no
// title field on the wire; titles are generated at import time.
type Record struct {
	ID          int    `json:"id"`
	Description string `json:"todo"`
	Completed   bool   `json:"completed"`
}

// payload is the response envelope.
type payload struct {
	Todos []Record `json:"todos"`
}

// payloadSchema validates the response shape before any record is adopted.
const payloadSchema = `{
	"type": "object",
	"required": ["todos"],
	"properties": {
		"todos": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "todo", "completed"],
				"properties": {
					"id": {"type": "integer"},
					"todo": {"type": "string"},
					"completed": {"type": "boolean"}
				}
			}
		}
	}
}`

// Client fetches task records from a dummyjson-style endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	schema  *jsonschema.Schema
}

// New creates a client for the given base URL, e.g. "https://dummyjson.com".
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("todos.schema.json", strings.NewReader(payloadSchema)); err != nil {
		return nil, fmt.Errorf("add payload schema: %w", err)
	}
	schema, err := compiler.Compile("todos.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile payload schema: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		schema:  schema,
	}, nil
}

// Fetch performs the single GET /todos request.
// A 204 or empty body returns (nil, nil): nothing to import, not an error.
func (c *Client) Fetch(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/todos", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, fmt.Errorf("fetch todos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(body) == 0 {
		return nil, nil
	}

	if err := c.validate(body); err != nil {
		return nil, err
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}

	if p.Todos == nil {
		p.Todos = []Record{}
	}
	return p.Todos, nil
}

// validate checks the raw body against the payload schema.
func (c *Client) validate(body []byte) error {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("decode todos: %w", err)
	}
	if err := c.schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid todos payload: %w", err)
	}
	return nil
}
