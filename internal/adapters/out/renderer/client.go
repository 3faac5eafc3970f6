// Package renderer calls the document rendering service that produces personalization
// sheets, packing slips and message cards in bulk.
package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/ports"
)

// Client implements ContentGenerator. One call renders every order of one kind.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL, apiKey string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
		logger:  logger.With("component", "renderer"),
	}
}

type renderOrder struct {
	OrderID      string   `json:"order_id"`
	OrderNumber  string   `json:"order_number"`
	StoreTag     string   `json:"store_tag"`
	Location     string   `json:"location"`
	DeliveryDate string   `json:"delivery_date"`
	Batch        *int     `json:"batch,omitempty"`
	LineItems    []string `json:"line_items"`
	Folder       string   `json:"folder,omitempty"`
}

type renderRequest struct {
	Kind   string        `json:"kind"`
	Orders []renderOrder `json:"orders"`
}

type renderedArtifact struct {
	Kind        string `json:"kind"`
	OrderNumber string `json:"order_number"`
	Location    string `json:"location"`
	URL         string `json:"url"`
}

type renderResponse struct {
	Artifacts []renderedArtifact `json:"artifacts"`
}

// Generate posts the whole batch and returns the artifacts the service reports. Entries
// of an unknown kind are dropped.
func (c *Client) Generate(
	ctx context.Context,
	kind ports.ArtifactKind,
	requests []ports.ContentRequest,
) ([]ports.GeneratedArtifact, error) {
	payload := renderRequest{Kind: kind.String(), Orders: make([]renderOrder, 0, len(requests))}
	for _, r := range requests {
		payload.Orders = append(payload.Orders, renderOrder{
			OrderID:      r.OrderID,
			OrderNumber:  r.OrderNumber,
			StoreTag:     r.StoreTag,
			Location:     r.Location,
			DeliveryDate: r.DeliveryDate.String(),
			Batch:        r.Batch,
			LineItems:    r.LineItems,
			Folder:       r.Folder,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/render", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("renderer responded %s: %s", resp.Status, strings.TrimSpace(string(text)))
	}

	var decoded renderResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode renderer response: %w", err)
	}

	artifacts := make([]ports.GeneratedArtifact, 0, len(decoded.Artifacts))
	for _, a := range decoded.Artifacts {
		parsed, parseErr := ports.ParseArtifactKind(a.Kind)
		if parseErr != nil {
			c.logger.WarnContext(ctx, "Artifact of unknown kind dropped", "kind", a.Kind, "order_number", a.OrderNumber)
			continue
		}
		artifacts = append(artifacts, ports.GeneratedArtifact{
			Kind:        parsed,
			OrderNumber: a.OrderNumber,
			Location:    a.Location,
			URL:         a.URL,
		})
	}
	return artifacts, nil
}
