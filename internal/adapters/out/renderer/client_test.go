package renderer_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/renderer"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func requests() []ports.ContentRequest {
	date := kernel.NewDeliveryDate(2024, time.May, 14)
	six := 6
	return []ports.ContentRequest{
		{OrderID: "gid-1", OrderNumber: "#1", StoreTag: "flowers-au", Location: "Sydney", DeliveryDate: date, Batch: &six},
		{OrderID: "gid-2", OrderNumber: "#2", StoreTag: "flowers-au", Location: "Perth", DeliveryDate: date},
	}
}

func TestClient_Generate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/render", r.URL.Path)
		assert.Equal(t, "Bearer render-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"artifacts":[
			{"kind":"packing-slip","order_number":"#1","location":"Sydney","url":"https://cdn/1.pdf"},
			{"kind":"gift-wrap","order_number":"#2","location":"Sydney","url":"https://cdn/2.pdf"}
		]}`)
	}))
	defer srv.Close()

	client := renderer.NewClient(srv.URL+"/", "render-key", srv.Client(), discardLogger())
	artifacts, err := client.Generate(t.Context(), ports.PackingSlip, requests())

	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, ports.PackingSlip, artifacts[0].Kind)
	assert.Equal(t, "#1", artifacts[0].OrderNumber)
	assert.Equal(t, "https://cdn/1.pdf", artifacts[0].URL)
	assert.Equal(t, "packing-slip", got["kind"])
	orders, ok := got["orders"].([]any)
	require.True(t, ok)
	require.Len(t, orders, 2)
	assert.InDelta(t, 6, orders[0].(map[string]any)["batch"], 0)
	assert.NotContains(t, orders[1].(map[string]any), "batch")
}

func TestClient_Generate_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "template missing\n")
	}))
	defer srv.Close()

	client := renderer.NewClient(srv.URL, "", srv.Client(), discardLogger())
	_, err := client.Generate(t.Context(), ports.MessageCard, requests())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "template missing")
}

func TestClient_Generate_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<html>")
	}))
	defer srv.Close()

	client := renderer.NewClient(srv.URL, "", srv.Client(), discardLogger())
	_, err := client.Generate(t.Context(), ports.Personalization, requests())

	require.ErrorContains(t, err, "decode renderer response")
}
