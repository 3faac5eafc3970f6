package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRunPipelineHandler struct{ mock.Mock }

func (m *MockRunPipelineHandler) Handle(ctx context.Context, cmd commands.RunPipelineCommand) (commands.RunReport, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.RunReport), args.Error(1)
}

type MockBatchCounterHandler struct{ mock.Mock }

func (m *MockBatchCounterHandler) Handle(
	ctx context.Context,
	query queries.GetBatchCounterQuery,
) (queries.GetBatchCounterQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetBatchCounterQueryResponse), args.Error(1)
}

type MockRunBatchesHandler struct{ mock.Mock }

func (m *MockRunBatchesHandler) Handle(
	ctx context.Context,
	query queries.GetRunBatchesQuery,
) ([]queries.GetRunBatchesQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.GetRunBatchesQueryResponse), args.Error(1)
}

type harness struct {
	runs     *MockRunPipelineHandler
	counters *MockBatchCounterHandler
	batches  *MockRunBatchesHandler
	echo     *echo.Echo
}

func newHarness(t *testing.T) harness {
	t.Helper()
	h := harness{
		runs:     &MockRunPipelineHandler{},
		counters: &MockBatchCounterHandler{},
		batches:  &MockRunBatchesHandler{},
	}
	doc, err := httpin.LoadOpenAPI()
	require.NoError(t, err)
	h.echo, err = httpin.NewEcho(httpin.NewServer(h.runs, h.counters, h.batches), doc)
	require.NoError(t, err)
	return h
}

func (h harness) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	h.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpin.Error {
	t.Helper()
	var e httpin.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

var tuesday = kernel.NewDeliveryDate(2024, time.May, 14)

func TestHealth(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestCreateRun_ManualByDefault(t *testing.T) {
	h := newHarness(t)
	h.runs.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RunPipelineCommand) bool {
		return cmd.DeliveryDate().Equal(tuesday) &&
			cmd.DeliveryType() == kernel.SameDay &&
			cmd.Mode() == commands.Manual &&
			cmd.Format() == commands.FormatCompact &&
			cmd.Stages() == commands.AllStages &&
			assert.ObjectsAreEqual([]string{"gid-1", "gid-2"}, cmd.OrderIDs())
	})).Return(commands.RunReport{RunID: "run-1", Mode: "manual"}, nil).Once()

	rec := h.do(http.MethodPost, "/api/v1/runs",
		`{"delivery_date":"2024-05-14","delivery_type":"sameday","order_ids":["gid-1","gid-2"]}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "run-1", report["run_id"])
	h.runs.AssertExpectations(t)
}

func TestCreateRun_ExplicitOptions(t *testing.T) {
	h := newHarness(t)
	want, err := commands.ParseStageFlags("1100000001")
	require.NoError(t, err)
	h.runs.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RunPipelineCommand) bool {
		return cmd.Mode() == commands.Automatic &&
			cmd.Format() == commands.FormatFull &&
			cmd.Stages() == want &&
			cmd.StoreTag() == "flowers-au" &&
			assert.ObjectsAreEqual([]string{"Perth"}, cmd.Locations())
	})).Return(commands.RunReport{RunID: "run-2"}, nil).Once()

	rec := h.do(http.MethodPost, "/api/v1/runs", `{
		"delivery_date":"2024-05-14","delivery_type":"nextday","mode":"automatic",
		"store_tag":"flowers-au","locations":["Perth"],"stages":"1100000001","format":"full"
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	h.runs.AssertExpectations(t)
}

func TestCreateRun_RejectedBySchema(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown delivery type", `{"delivery_date":"2024-05-14","delivery_type":"express"}`},
		{"missing date", `{"delivery_type":"sameday"}`},
		{"short stage vector", `{"delivery_date":"2024-05-14","delivery_type":"sameday","stages":"101"}`},
		{"unknown format", `{"delivery_date":"2024-05-14","delivery_type":"sameday","format":"csv"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			rec := h.do(http.MethodPost, "/api/v1/runs", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, http.StatusBadRequest, decodeError(t, rec).Code)
			h.runs.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestGetBatchCounter(t *testing.T) {
	h := newHarness(t)
	h.counters.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetBatchCounterQuery) bool {
		return q.Location() == "Sydney" && q.DeliveryDate().Equal(tuesday) && q.DeliveryType() == kernel.SameDay
	})).Return(queries.GetBatchCounterQueryResponse{
		Key:          "Sydney_2024-05-14_sameday",
		Location:     "Sydney",
		DeliveryDate: tuesday,
		DeliveryType: kernel.SameDay,
		Batch:        6,
		UpdatedAt:    "2024-05-13T22:00:00Z",
	}, nil).Once()

	rec := h.do(http.MethodGet, "/api/v1/batches/sydney/2024-05-14/sameday", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got httpin.BatchCounter
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 6, got.Batch)
	assert.Equal(t, "Sydney_2024-05-14_sameday", got.Key)
	assert.Equal(t, "2024-05-14", got.DeliveryDate.String())
	assert.Equal(t, "sameday", got.DeliveryType)
}

func TestGetBatchCounter_NotFound(t *testing.T) {
	h := newHarness(t)
	h.counters.On("Handle", mock.Anything, mock.Anything).
		Return(queries.GetBatchCounterQueryResponse{}, errs.NewObjectNotFoundError("batch counter", "Perth_2024-05-14_nextday")).
		Once()

	rec := h.do(http.MethodGet, "/api/v1/batches/Perth/2024-05-14/nextday", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "Perth_2024-05-14_nextday")
}

func TestGetBatchCounter_BadLane(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"unknown location", "/api/v1/batches/Atlantis/2024-05-14/sameday"},
		{"bad delivery type", "/api/v1/batches/Sydney/2024-05-14/express"},
		{"bad date", "/api/v1/batches/Sydney/14-05-2024/sameday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			rec := h.do(http.MethodGet, tt.target, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			h.counters.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestGetRunBatches(t *testing.T) {
	h := newHarness(t)
	runID := kernel.NewUUID().String()
	six := 6
	h.batches.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetRunBatchesQuery) bool {
		return q.RunID() == runID
	})).Return([]queries.GetRunBatchesQueryResponse{
		{StoreTag: "flowers-au", Location: "Sydney", DeliveryDate: tuesday, DeliveryType: kernel.SameDay, Batch: &six, Orders: 3, Booked: 2},
		{StoreTag: "flowers-au", Location: "Perth", DeliveryDate: tuesday, DeliveryType: kernel.SameDay, Orders: 1},
	}, nil).Once()

	rec := h.do(http.MethodGet, "/api/v1/runs/"+runID+"/batches", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got []httpin.RunBatch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	require.NotNil(t, got[0].Batch)
	assert.Equal(t, 6, *got[0].Batch)
	assert.Nil(t, got[1].Batch)
	assert.Equal(t, 2, got[0].Booked)
}

func TestGetRunBatches_InvalidRunID(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/api/v1/runs/not-a-uuid/batches", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	h.batches.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestRegisterSwagger(t *testing.T) {
	doc, err := httpin.LoadOpenAPI()
	require.NoError(t, err)

	require.NoError(t, httpin.RegisterSwagger(doc))
	require.NoError(t, httpin.RegisterSwagger(doc))
}
