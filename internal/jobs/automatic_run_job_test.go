package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRunPipelineHandler struct{ mock.Mock }

func (m *MockRunPipelineHandler) Handle(ctx context.Context, cmd commands.RunPipelineCommand) (commands.RunReport, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.RunReport), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sydney(t *testing.T) kernel.Location {
	t.Helper()
	loc, err := kernel.LocationByName("Sydney")
	require.NoError(t, err)
	return loc
}

// 2024-05-13T22:00Z is 08:00 on Tuesday 14 May in Sydney.
func fixedClock() time.Time {
	return time.Date(2024, time.May, 13, 22, 0, 0, 0, time.UTC)
}

func TestAutomaticRunJob_RunOnce(t *testing.T) {
	tests := []struct {
		name         string
		deliveryType kernel.DeliveryType
		wantDate     kernel.DeliveryDate
	}{
		{"same day runs for today at home", kernel.SameDay, kernel.NewDeliveryDate(2024, time.May, 14)},
		{"next day runs for tomorrow at home", kernel.NextDay, kernel.NewDeliveryDate(2024, time.May, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &MockRunPipelineHandler{}
			handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RunPipelineCommand) bool {
				return cmd.DeliveryDate().Equal(tt.wantDate) &&
					cmd.DeliveryType() == tt.deliveryType &&
					cmd.Mode() == commands.Automatic &&
					cmd.Format() == commands.FormatFull &&
					cmd.Stages() == commands.AllStages &&
					cmd.StoreTag() == "flowers-au"
			})).Return(commands.RunReport{RunID: "run-1"}, nil).Once()

			job := jobs.NewAutomaticRunJob(handler,
				jobs.Lane{DeliveryType: tt.deliveryType, Spec: "0 * * * *", StoreTag: "flowers-au"},
				sydney(t), fixedClock, discardLogger())

			require.NoError(t, job.RunOnce(t.Context()))
			handler.AssertExpectations(t)
		})
	}
}

func TestAutomaticRunJob_RunOnce_HandlerError(t *testing.T) {
	handler := &MockRunPipelineHandler{}
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(commands.RunReport{}, commands.ErrRunPipelineCommandIsNotConstructed).Once()
	job := jobs.NewAutomaticRunJob(handler, jobs.Lane{DeliveryType: kernel.SameDay, Spec: "0 * * * *"},
		sydney(t), fixedClock, discardLogger())

	err := job.RunOnce(t.Context())

	require.ErrorIs(t, err, commands.ErrRunPipelineCommandIsNotConstructed)
}

func TestAutomaticRunJob_RunOnce_InvalidLane(t *testing.T) {
	handler := &MockRunPipelineHandler{}
	job := jobs.NewAutomaticRunJob(handler, jobs.Lane{Spec: "0 * * * *"}, sydney(t), fixedClock, discardLogger())

	require.Error(t, job.RunOnce(t.Context()))
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestAutomaticRunJob_StartStop(t *testing.T) {
	handler := &MockRunPipelineHandler{}
	job := jobs.NewAutomaticRunJob(handler, jobs.Lane{DeliveryType: kernel.SameDay, Spec: "*/20 6-14 * * *"},
		sydney(t), fixedClock, discardLogger())

	require.NoError(t, job.Start())
	job.Stop()
}

func TestAutomaticRunJob_Start_InvalidSpec(t *testing.T) {
	job := jobs.NewAutomaticRunJob(&MockRunPipelineHandler{},
		jobs.Lane{DeliveryType: kernel.SameDay, Spec: "every minute"}, sydney(t), fixedClock, discardLogger())

	require.Error(t, job.Start())
}

func TestJobManager(t *testing.T) {
	t.Run("empty specs are skipped", func(t *testing.T) {
		jm := jobs.NewJobManager(&MockRunPipelineHandler{}, []jobs.Lane{
			{DeliveryType: kernel.SameDay, Spec: "*/20 6-14 * * *"},
			{DeliveryType: kernel.NextDay},
		}, sydney(t), discardLogger())

		assert.Len(t, jm.Jobs(), 1)
		require.NoError(t, jm.StartAll())
		jm.StopAll()
	})

	t.Run("a bad spec fails StartAll", func(t *testing.T) {
		jm := jobs.NewJobManager(&MockRunPipelineHandler{}, []jobs.Lane{
			{DeliveryType: kernel.SameDay, Spec: "*/20 6-14 * * *"},
			{DeliveryType: kernel.NextDay, Spec: "61 * * * *"},
		}, sydney(t), discardLogger())

		err := jm.StartAll()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "nextday")
		assert.False(t, errors.Is(err, context.Canceled))
	})
}
