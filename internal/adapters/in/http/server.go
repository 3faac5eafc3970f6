package http

import (
	"context"
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type (
	RunPipelineHandler interface {
		Handle(ctx context.Context, cmd commands.RunPipelineCommand) (commands.RunReport, error)
	}

	BatchCounterHandler interface {
		Handle(ctx context.Context, query queries.GetBatchCounterQuery) (queries.GetBatchCounterQueryResponse, error)
	}

	RunBatchesHandler interface {
		Handle(ctx context.Context, query queries.GetRunBatchesQuery) ([]queries.GetRunBatchesQueryResponse, error)
	}
)

// Server exposes manual runs and the read side of the pipeline over HTTP.
type Server struct {
	// Command handlers
	runPipelineHandler RunPipelineHandler

	// Query handlers
	batchCounterHandler BatchCounterHandler
	runBatchesHandler   RunBatchesHandler
}

func NewServer(
	runPipelineHandler RunPipelineHandler,
	batchCounterHandler BatchCounterHandler,
	runBatchesHandler RunBatchesHandler,
) *Server {
	return &Server{
		runPipelineHandler:  runPipelineHandler,
		batchCounterHandler: batchCounterHandler,
		runBatchesHandler:   runBatchesHandler,
	}
}

// NewEcho builds the router: health, swagger UI and the validated /api/v1 group.
func NewEcho(s *Server, doc *openapi3.T) (*echo.Echo, error) {
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", validator)
	api.POST("/runs", s.CreateRun)
	api.GET("/runs/:runId/batches", s.GetRunBatches)
	api.GET("/batches/:location/:date/:deliveryType", s.GetBatchCounter)

	return e, nil
}

// CreateRun handles POST /api/v1/runs. The run executes synchronously.
func (s *Server) CreateRun(ctx echo.Context) error {
	var body RunRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	params, err := runParams(body)
	if err != nil {
		return problem(ctx, err, "Invalid run parameters")
	}

	cmd, err := commands.NewRunPipelineCommand(params)
	if err != nil {
		return problem(ctx, err, "Invalid run parameters")
	}

	report, err := s.runPipelineHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return problem(ctx, err, "Failed to run pipeline")
	}

	return ctx.JSON(http.StatusOK, report)
}

func runParams(body RunRequest) (commands.RunParams, error) {
	deliveryType, typeErr := kernel.ParseDeliveryType(body.DeliveryType)

	mode := commands.Manual
	var modeErr error
	if body.Mode != "" {
		mode, modeErr = commands.ParseMode(body.Mode)
	}

	stages := commands.AllStages
	var stagesErr error
	if body.Stages != "" {
		stages, stagesErr = commands.ParseStageFlags(body.Stages)
	}

	format, formatErr := commands.ParseReportFormat(body.Format)

	if err := errors.Join(typeErr, modeErr, stagesErr, formatErr); err != nil {
		return commands.RunParams{}, err
	}

	return commands.RunParams{
		DeliveryDate: kernel.DeliveryDateOf(body.DeliveryDate.Time),
		DeliveryType: deliveryType,
		StoreTag:     body.StoreTag,
		Locations:    body.Locations,
		OrderIDs:     body.OrderIDs,
		Mode:         mode,
		Stages:       stages,
		Format:       format,
	}, nil
}

// GetBatchCounter handles GET /api/v1/batches/{location}/{date}/{deliveryType}.
func (s *Server) GetBatchCounter(ctx echo.Context) error {
	var date openapi_types.Date
	if err := runtime.BindStyledParameterWithLocation(
		"simple", false, "date", runtime.ParamLocationPath, ctx.Param("date"), &date,
	); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid format for parameter date: " + err.Error(),
		})
	}

	deliveryType, err := kernel.ParseDeliveryType(ctx.Param("deliveryType"))
	if err != nil {
		return problem(ctx, err, "Invalid delivery type")
	}

	query, err := queries.NewGetBatchCounterQuery(ctx.Param("location"), kernel.DeliveryDateOf(date.Time), deliveryType)
	if err != nil {
		return problem(ctx, err, "Invalid lane")
	}

	counter, err := s.batchCounterHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err, "Failed to retrieve batch counter")
	}

	return ctx.JSON(http.StatusOK, BatchCounter{
		Key:          counter.Key,
		Location:     counter.Location,
		DeliveryDate: openapi_types.Date{Time: counter.DeliveryDate.Time()},
		DeliveryType: counter.DeliveryType.String(),
		Batch:        counter.Batch,
		UpdatedAt:    counter.UpdatedAt,
	})
}

// GetRunBatches handles GET /api/v1/runs/{runId}/batches.
func (s *Server) GetRunBatches(ctx echo.Context) error {
	query, err := queries.NewGetRunBatchesQuery(ctx.Param("runId"))
	if err != nil {
		return problem(ctx, err, "Invalid run id")
	}

	batches, err := s.runBatchesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err, "Failed to retrieve run batches")
	}

	response := make([]RunBatch, len(batches))
	for i, b := range batches {
		response[i] = RunBatch{
			StoreTag:     b.StoreTag,
			Location:     b.Location,
			DeliveryDate: openapi_types.Date{Time: b.DeliveryDate.Time()},
			DeliveryType: b.DeliveryType.String(),
			Batch:        b.Batch,
			Orders:       b.Orders,
			Booked:       b.Booked,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func problem(ctx echo.Context, err error, message string) error {
	code := statusOf(err)
	return ctx.JSON(code, Error{Code: code, Message: message + ": " + err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrRunPipelineCommandIsNotConstructed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
