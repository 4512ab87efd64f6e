// Package http exposes a terminal over HTTP so thin clients and physical
// buttons can drive it. Routes live under /api/v1; /health is at the root.
package http

import (
	"errors"
	"net/http"
	"time"

	"kitchen/internal/core/application/kitchen"
	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/optimistic"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Terminal is the read side of the coordinator the server needs beyond the
// use case handlers.
type Terminal interface {
	Preferences() kitchen.Preferences
	LastSync() kitchen.SyncStatus
	DismissNotice()
}

// Handlers groups the use case handlers served over HTTP.
type Handlers struct {
	CreateOrder      commands.CreateOrderCommandHandler
	TransitionOrder  commands.TransitionOrderCommandHandler
	TransitionItem   commands.TransitionItemCommandHandler
	PressKey         commands.PressKeyCommandHandler
	TogglePreference commands.TogglePreferenceCommandHandler
	GetBoard         queries.GetBoardQueryHandler
	GetPrepTimeStats queries.GetPrepTimeStatsQueryHandler
}

// Server maps HTTP requests onto kitchen use cases.
type Server struct {
	handlers Handlers
	terminal Terminal
}

func NewServer(handlers Handlers, terminal Terminal) *Server {
	return &Server{handlers: handlers, terminal: terminal}
}

// Register mounts every route on e behind request validation against the
// embedded OpenAPI document, which is also served at /openapi.yaml and
// browsable under /swagger/.
func (s *Server) Register(e *echo.Echo) error {
	doc, err := OpenAPI()
	if err != nil {
		return err
	}
	validate, err := RequestValidator(doc)
	if err != nil {
		return err
	}
	if err = registerSwaggerDoc(doc); err != nil {
		return err
	}

	e.GET("/openapi.yaml", serveOpenAPI)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Use(validate)
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.GET("/board", s.GetBoard)
	v1.POST("/orders", s.CreateOrder)
	v1.POST("/orders/:orderId/transitions", s.TransitionOrder)
	v1.POST("/orders/:orderId/items/:itemId/transitions", s.TransitionItem)
	v1.POST("/keys/:symbol", s.PressKey)
	v1.GET("/preferences", s.GetPreferences)
	v1.POST("/preferences/:toggle", s.TogglePreference)
	v1.DELETE("/notice", s.DismissNotice)
	v1.GET("/stats/prep-time", s.GetPrepTimeStats)

	return nil
}

// Health handles GET /health. The terminal stays up while the store is
// unreachable, so a failed sync degrades instead of failing.
func (s *Server) Health(ctx echo.Context) error {
	sync := s.terminal.LastSync()
	h := Health{Status: "ok"}
	if !sync.At.IsZero() {
		at := sync.At
		h.LastSync = &at
	}
	if sync.Error != "" {
		h.Status = "degraded"
		h.Error = sync.Error
	}
	return ctx.JSON(http.StatusOK, h)
}

// GetBoard handles GET /api/v1/board?status=.
func (s *Server) GetBoard(ctx echo.Context) error {
	query, err := queries.NewGetBoardQuery(ctx.QueryParam("status"))
	if err != nil {
		return fail(ctx, err, "Invalid status filter")
	}

	board, err := s.handlers.GetBoard.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err, "Failed to render board")
	}
	return ctx.JSON(http.StatusOK, board)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	mode, err := order.ParseConsumptionMode(body.Mode)
	if err != nil {
		return fail(ctx, err, "Invalid consumption mode")
	}

	lines := make([]commands.OrderLine, 0, len(body.Items))
	for _, it := range body.Items {
		lines = append(lines, commands.OrderLine{
			Name:         it.Name,
			Quantity:     it.Quantity,
			Extras:       it.Extras,
			Instructions: it.Instructions,
		})
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, body.Code, mode, lines, commands.OrderDetails{
		CustomerName: body.CustomerName,
		Table:        body.Table,
		SessionID:    body.SessionID,
		Notes:        body.Notes,
	})
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err, "Failed to create order")
	}
	return ctx.JSON(http.StatusCreated, Created{ID: id.String()})
}

// TransitionOrder handles POST /api/v1/orders/:orderId/transitions. The
// change is applied locally and acknowledged before it is durable.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	id, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	var body Transition
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	target, err := order.ParseStatus(body.Target)
	if err != nil {
		return fail(ctx, err, "Invalid target status")
	}

	cmd, err := commands.NewTransitionOrderCommand(id, target)
	if err != nil {
		return fail(ctx, err, "Invalid transition")
	}
	if err = s.handlers.TransitionOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err, "Transition rejected")
	}
	return ctx.NoContent(http.StatusAccepted)
}

// TransitionItem handles POST /api/v1/orders/:orderId/items/:itemId/transitions.
func (s *Server) TransitionItem(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	itemID, err := pathUUID(ctx, "itemId")
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}
	var body Transition
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	target, err := order.ParseItemStatus(body.Target)
	if err != nil {
		return fail(ctx, err, "Invalid target status")
	}

	cmd, err := commands.NewTransitionItemCommand(orderID, itemID, target, body.Station)
	if err != nil {
		return fail(ctx, err, "Invalid transition")
	}
	if err = s.handlers.TransitionItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err, "Transition rejected")
	}
	return ctx.NoContent(http.StatusAccepted)
}

// PressKey handles POST /api/v1/keys/:symbol.
func (s *Server) PressKey(ctx echo.Context) error {
	cmd, err := commands.NewPressKeyCommand(ctx.Param("symbol"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	action, err := s.handlers.PressKey.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err, "Key press rejected")
	}
	return ctx.JSON(http.StatusAccepted, action)
}

// GetPreferences handles GET /api/v1/preferences.
func (s *Server) GetPreferences(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.terminal.Preferences())
}

// TogglePreference handles POST /api/v1/preferences/:toggle.
func (s *Server) TogglePreference(ctx echo.Context) error {
	cmd, err := commands.NewTogglePreferenceCommand(ctx.Param("toggle"))
	if err != nil {
		return fail(ctx, err, "Unknown toggle")
	}

	prefs, err := s.handlers.TogglePreference.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err, "Toggle failed")
	}
	return ctx.JSON(http.StatusOK, prefs)
}

// DismissNotice handles DELETE /api/v1/notice.
func (s *Server) DismissNotice(ctx echo.Context) error {
	s.terminal.DismissNotice()
	return ctx.NoContent(http.StatusNoContent)
}

// GetPrepTimeStats handles GET /api/v1/stats/prep-time?since=&station=.
// since is RFC 3339 and defaults to 24 hours ago.
func (s *Server) GetPrepTimeStats(ctx echo.Context) error {
	since := time.Now().Add(-24 * time.Hour)
	if raw := ctx.QueryParam("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(ctx, "since must be an RFC 3339 timestamp")
		}
		since = parsed
	}

	query, err := queries.NewGetPrepTimeStatsQuery(since, ctx.QueryParam("station"))
	if err != nil {
		return fail(ctx, err, "Invalid statistics query")
	}

	stats, err := s.handlers.GetPrepTimeStats.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err, "Failed to compute statistics")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// fail maps err onto a status code. Validation problems carry their own
// message; everything else gets message only.
func fail(ctx echo.Context, err error, message string) error {
	code := statusOf(err)
	if code < http.StatusInternalServerError {
		message += ": " + err.Error()
	}
	return ctx.JSON(code, Error{Code: code, Message: message})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrIllegalTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, optimistic.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
