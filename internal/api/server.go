package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/samcharles93/contfrac/internal/logger"
	"github.com/samcharles93/contfrac/internal/series"
)

type Server struct {
	store *EvaluationStore
	log   logger.Logger
	clock func() time.Time
}

func NewServer(store *EvaluationStore, log logger.Logger) *Server {
	if store == nil {
		store = NewEvaluationStore()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		store: store,
		log:   log,
		clock: time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/evaluations", s.handleCreateEvaluation)
	e.GET("/v1/evaluations", s.handleListEvaluations)
	e.GET("/v1/evaluations/:id", s.handleGetEvaluation)
	e.DELETE("/v1/evaluations/:id", s.handleDeleteEvaluation)
	e.GET("/v1/families", s.handleListFamilies)
}

func (s *Server) handleCreateEvaluation(c *echo.Context) error {
	body := http.MaxBytesReader(c.Response(), c.Request().Body, MaxRequestBytes)
	req, err := decodeJSON[EvaluationRequest](body)
	if err != nil {
		return writeBadRequest(c, fmt.Sprintf("decode request: %v", err))
	}
	results, err := s.evaluate(c.Request().Context(), req)
	if errors.Is(err, ErrInvalidRequest) {
		return writeBadRequest(c, err.Error())
	}
	if err != nil {
		s.log.Error("evaluation failed", "error", err)
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "")
	}

	ev := s.store.Create(req.Settings, results, s.clock())
	s.log.Info("evaluation created", "id", ev.ID, "problems", len(results))
	return c.JSON(http.StatusCreated, ev)
}

// evaluate runs every problem of req. Anything wrong with the document,
// including errors raised by coefficient functions, is the caller's fault.
func (s *Server) evaluate(ctx context.Context, req EvaluationRequest) ([]series.Report, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidRequest(err)
	}
	if err := checkLimits(req); err != nil {
		return nil, invalidRequest(err)
	}
	results, err := series.RunFile(logger.WithContext(ctx, s.log), req)
	if err != nil {
		return nil, invalidRequest(err)
	}
	return results, nil
}

func (s *Server) handleListEvaluations(c *echo.Context) error {
	return c.JSON(http.StatusOK, EvaluationList{
		Object: "list",
		Data:   s.store.List(),
	})
}

func (s *Server) handleGetEvaluation(c *echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return writeNotFound(c, "evaluation not found")
	}
	ev, ok := s.store.Get(id)
	if !ok {
		return writeNotFound(c, "evaluation not found")
	}
	return c.JSON(http.StatusOK, ev)
}

func (s *Server) handleDeleteEvaluation(c *echo.Context) error {
	id := c.Param("id")
	if id == "" || !s.store.Delete(id) {
		return writeNotFound(c, "evaluation not found")
	}
	s.log.Info("evaluation deleted", "id", id)
	return c.JSON(http.StatusOK, DeleteEvaluationResp{
		ID:      id,
		Object:  "evaluation",
		Deleted: true,
	})
}

func (s *Server) handleListFamilies(c *echo.Context) error {
	return c.JSON(http.StatusOK, FamilyList{
		Object: "list",
		Data:   series.Families(),
	})
}
