package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"stellium/internal/astro"
	"stellium/internal/numerology"
	"stellium/internal/validation"
	"stellium/internal/validation/store"
	"stellium/internal/zodiac"
	"stellium/pkg/testutil"
)

type ValidationHandlerSuite struct {
	suite.Suite
	router  chi.Router
	history *store.InMemoryHistory
	ctx     context.Context
}

func TestValidationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ValidationHandlerSuite))
}

func (s *ValidationHandlerSuite) SetupTest() {
	s.ctx = context.Background()
	s.history = store.NewInMemoryHistory()

	oracle := astro.MockOracle{}
	validator, err := validation.NewValidator(s.history, oracle)
	s.Require().NoError(err)
	subjects := validation.Subjects{
		Resolver:     zodiac.NewResolver(),
		Engine:       numerology.NewEngine(),
		Approximator: astro.NewApproximator(oracle),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = chi.NewRouter()
	New(validator, subjects, s.history, logger).Register(s.router)
}

func (s *ValidationHandlerSuite) TestRunBattery() {
	req := httptest.NewRequest(http.MethodPost, "/validation/run", nil)
	w := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	report := testutil.UnmarshalResponse[validation.Report](s.T(), w)
	s.NotEmpty(report.RunID)
	s.NotEmpty(report.TestResults)
	s.Equal(float64(100), report.OverallAccuracy)
	s.NotEmpty(report.Recommendations)
}

func (s *ValidationHandlerSuite) TestDiagnostics() {
	// Seed history through a real battery run first.
	run := httptest.NewRequest(http.MethodPost, "/validation/run", nil)
	s.router.ServeHTTP(httptest.NewRecorder(), run)

	req := httptest.NewRequest(http.MethodGet, "/diagnostics/accuracy?limit=5", nil)
	w := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	resp := testutil.UnmarshalResponse[diagnosticsResponse](s.T(), w)
	s.NotZero(resp.Stats.Total)
	s.Equal(resp.Stats.Total, resp.Stats.Passed)
	s.Equal(float64(100), resp.Stats.SuccessRate)
	s.Equal(float64(100), resp.OverallAccuracy, "mean accuracy over the recent window")
	s.NotEmpty(resp.Recommendations)
	s.Len(resp.Recent, 5)
}

func (s *ValidationHandlerSuite) TestDiagnosticsEmptyHistory() {
	req := httptest.NewRequest(http.MethodGet, "/diagnostics/accuracy", nil)
	w := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, w.Code)

	resp := testutil.UnmarshalResponse[diagnosticsResponse](s.T(), w)
	s.Zero(resp.Stats.Total)
	s.Zero(resp.OverallAccuracy)
	s.Empty(resp.Recommendations)
	s.Empty(resp.Recent)
}

func (s *ValidationHandlerSuite) TestDiagnosticsInvalidLimit() {
	req := httptest.NewRequest(http.MethodGet, "/diagnostics/accuracy?limit=abc", nil)
	w := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusBadRequest, w.Code)
	testutil.AssertErrorCode(s.T(), w, "bad_request")
}
