package handler

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"stellium/internal/astro"
	"stellium/internal/compatibility"
	"stellium/internal/numerology"
	"stellium/internal/profile"
	"stellium/internal/zodiac"
	"stellium/pkg/testutil"
)

type ProfileHandlerSuite struct {
	suite.Suite
	router chi.Router
	ctx    context.Context
}

func TestProfileHandlerSuite(t *testing.T) {
	suite.Run(t, new(ProfileHandlerSuite))
}

func (s *ProfileHandlerSuite) SetupTest() {
	s.ctx = context.Background()

	svc, err := profile.NewService(
		zodiac.NewResolver(),
		numerology.NewEngine(),
		compatibility.NewScorer(),
		astro.NewApproximator(astro.MockOracle{}),
	)
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = chi.NewRouter()
	New(svc, logger).Register(s.router)
}

func (s *ProfileHandlerSuite) post(path string, body any) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, path, body)
	return testutil.DoRequest(s.router, req)
}

func (s *ProfileHandlerSuite) TestCalculate() {
	w := s.post("/profile/calculate", profile.CalculateRequest{
		FullName:   "John Doe",
		BirthDate:  "1990-03-21",
		BirthTime:  "08:30",
		SignSystem: "western",
		Cipher:     "pythagorean",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	resp := testutil.UnmarshalResponse[profile.CosmicProfile](s.T(), w)
	s.NotEmpty(resp.ID)
	s.Equal("Aries", resp.Sign.Name)
	s.NotZero(resp.CoreNumbers.LifePath)
	s.Require().NotNil(resp.Chart)
	s.Equal(astro.ChartOK, resp.Chart.Status)
	s.NotEmpty(w.Header().Get("X-Request-ID"))
}

func (s *ProfileHandlerSuite) TestCalculateValidationError() {
	w := s.post("/profile/calculate", profile.CalculateRequest{
		FullName:  "John Doe",
		BirthDate: "1990-02-30",
	})
	s.Require().Equal(http.StatusBadRequest, w.Code, w.Body.String())
	testutil.AssertErrorCode(s.T(), w, "validation")
}

func (s *ProfileHandlerSuite) TestCalculateRejectsUnknownFields() {
	w := s.post("/profile/calculate", map[string]any{
		"full_name":  "John Doe",
		"birth_date": "1990-03-21",
		"birthdate":  "typo",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ProfileHandlerSuite) TestCalculateRejectsNonJSONContentType() {
	req := httptest.NewRequest(http.MethodPost, "/profile/calculate", bytes.NewReader([]byte("full_name=x")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ProfileHandlerSuite) TestScore() {
	w := s.post("/compatibility/score", profile.ScoreRequest{
		FirstSign:    "Aries",
		SecondSign:   "Leo",
		AnalysisType: "friendship",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	resp := testutil.UnmarshalResponse[compatibility.Result](s.T(), w)
	s.Equal(95, resp.Score)
	s.Equal(compatibility.AnalysisFriendship, resp.AnalysisType)
	s.Equal(compatibility.RatingExcellent, resp.Rating)
}

func (s *ProfileHandlerSuite) TestScoreUnknownSign() {
	w := s.post("/compatibility/score", profile.ScoreRequest{
		FirstSign:  "Aries",
		SecondSign: "Dragon",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}
