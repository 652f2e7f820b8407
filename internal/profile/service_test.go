package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"stellium/internal/astro"
	"stellium/internal/compatibility"
	"stellium/internal/numerology"
	"stellium/internal/zodiac"
	dErrors "stellium/pkg/domain-errors"
)

type failingOracle struct{}

func (failingOracle) PlanetaryPositions(ctx context.Context, moment astro.BirthMoment) (astro.Positions, error) {
	return nil, errors.New("connection refused")
}

type ServiceSuite struct {
	suite.Suite
	svc *Service
	ctx context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.svc = s.newService(astro.MockOracle{})
}

func (s *ServiceSuite) newService(oracle astro.Oracle) *Service {
	svc, err := NewService(
		zodiac.NewResolver(),
		numerology.NewEngine(),
		compatibility.NewScorer(),
		astro.NewApproximator(oracle),
	)
	s.Require().NoError(err)
	return svc
}

func (s *ServiceSuite) TestCalculateFullProfile() {
	profile, err := s.svc.Calculate(s.ctx, CalculateRequest{
		FullName:   "John Doe",
		BirthDate:  "1990-03-21",
		BirthTime:  "08:30",
		SignSystem: "western",
		Cipher:     "pythagorean",
	})
	s.Require().NoError(err)

	s.NotEmpty(profile.ID)
	s.Equal("Aries", profile.Sign.Name)
	s.Equal("Fire", string(profile.Sign.Element))
	s.Equal(numerology.CipherPythagorean, profile.CoreNumbers.Cipher)
	s.NotZero(profile.CoreNumbers.LifePath)
	s.Require().NotNil(profile.Chart)
	s.Equal(astro.ChartOK, profile.Chart.Status)
	s.NotEmpty(profile.Chart.SunSign)
	s.NotEmpty(profile.Chart.RisingSign, "birth time provided, rising sign expected")
}

func (s *ServiceSuite) TestCalculateDefaults() {
	profile, err := s.svc.Calculate(s.ctx, CalculateRequest{
		FullName:  "John Doe",
		BirthDate: "1990-06-21",
	})
	s.Require().NoError(err)

	s.Equal(zodiac.SystemWestern, profile.Sign.System)
	s.Equal("Cancer", profile.Sign.Name)
	s.Equal(numerology.CipherPythagorean, profile.CoreNumbers.Cipher)
	s.Require().NotNil(profile.Chart)
	s.Empty(profile.Chart.RisingSign, "no birth time, no rising sign")
}

func (s *ServiceSuite) TestDegradedChartDoesNotBlockOtherCategories() {
	svc := s.newService(failingOracle{})

	profile, err := svc.Calculate(s.ctx, CalculateRequest{
		FullName:  "John Doe",
		BirthDate: "1990-11-11",
	})
	s.Require().NoError(err, "astronomical failure degrades, never fails the request")

	s.Equal("Scorpio", profile.Sign.Name)
	s.Equal(5, profile.CoreNumbers.LifePath)
	s.Require().NotNil(profile.Chart)
	s.Equal(astro.ChartDegraded, profile.Chart.Status)
	s.Empty(profile.Chart.Positions)
}

func (s *ServiceSuite) TestCalculateWithoutApproximator() {
	svc, err := NewService(
		zodiac.NewResolver(),
		numerology.NewEngine(),
		compatibility.NewScorer(),
		nil,
	)
	s.Require().NoError(err)

	profile, err := svc.Calculate(s.ctx, CalculateRequest{
		FullName:  "John Doe",
		BirthDate: "1990-03-21",
	})
	s.Require().NoError(err)
	s.Nil(profile.Chart)
	s.Equal("Aries", profile.Sign.Name)
}

func (s *ServiceSuite) TestCalculateSriLankanUsesBirthHour() {
	// July 23 is Leo's first boundary day. Before the 06:00 sunrise the
	// Sri Lankan system still counts it as Cancer.
	early, err := s.svc.Calculate(s.ctx, CalculateRequest{
		FullName:   "John Doe",
		BirthDate:  "1990-07-23",
		BirthTime:  "04:00",
		SignSystem: "sri_lankan",
	})
	s.Require().NoError(err)
	s.Equal("Kataka", early.Sign.Name)

	late, err := s.svc.Calculate(s.ctx, CalculateRequest{
		FullName:   "John Doe",
		BirthDate:  "1990-07-23",
		BirthTime:  "09:00",
		SignSystem: "sri_lankan",
	})
	s.Require().NoError(err)
	s.Equal("Sinha", late.Sign.Name)
}

func (s *ServiceSuite) TestCalculateValidation() {
	tests := []struct {
		name string
		req  CalculateRequest
	}{
		{"missing name", CalculateRequest{BirthDate: "1990-03-21"}},
		{"missing date", CalculateRequest{FullName: "John Doe"}},
		{"invalid date", CalculateRequest{FullName: "John Doe", BirthDate: "1990-02-30"}},
		{"malformed date", CalculateRequest{FullName: "John Doe", BirthDate: "March 21"}},
		{"invalid time", CalculateRequest{FullName: "John Doe", BirthDate: "1990-03-21", BirthTime: "25:00"}},
		{"lat without lon", CalculateRequest{FullName: "John Doe", BirthDate: "1990-03-21", Latitude: ptr(6.9)}},
		{"digits only name", CalculateRequest{FullName: "12345", BirthDate: "1990-03-21"}},
	}
	for _, tc := range tests {
		_, err := s.svc.Calculate(s.ctx, tc.req)
		s.Require().Error(err, tc.name)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation), tc.name)
	}

	_, err := s.svc.Calculate(s.ctx, CalculateRequest{
		FullName:   "John Doe",
		BirthDate:  "1990-03-21",
		SignSystem: "mayan",
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestScore() {
	resp, err := s.svc.Score(s.ctx, ScoreRequest{
		FirstSign:  "Aries",
		SecondSign: "Leo",
	})
	s.Require().NoError(err)

	s.Equal(95, resp.Score)
	s.Equal(compatibility.AnalysisRomantic, resp.AnalysisType, "empty analysis type defaults to romantic")
	s.Equal(compatibility.RatingExcellent, resp.Rating)
}

func (s *ServiceSuite) TestScoreValidation() {
	_, err := s.svc.Score(s.ctx, ScoreRequest{FirstSign: "Aries"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.svc.Score(s.ctx, ScoreRequest{FirstSign: "Aries", SecondSign: "Dragon"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func ptr[T any](v T) *T {
	return &v
}
