package compatibility

import (
	dErrors "stellium/pkg/domain-errors"

	"stellium/internal/zodiac"
)

// AnalysisType labels what kind of relationship a score was computed for. The
// scoring rules are identical across types; the label travels with the result
// so consumers can file it correctly.
type AnalysisType string

const (
	AnalysisRomantic   AnalysisType = "romantic"
	AnalysisFriendship AnalysisType = "friendship"
	AnalysisBusiness   AnalysisType = "business"
)

// IsValid checks if the analysis type is one of the supported values.
func (a AnalysisType) IsValid() bool {
	switch a {
	case AnalysisRomantic, AnalysisFriendship, AnalysisBusiness:
		return true
	}
	return false
}

// Rating is the six-bucket categorical label derived from a score.
type Rating string

const (
	RatingExcellent   Rating = "Excellent"
	RatingVeryGood    Rating = "Very Good"
	RatingGood        Rating = "Good"
	RatingFair        Rating = "Fair"
	RatingChallenging Rating = "Challenging"
	RatingDifficult   Rating = "Difficult"
)

// ElementRelation values.
const (
	RelationSameElement   = "same element"
	RelationComplementary = "complementary"
	RelationSameModality  = "same modality"
	RelationDifferent     = "different modality"
)

// Result is a symmetric compatibility assessment of two western signs.
type Result struct {
	SignA            string       `json:"sign_a"`
	SignB            string       `json:"sign_b"`
	AnalysisType     AnalysisType `json:"analysis_type"`
	Score            int          `json:"score"`
	Rating           Rating       `json:"rating"`
	ElementRelation  string       `json:"element_relation"`
	ModalityRelation string       `json:"modality_relation"`
}

// baseAffinity is a sparse matrix of curated pair scores. Lookup tries both
// orientations, so pairs are stored once. Pairs absent from the matrix fall
// back to the deterministic element/modality score.
var baseAffinity = map[string]map[string]int{
	"Aries": {
		"Aries": 75, "Leo": 95, "Sagittarius": 92, "Gemini": 85,
		"Libra": 80, "Cancer": 55, "Capricorn": 50, "Virgo": 48,
	},
	"Taurus": {
		"Taurus": 78, "Virgo": 93, "Capricorn": 94, "Cancer": 88,
		"Pisces": 84, "Leo": 52, "Aquarius": 45, "Sagittarius": 50,
	},
	"Gemini": {
		"Gemini": 72, "Libra": 91, "Aquarius": 90, "Leo": 83,
		"Virgo": 58, "Pisces": 52,
	},
	"Cancer": {
		"Cancer": 80, "Scorpio": 94, "Pisces": 95, "Virgo": 85,
		"Libra": 50, "Aquarius": 47,
	},
	"Leo": {
		"Leo": 82, "Sagittarius": 93, "Libra": 87, "Scorpio": 55,
	},
	"Virgo": {
		"Virgo": 74, "Capricorn": 92, "Scorpio": 86, "Sagittarius": 48,
	},
	"Libra": {
		"Libra": 76, "Aquarius": 92, "Sagittarius": 84, "Capricorn": 52,
	},
	"Scorpio": {
		"Scorpio": 79, "Pisces": 91, "Capricorn": 85, "Aquarius": 46,
	},
	"Sagittarius": {
		"Sagittarius": 77, "Aquarius": 88,
	},
	"Capricorn": {
		"Capricorn": 81, "Pisces": 83,
	},
	"Aquarius": {
		"Aquarius": 73, "Pisces": 60,
	},
	"Pisces": {
		"Pisces": 80,
	},
}

// Fallback scoring weights for pairs outside the matrix. The original system
// used a random value in [40,80] here; this deterministic replacement keeps
// the same range and restores score(A,B) == score(B,A).
const (
	fallbackBase           = 50
	sameElementBonus       = 25
	complementaryElemBonus = 10
	sameModalityBonus      = 10
)

// Scorer computes pairwise compatibility. Stateless and safe for concurrent
// use; tables are fixed at process start.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Score assesses the pair (signA, signB). Both must be western sign names.
// The result is symmetric in its arguments.
func (s *Scorer) Score(signA, signB string, analysis AnalysisType) (Result, error) {
	if !zodiac.IsWesternSign(signA) {
		return Result{}, dErrors.Newf(dErrors.CodeInvalidInput, "unknown sign: %q", signA)
	}
	if !zodiac.IsWesternSign(signB) {
		return Result{}, dErrors.Newf(dErrors.CodeInvalidInput, "unknown sign: %q", signB)
	}
	if analysis == "" {
		analysis = AnalysisRomantic
	}
	if !analysis.IsValid() {
		return Result{}, dErrors.Newf(dErrors.CodeInvalidInput, "unknown analysis type: %q", analysis)
	}

	score, ok := lookupAffinity(signA, signB)
	if !ok {
		score = fallbackScore(signA, signB)
	}

	elemA, elemB := zodiac.ElementOf(signA), zodiac.ElementOf(signB)
	modA, modB := zodiac.ModalityOf(signA), zodiac.ModalityOf(signB)

	elementRelation := RelationComplementary
	if elemA == elemB {
		elementRelation = RelationSameElement
	}
	modalityRelation := RelationDifferent
	if modA == modB {
		modalityRelation = RelationSameModality
	}

	return Result{
		SignA:            signA,
		SignB:            signB,
		AnalysisType:     analysis,
		Score:            score,
		Rating:           RatingFor(score),
		ElementRelation:  elementRelation,
		ModalityRelation: modalityRelation,
	}, nil
}

// lookupAffinity tries matrix[a][b] then matrix[b][a], so a sparsely stored
// matrix still behaves symmetrically.
func lookupAffinity(a, b string) (int, bool) {
	if row, ok := baseAffinity[a]; ok {
		if v, ok := row[b]; ok {
			return v, true
		}
	}
	if row, ok := baseAffinity[b]; ok {
		if v, ok := row[a]; ok {
			return v, true
		}
	}
	return 0, false
}

func fallbackScore(a, b string) int {
	score := fallbackBase
	elemA, elemB := zodiac.ElementOf(a), zodiac.ElementOf(b)
	switch {
	case elemA == elemB:
		score += sameElementBonus
	case complementaryElements(elemA, elemB):
		score += complementaryElemBonus
	}
	if zodiac.ModalityOf(a) == zodiac.ModalityOf(b) {
		score += sameModalityBonus
	}
	return score
}

// Fire feeds on Air; Earth holds Water. The classical complementary pairs.
func complementaryElements(a, b zodiac.Element) bool {
	pair := func(x, y zodiac.Element) bool {
		return (a == x && b == y) || (a == y && b == x)
	}
	return pair(zodiac.ElementFire, zodiac.ElementAir) || pair(zodiac.ElementEarth, zodiac.ElementWater)
}

// RatingFor maps a score to its six-bucket rating.
func RatingFor(score int) Rating {
	switch {
	case score >= 90:
		return RatingExcellent
	case score >= 80:
		return RatingVeryGood
	case score >= 70:
		return RatingGood
	case score >= 60:
		return RatingFair
	case score >= 50:
		return RatingChallenging
	default:
		return RatingDifficult
	}
}
