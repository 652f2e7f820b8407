package numerology

import (
	"time"

	dErrors "stellium/pkg/domain-errors"
)

// CoreNumbers holds the six core numerology values for one (name, birth date,
// cipher) triple. Every field except Birthday and Challenge is produced by
// Reduce and is therefore a single digit or a master number.
type CoreNumbers struct {
	LifePath    int    `json:"life_path"`
	Expression  int    `json:"expression"`
	SoulUrge    int    `json:"soul_urge"`
	Personality int    `json:"personality"`
	Birthday    int    `json:"birthday"`
	Challenge   int    `json:"challenge"`
	Cipher      Cipher `json:"cipher"`
}

// Engine computes core numbers. It holds no state; calculations are pure and
// safe for concurrent use.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Calculate derives the full core number set.
//
// Two reduction shapes coexist deliberately and must not be unified:
//   - LifePath sums the raw day+month+year first and reduces once, so
//     1990-11-11 gives Reduce(2012) = 5, not 11.
//   - Challenge collapses day and month to single digits independently and
//     diffs them.
// Both shapes are load-bearing for published interpretations.
func (e *Engine) Calculate(fullName string, birthDate time.Time, cipher Cipher) (CoreNumbers, error) {
	if !cipher.IsValid() {
		return CoreNumbers{}, dErrors.Newf(dErrors.CodeInvalidInput, "unknown numerology cipher: %q", cipher)
	}
	normalized := NormalizeName(fullName)
	if normalized == "" {
		return CoreNumbers{}, dErrors.New(dErrors.CodeValidation, "name contains no letters")
	}

	year, month, day := birthDate.Year(), int(birthDate.Month()), birthDate.Day()

	var expressionSum, soulUrgeSum, personalitySum int
	for _, r := range normalized {
		v := cipher.LetterValue(r)
		expressionSum += v
		if IsVowel(r) {
			soulUrgeSum += v
		} else {
			personalitySum += v
		}
	}

	return CoreNumbers{
		LifePath:    Reduce(day + month + year),
		Expression:  Reduce(expressionSum),
		SoulUrge:    Reduce(soulUrgeSum),
		Personality: Reduce(personalitySum),
		// Birthday stays the raw day of month. The interpretive tables cover
		// raw values 1-31, not reduced digits.
		Birthday:  day,
		Challenge: challengeNumber(day, month),
		Cipher:    cipher,
	}, nil
}

// challengeNumber diffs the single-digit collapses of day and month.
func challengeNumber(day, month int) int {
	d := ReduceToDigit(day) - ReduceToDigit(month)
	if d < 0 {
		d = -d
	}
	return d
}
