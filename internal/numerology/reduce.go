package numerology

// Master numbers are never reduced further, even when they appear as an
// intermediate sum mid-reduction (reduce(29) = 2+9 = 11, stop).
const (
	MasterEleven      = 11
	MasterTwentyTwo   = 22
	MasterThirtyThree = 33
)

// IsMaster reports whether n is one of the master numbers 11, 22, 33.
func IsMaster(n int) bool {
	return n == MasterEleven || n == MasterTwentyTwo || n == MasterThirtyThree
}

// Reduce collapses n to a single digit by repeated digit summing, stopping
// early at a master number. Negative input is normalized via absolute value,
// so Reduce is total over all integers.
func Reduce(n int) int {
	if n < 0 {
		n = -n
	}
	for n > 9 && !IsMaster(n) {
		n = digitSum(n)
	}
	return n
}

// ReduceToDigit collapses n all the way to a single digit, treating master
// numbers like any other value. Used by the challenge number, which diffs two
// single digits and must not preserve masters.
func ReduceToDigit(n int) int {
	if n < 0 {
		n = -n
	}
	for n > 9 {
		n = digitSum(n)
	}
	return n
}

func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}
