package numeric

import "math/big"

type Op int

const (
	OpGCD Op = iota
	OpLCM
)

func (o Op) String() string {
	switch o {
	case OpGCD:
		return "hcf"
	case OpLCM:
		return "lcm"
	default:
		return "unknown"
	}
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// GCD is Euclid's algorithm on absolute values; GCD(0, 0) == 0.
func GCD(a, b int64) int64 {
	x, y := abs(a), abs(b)
	for y != 0 {
		x, y = y, x%y
	}
	return x
}

// LCM returns |a*b| / GCD(a, b), or 0 when either operand is 0.
func LCM(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	return abs(a) / GCD(a, b) * abs(b)
}

// Reduce folds arr left to right with op, starting from |arr[0]|.
// The accumulator is arbitrary precision since an LCM over many values
// quickly leaves the int64 range. arr must not be empty.
func Reduce(arr []int64, op Op) *big.Int {
	acc := new(big.Int).Abs(big.NewInt(arr[0]))
	next := new(big.Int)
	for _, v := range arr[1:] {
		next.Abs(big.NewInt(v))
		switch op {
		case OpGCD:
			acc.GCD(nil, nil, acc, next)
		case OpLCM:
			acc = lcmBig(acc, next)
		}
	}
	return acc
}

func lcmBig(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	g := new(big.Int).GCD(nil, nil, a, b)
	out := new(big.Int).Quo(a, g)
	return out.Mul(out, b)
}
