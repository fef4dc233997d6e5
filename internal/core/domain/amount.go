package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Amount is a non-negative quantity of minor ledger units (e.g. wei).
// Values are immutable; arithmetic returns a new Amount. The zero value is 0.
type Amount struct {
	v *big.Int
}

// NewAmount returns an Amount of n minor units. Negative n is clamped to 0.
func NewAmount(n int64) Amount {
	if n <= 0 {
		return Amount{}
	}
	return Amount{v: big.NewInt(n)}
}

// ParseAmount parses a base-10 integer string of minor units.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if v.Sign() < 0 {
		return Amount{}, fmt.Errorf("%w: negative %q", ErrInvalidAmount, s)
	}
	return Amount{v: v}, nil
}

// ParseMajor converts a decimal string in whole units ("0.01") into minor
// units using the given number of decimals. The conversion is exact: more
// fractional digits than decimals is an error rather than a rounding.
func ParseMajor(s string, decimals uint8) (Amount, error) {
	s = strings.TrimSpace(s)
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if len(frac) > int(decimals) {
		return Amount{}, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidAmount, s, decimals)
	}
	if whole == "" {
		whole = "0"
	}
	digits := whole + frac + strings.Repeat("0", int(decimals)-len(frac))
	for _, r := range digits {
		if r < '0' || r > '9' {
			return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
	}
	v, _ := new(big.Int).SetString(digits, 10)
	return Amount{v: v}, nil
}

func (a Amount) int() *big.Int {
	if a.v == nil {
		return new(big.Int)
	}
	return a.v
}

// Add returns a+b.
func (a Amount) Add(b Amount) Amount {
	return Amount{v: new(big.Int).Add(a.int(), b.int())}
}

// Sub returns a-b, floored at zero.
func (a Amount) Sub(b Amount) Amount {
	v := new(big.Int).Sub(a.int(), b.int())
	if v.Sign() < 0 {
		return Amount{}
	}
	return Amount{v: v}
}

// Cmp compares a and b and returns -1, 0 or +1.
func (a Amount) Cmp(b Amount) int {
	return a.int().Cmp(b.int())
}

func (a Amount) Sign() int {
	return a.int().Sign()
}

func (a Amount) IsZero() bool {
	return a.Sign() == 0
}

// BigInt returns a copy of the underlying value.
func (a Amount) BigInt() *big.Int {
	return new(big.Int).Set(a.int())
}

// String renders the amount in minor units.
func (a Amount) String() string {
	return a.int().String()
}

// Major renders the amount in whole units with trailing fractional zeros
// trimmed, e.g. 1500000000000000000 with 18 decimals is "1.5".
func (a Amount) Major(decimals uint8) string {
	s := a.int().String()
	if decimals == 0 {
		return s
	}
	d := int(decimals)
	if len(s) <= d {
		s = strings.Repeat("0", d-len(s)+1) + s
	}
	whole, frac := s[:len(s)-d], strings.TrimRight(s[len(s)-d:], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
