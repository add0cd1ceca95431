package coin

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/iov-one/multisend/errors"
)

// Unit is a named denomination of the native ledger currency, expressed as
// a power of ten of its smallest unit, wei.
type Unit struct {
	Name     string
	Decimals int
}

// Units lists all supported denominations, smallest first.
var Units = []Unit{
	{Name: "wei", Decimals: 0},
	{Name: "kwei", Decimals: 3},
	{Name: "mwei", Decimals: 6},
	{Name: "gwei", Decimals: 9},
	{Name: "szabo", Decimals: 12},
	{Name: "finney", Decimals: 15},
	{Name: "ether", Decimals: 18},
}

func findUnit(name string) (Unit, bool) {
	name = strings.ToLower(name)
	for _, u := range Units {
		if u.Name == name {
			return u, true
		}
	}
	return Unit{}, false
}

// ParseHumanFormat parses a human readable amount and returns its value in
// wei. Accepted format is a string:
//   "[-]<whole>[.<fractional>] [<unit>]"
// When unit is not provided, the value is in wei. An amount with a
// precision finer than one wei is rejected.
func ParseHumanFormat(h string) (*big.Int, error) {
	results := humanAmountFormatRx.FindAllStringSubmatch(strings.TrimSpace(h), -1)
	if len(results) != 1 {
		return nil, errors.Wrapf(errors.ErrInvalidAmount, "invalid format %q", h)
	}
	result := results[0][1:]

	unit := Units[0]
	if result[3] != "" {
		u, ok := findUnit(result[3])
		if !ok {
			return nil, errors.Wrapf(errors.ErrInvalidAmount, "unknown unit %q", result[3])
		}
		unit = u
	}

	fract := strings.TrimRight(strings.TrimPrefix(result[2], "."), "0")
	if len(fract) > unit.Decimals {
		return nil, errors.Wrapf(errors.ErrInvalidAmount, "%q is more precise than one wei", h)
	}
	digits := result[1] + fract + strings.Repeat("0", unit.Decimals-len(fract))

	v, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidAmount, "invalid value %q", h)
	}
	if result[0] == "-" {
		v.Neg(v)
	}
	return v, nil
}

var humanAmountFormatRx = regexp.MustCompile(`^(\-?)\s*(\d+)(\.\d+)?\s*([a-zA-Z]+)?$`)

// Format returns a human readable representation of given amount, using
// the largest unit that is not bigger than the amount. The result can be
// parsed back with ParseHumanFormat.
func Format(amount *big.Int) string {
	if amount == nil {
		return "0 wei"
	}
	abs := new(big.Int).Abs(amount)
	unit := Units[0]
	for _, u := range Units {
		if abs.Cmp(pow10(u.Decimals)) >= 0 {
			unit = u
		}
	}

	whole, fract := new(big.Int).QuoRem(abs, pow10(unit.Decimals), new(big.Int))
	s := whole.String()
	if fract.Sign() != 0 {
		f := fract.String()
		// Add leading zeros to convert it to a decimal fraction.
		f = strings.Repeat("0", unit.Decimals-len(f)) + f
		// Remove trailing zeros as they provide no information.
		s += "." + strings.TrimRight(f, "0")
	}
	if amount.Sign() < 0 {
		s = "-" + s
	}
	return fmt.Sprintf("%s %s", s, unit.Name)
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// Flag is an amount that can be used as a command line flag. It implements
// flag.Value interface.
type Flag struct {
	Amount *big.Int
}

// NewFlag returns a flag with given default value.
func NewFlag(defaultValue *big.Int) *Flag {
	return &Flag{Amount: new(big.Int).Set(defaultValue)}
}

// Set updates this flag value to what is provided. Negative amounts are
// rejected.
func (f *Flag) Set(raw string) error {
	val, err := ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	if val.Sign() < 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "amount must not be negative")
	}
	f.Amount = val
	return nil
}

func (f *Flag) String() string {
	if f == nil {
		return Format(nil)
	}
	return Format(f.Amount)
}
