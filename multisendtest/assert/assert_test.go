package assert

import (
	"math/big"
	"testing"

	"github.com/iov-one/multisend/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		ErrWant  error
		ErrGot   error
		WantFail bool
	}{
		"same error": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.ErrEmpty,
			WantFail: false,
		},
		"compared to nil": {
			ErrWant:  nil,
			ErrGot:   errors.ErrEmpty,
			WantFail: true,
		},
		"both nil": {
			ErrWant:  nil,
			ErrGot:   nil,
			WantFail: false,
		},
		"wrapped": {
			ErrWant:  errors.ErrInvalidBatch,
			ErrGot:   errors.Wrap(errors.ErrInvalidBatch, "test"),
			WantFail: false,
		},
		"different kind": {
			ErrWant:  errors.ErrPayoutMismatch,
			ErrGot:   errors.Wrap(errors.ErrReplayFailed, "test"),
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.ErrWant, tc.ErrGot)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestFieldErrors(t *testing.T) {
	cases := map[string]struct {
		Err      error
		Name     string
		WantErr  *errors.Error
		WantFail bool
	}{
		"ensure a single error exists and is found": {
			Err:      errors.Field("Payouts.0", errors.ErrInvalidBatch, "negative amount"),
			Name:     "Payouts.0",
			WantErr:  errors.ErrInvalidBatch,
			WantFail: false,
		},
		"use nil to ensure no error was found": {
			Err:      errors.Field("Payouts.0", errors.ErrInvalidBatch, "negative amount"),
			Name:     "Payouts.1",
			WantErr:  nil,
			WantFail: false,
		},
		"use nil to fail when an error was found but was not expected": {
			Err:      errors.Field("Payouts.0", errors.ErrInvalidBatch, "negative amount"),
			Name:     "Payouts.0",
			WantErr:  nil,
			WantFail: true,
		},
		"more than one error for a single field is not allowed, even if it is the same error type": {
			Err: errors.Append(
				errors.Field("Payouts.0", errors.ErrInvalidBatch, "first"),
				errors.Field("Payouts.0", errors.ErrInvalidBatch, "second"),
			),
			Name:     "Payouts.0",
			WantErr:  errors.ErrInvalidBatch,
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			FieldError(mock, tc.Err, tc.Name, tc.WantErr)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestBigEqual(t *testing.T) {
	cases := map[string]struct {
		Want     *big.Int
		Got      *big.Int
		WantFail bool
	}{
		"same value": {
			Want: big.NewInt(300),
			Got:  new(big.Int).Add(big.NewInt(100), big.NewInt(200)),
		},
		"zero in different forms": {
			Want: new(big.Int),
			Got:  new(big.Int).Sub(big.NewInt(5), big.NewInt(5)),
		},
		"both nil": {},
		"nil and zero": {
			Want:     nil,
			Got:      new(big.Int),
			WantFail: true,
		},
		"different values": {
			Want:     big.NewInt(1),
			Got:      big.NewInt(2),
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			BigEqual(mock, tc.Want, tc.Got)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

// tmock mocks testing.TB and only counts failure calls. It ignores all other
// input.
type tmock struct {
	testing.TB
	failcalls int
}

func (t *tmock) Error(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Errorf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}

func (t *tmock) Fatal(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Fatalf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}
