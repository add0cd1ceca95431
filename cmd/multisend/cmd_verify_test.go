package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/multisend/errors"
	"github.com/iov-one/multisend/multisendtest/assert"
)

func TestVerifyReportsMismatch(t *testing.T) {
	var built bytes.Buffer
	if err := cmdBuild(strings.NewReader(twoPayouts), &built, []string{"-log-level", "none"}); err != nil {
		t.Fatalf("cannot build: %+v", err)
	}

	// Expect more than was built for.
	expected := `[
		["0x00000000000000000000000000000000000000aa", "100"],
		["0x00000000000000000000000000000000000000bb", "201"]
	]`
	var report bytes.Buffer
	args := []string{
		"-payouts", mustCreateFile(t, strings.NewReader(expected)),
		"-log-level", "none",
	}
	err := cmdVerify(&built, &report, args)
	assert.IsErr(t, errors.ErrPayoutMismatch, err)
	field := common.HexToAddress("0x00000000000000000000000000000000000000bb").Hex()
	assert.FieldError(t, err, field, errors.ErrPayoutMismatch)

	var rv reportView
	if err := json.Unmarshal(report.Bytes(), &rv); err != nil {
		t.Fatalf("cannot decode report: %s", err)
	}
	assert.Equal(t, false, rv.Valid)
	assert.Equal(t, 1, len(rv.Transactions))
	assert.Equal(t, true, rv.Transactions[0].Success)
}

func TestVerifyInvalidInput(t *testing.T) {
	args := []string{
		"-payouts", mustCreateFile(t, strings.NewReader(twoPayouts)),
		"-log-level", "none",
	}
	err := cmdVerify(strings.NewReader("0xnothex"), &bytes.Buffer{}, args)
	assert.IsErr(t, errors.ErrInvalidInput, err)
}
