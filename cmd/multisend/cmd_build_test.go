package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iov-one/multisend/emit"
	"github.com/iov-one/multisend/errors"
	"github.com/iov-one/multisend/multisendtest/assert"
)

const twoPayouts = `[
	["0x00000000000000000000000000000000000000aa", "100"],
	["0x00000000000000000000000000000000000000bb", "200"]
]`

func TestBuildViewVerify(t *testing.T) {
	var built bytes.Buffer
	args := []string{
		"-remainder", "0x00000000000000000000000000000000000000cc",
		"-gas-price", "20gwei",
		"-log-level", "none",
		"-out", emit.FormatWeb3,
	}
	if err := cmdBuild(strings.NewReader(twoPayouts), &built, args); err != nil {
		t.Fatalf("cannot build: %+v", err)
	}
	lines := strings.Split(strings.TrimSpace(built.String()), "\n")
	assert.Equal(t, 1, len(lines))

	var viewed bytes.Buffer
	if err := cmdView(bytes.NewReader(built.Bytes()), &viewed, nil); err != nil {
		t.Fatalf("cannot view: %s", err)
	}
	var views []txView
	if err := json.Unmarshal(viewed.Bytes(), &views); err != nil {
		t.Fatalf("cannot decode view: %s", err)
	}
	assert.Equal(t, 1, len(views))
	assert.Equal(t, uint64(120000), views[0].Gas)
	assert.Equal(t, "300 wei", views[0].Value)
	assert.Equal(t, "20 gwei", views[0].GasPrice)
	assert.Equal(t, true, strings.EqualFold("0x00000000000000000000000000000000000000cc", views[0].Remainder))
	assert.Equal(t, 2, len(views[0].Payouts))
	// 300 + 120000 * 20 gwei
	assert.Equal(t, "2400000000000300", views[0].Funding)

	var report bytes.Buffer
	verifyArgs := []string{
		"-payouts", mustCreateFile(t, strings.NewReader(twoPayouts)),
		"-log-level", "none",
	}
	if err := cmdVerify(bytes.NewReader(built.Bytes()), &report, verifyArgs); err != nil {
		t.Fatalf("cannot verify: %+v", err)
	}
	var rv reportView
	if err := json.Unmarshal(report.Bytes(), &rv); err != nil {
		t.Fatalf("cannot decode report: %s", err)
	}
	assert.Equal(t, true, rv.Valid)
	assert.Equal(t, views[0].Sender, rv.Root)
	assert.Equal(t, 1, len(rv.Transactions))
}

func TestBuildMultiLevelCSV(t *testing.T) {
	input := "address;amount\n" +
		"0x0000000000000000000000000000000000000a01;1 gwei\n" +
		"0x0000000000000000000000000000000000000a02;2 gwei\n" +
		"0x0000000000000000000000000000000000000a03;3 gwei\n" +
		"0x0000000000000000000000000000000000000a04;4 gwei\n" +
		"0x0000000000000000000000000000000000000a05;5 gwei\n"

	var built bytes.Buffer
	args := []string{
		"-format", "csv",
		"-delim", ";",
		"-skip", "1",
		"-batch", "2",
		"-log-level", "none",
	}
	if err := cmdBuild(strings.NewReader(input), &built, args); err != nil {
		t.Fatalf("cannot build: %+v", err)
	}
	txs, err := emit.Read(&built)
	assert.Nil(t, err)
	// Three leaves, two parents and the root.
	assert.Equal(t, 6, len(txs))
}

func TestBuildRefusesToWriteUnverifiedCascade(t *testing.T) {
	// The gas allowance is not enough for contract creation with the
	// homestead rules, so the simulated cascade does not deliver.
	var output bytes.Buffer
	args := []string{
		"-rules", "homestead",
		"-log-level", "none",
	}
	err := cmdBuild(strings.NewReader(twoPayouts), &output, args)
	assert.IsErr(t, errors.ErrPayoutMismatch, err)
	assert.Equal(t, 0, output.Len())
	assert.Equal(t, errors.ExitVerification, errors.ExitCode(err))
}

func TestBuildErrors(t *testing.T) {
	cases := map[string]struct {
		input   string
		args    []string
		wantErr *errors.Error
	}{
		"negative amount": {
			input:   `[["0x00000000000000000000000000000000000000aa", "-1"]]`,
			wantErr: errors.ErrInvalidBatch,
		},
		"empty payout list": {
			input:   `[]`,
			wantErr: errors.ErrEmpty,
		},
		"malformed payout list": {
			input:   `[["0xaa", "1"]]`,
			wantErr: errors.ErrInvalidInput,
		},
		"batch too large": {
			input:   twoPayouts,
			args:    []string{"-batch", "500"},
			wantErr: errors.ErrBatchTooLarge,
		},
		"unknown rules": {
			input:   twoPayouts,
			args:    []string{"-rules", "paris"},
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var output bytes.Buffer
			args := append([]string{"-log-level", "none"}, tc.args...)
			err := cmdBuild(strings.NewReader(tc.input), &output, args)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, 0, output.Len())
		})
	}
}

func TestViewEmptyInput(t *testing.T) {
	err := cmdView(strings.NewReader("\n// nothing to see\n"), &bytes.Buffer{}, nil)
	assert.IsErr(t, errors.ErrEmpty, err)
	assert.Equal(t, errors.ExitInvalidInput, errors.ExitCode(err))
}
