package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iov-one/multisend/payout"
	"github.com/iov-one/multisend/multisendtest/assert"
)

func TestConvert(t *testing.T) {
	input := "0x00000000000000000000000000000000000000aa,1.5 gwei\n" +
		"0x00000000000000000000000000000000000000bb,7\n"

	var output bytes.Buffer
	if err := cmdConvert(strings.NewReader(input), &output, []string{"-format", "csv"}); err != nil {
		t.Fatalf("cannot convert: %s", err)
	}

	payouts, err := payout.ReadJSON(&output)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(payouts))
	assert.Equal(t, "1500000000", payouts[0].Amount.String())
	assert.Equal(t, "7", payouts[1].Amount.String())
}
