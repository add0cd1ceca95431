package emit

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/iov-one/multisend"
	"github.com/iov-one/multisend/errors"
	"github.com/iov-one/multisend/multisendtest/assert"
	"github.com/iov-one/multisend/synth"
)

func sealed(t testing.TB, values ...int64) []*types.Transaction {
	t.Helper()
	sy := synth.New(multisend.DefaultParams(), nil)
	var txs []*types.Transaction
	for _, v := range values {
		tx, _, err := sy.Seal(&types.LegacyTx{
			GasPrice: big.NewInt(1),
			Gas:      85000,
			Value:    big.NewInt(v),
			Data:     []byte{0x60, 0x60},
		})
		if err != nil {
			t.Fatalf("cannot seal: %s", err)
		}
		txs = append(txs, tx)
	}
	return txs
}

func TestWriteRead(t *testing.T) {
	txs := sealed(t, 1, 2, 3)

	for _, format := range []string{FormatRaw, FormatWeb3} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Nil(t, Write(&buf, txs, format))

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			assert.Equal(t, len(txs), len(lines))
			if format == FormatWeb3 && !strings.HasPrefix(lines[0], `web3.eth.sendRawTransaction("0x`) {
				t.Fatalf("unexpected line: %s", lines[0])
			}

			got, err := Read(&buf)
			assert.Nil(t, err)
			assert.Equal(t, len(txs), len(got))
			for i := range txs {
				assert.Equal(t, txs[i].Hash(), got[i].Hash())
			}
		})
	}
}

func TestReadSkipsCommentsAndBlankLines(t *testing.T) {
	txs := sealed(t, 7)
	var buf bytes.Buffer
	assert.Nil(t, Write(&buf, txs, FormatRaw))

	input := "// fund the root first\n\n" + buf.String() + "\n"
	got, err := Read(strings.NewReader(input))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(got))
	assert.Equal(t, txs[0].Hash(), got[0].Hash())
}

func TestReadErrors(t *testing.T) {
	cases := map[string]string{
		"missing prefix":    "f86c",
		"not hex":           "0xzz",
		"not a transaction": "0x01",
		"unterminated call": `web3.eth.sendRawTransaction("0x01"`,
	}
	for testName, input := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := Read(strings.NewReader(input))
			assert.IsErr(t, errors.ErrInvalidInput, err)
		})
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, nil, "yaml")
	assert.IsErr(t, errors.ErrInvalidInput, err)
}
