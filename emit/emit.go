package emit

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/iov-one/multisend/errors"
)

// Supported output formats.
const (
	// FormatRaw writes one hex encoded transaction per line.
	FormatRaw = "raw"
	// FormatWeb3 writes one web3 console call submitting a transaction
	// per line.
	FormatWeb3 = "web3"
)

const (
	web3Prefix = `web3.eth.sendRawTransaction("`
	web3Suffix = `");`
)

// Write serializes transactions in submission order using given format.
func Write(w io.Writer, txs []*types.Transaction, format string) error {
	if format != FormatRaw && format != FormatWeb3 {
		return errors.Wrapf(errors.ErrInvalidInput, "unknown output format %q", format)
	}
	for i, tx := range txs {
		raw, err := tx.MarshalBinary()
		if err != nil {
			return errors.Wrapf(err, "encode transaction %d", i)
		}
		line := hexutil.Encode(raw)
		if format == FormatWeb3 {
			line = web3Prefix + line + web3Suffix
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.Wrap(err, "write")
		}
	}
	return nil
}

// maxLineSize is big enough for a transaction filling a whole block.
const maxLineSize = 4 << 20

// Read parses transactions written by Write in any of the supported
// formats. Empty lines and lines starting with // are ignored.
func Read(r io.Reader) ([]*types.Transaction, error) {
	var txs []*types.Transaction

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, web3Prefix) {
			if !strings.HasSuffix(line, web3Suffix) {
				return nil, errors.Wrapf(errors.ErrInvalidInput, "line %d: unterminated call", n)
			}
			line = line[len(web3Prefix) : len(line)-len(web3Suffix)]
		}
		raw, err := hexutil.Decode(line)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "line %d: %s", n, err)
		}
		var tx types.Transaction
		if err := tx.UnmarshalBinary(raw); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "line %d: %s", n, err)
		}
		txs = append(txs, &tx)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "read: %s", err)
	}
	return txs, nil
}
