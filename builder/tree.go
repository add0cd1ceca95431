package builder

import (
	"context"
	"math/big"
	"runtime"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/iov-one/multisend"
	"github.com/iov-one/multisend/errors"
	"golang.org/x/sync/errgroup"
)

// Tree is an ordered cascade of distribution transactions. Transactions
// closer to the root precede transactions further from it, so every
// transaction is funded before it is executed.
type Tree struct {
	// Root is the only address that must be funded from outside.
	Root common.Address
	// Funding is the exact amount that must be sent to Root.
	Funding *big.Int
	// Transactions in submission order. The first one is sent by Root.
	Transactions []*Transaction
	// Levels is the height of the tree.
	Levels int
}

// Raw returns the sealed transactions in submission order.
func (t *Tree) Raw() []*types.Transaction {
	raw := make([]*types.Transaction, len(t.Transactions))
	for i, tx := range t.Transactions {
		raw[i] = tx.Tx
	}
	return raw
}

// Leaves returns the transactions delivering the requested payouts.
func (t *Tree) Leaves() []*Transaction {
	var leaves []*Transaction
	for _, tx := range t.Transactions {
		if tx.Level == 0 {
			leaves = append(leaves, tx)
		}
	}
	return leaves
}

// Builder partitions payouts into batches and builds the transaction tree
// funding them.
type Builder struct {
	factory *Factory
	// Workers limits the number of transactions of a single level
	// synthesized at the same time.
	Workers int
}

// NewBuilder returns a builder using given factory.
func NewBuilder(f *Factory) *Builder {
	return &Builder{factory: f, Workers: runtime.NumCPU()}
}

// Build returns a transaction tree delivering all payouts. Any value that
// cannot be delivered ends up on the remainder address.
//
// Payouts are partitioned into consecutive batches of at most maxBatchSize
// elements. When more than one batch is created, the funding requirements
// of the batch transactions become the payouts of the next level. This is
// repeated until a level consists of a single transaction.
func (b *Builder) Build(ctx context.Context, payouts []multisend.Payout, remainder common.Address, maxBatchSize int) (*Tree, error) {
	if err := b.validate(payouts, maxBatchSize); err != nil {
		return nil, err
	}

	logger := multisend.GetLogger(ctx)

	var levels [][]*Transaction
	current := payouts
	for depth := 0; ; depth++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		txs, err := b.buildLevel(ctx, current, remainder, maxBatchSize, depth)
		if err != nil {
			return nil, err
		}
		logger.Debug("level built", "level", depth, "payouts", len(current), "transactions", len(txs))
		levels = append(levels, txs)
		if len(txs) == 1 {
			break
		}

		current = make([]multisend.Payout, len(txs))
		for i, tx := range txs {
			current[i] = tx.Funding.Payout()
		}
	}

	var ordered []*Transaction
	for i := len(levels) - 1; i >= 0; i-- {
		ordered = append(ordered, levels[i]...)
	}
	root := ordered[0]
	tree := &Tree{
		Root:         root.Sender,
		Funding:      new(big.Int).Set(root.Funding.Amount),
		Transactions: ordered,
		Levels:       len(levels),
	}
	logger.Info("cascade built",
		"root", tree.Root.Hex(),
		"funding", tree.Funding.String(),
		"transactions", len(tree.Transactions),
		"levels", tree.Levels)
	return tree, nil
}

func (b *Builder) validate(payouts []multisend.Payout, maxBatchSize int) error {
	if len(payouts) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no payouts")
	}
	if err := multisend.ValidatePayouts(payouts); err != nil {
		return err
	}
	if maxBatchSize < 1 {
		return errors.Wrapf(errors.ErrInvalidInput, "max batch size %d", maxBatchSize)
	}
	if maxBatchSize == 1 && len(payouts) > 1 {
		return errors.Wrap(errors.ErrInvalidInput, "a batch size of one cannot fund more than one payout")
	}
	p := b.factory.Params()
	gas, err := p.GasLimit(maxBatchSize)
	if err != nil {
		return errors.Wrap(err, "max batch size")
	}
	if gas > p.BlockGasLimit {
		return errors.Wrapf(errors.ErrBatchTooLarge,
			"batch of %d requires %d gas, at most %d recipients fit in a block",
			maxBatchSize, gas, p.MaxRecipients())
	}
	return nil
}

// buildLevel creates one transaction for every consecutive chunk of given
// payouts. Chunks are processed concurrently, but the result keeps the
// chunk order.
func (b *Builder) buildLevel(ctx context.Context, payouts []multisend.Payout, remainder common.Address, size, depth int) ([]*Transaction, error) {
	chunks := chunk(payouts, size)
	txs := make([]*Transaction, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	if b.Workers > 0 {
		g.SetLimit(b.Workers)
	}
	for i, c := range chunks {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tx, err := b.factory.Build(c, remainder)
			if err != nil {
				return errors.Wrapf(err, "level %d batch %d", depth, i)
			}
			tx.Level = depth
			txs[i] = tx
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return txs, nil
}

func chunk(payouts []multisend.Payout, size int) [][]multisend.Payout {
	chunks := make([][]multisend.Payout, 0, (len(payouts)+size-1)/size)
	for start := 0; start < len(payouts); start += size {
		end := start + size
		if end > len(payouts) {
			end = len(payouts)
		}
		chunks = append(chunks, payouts[start:end])
	}
	return chunks
}
