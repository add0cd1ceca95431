/*

Package multisend defines the types shared by the packages building a
trust-minimized payout cascade on an Ethereum-style ledger: payouts, funding
requirements and the build parameters.
It also contains helpers to carry a logger through a context.

A cascade is an ordered list of contract-creation transactions. None of them
is signed with a private key; their senders are recovered from a synthesized
signature. Once the first (root) sender is funded and the transactions are
broadcast in order, every transaction funds the senders of the transactions
that follow it, and the last ones pay the real recipients.

*/

package multisend
