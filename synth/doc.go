/*
Package synth implements key-less transaction signing.

A transaction signature is accepted by the ledger as long as a public key
can be recovered from it. The sender address is derived from that key, but
nobody has to own the matching private key. Synthesizer uses this to create
deterministic sender addresses that can only ever execute the transaction
they were created for.
*/
package synth
