/*
Package builder creates the cascade of distribution transactions.

Factory creates a single transaction for a payout batch. Builder splits a
payout list into batches and, as long as more than one transaction is
needed, funds the senders of one level with the transactions of the level
above it.
*/
package builder
