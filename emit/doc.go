/*
Package emit writes transactions in a form ready for submission to the
ledger and reads them back.

Transactions must be submitted in the order they are written.
*/
package emit
