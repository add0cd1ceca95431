/*
Package payload encodes the data of distribution contract creation
transactions.

The data is the contract creation code followed by the ABI encoded
constructor arguments: the recipient list, the amount list and the
remainder address.
*/
package payload
