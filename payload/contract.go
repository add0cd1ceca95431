package payload

import "github.com/ethereum/go-ethereum/common"

// CreationCode is the compiled creation code of the distribution contract.
// When executed with encoded constructor arguments appended, it sends every
// amount to its recipient and self-destructs, transferring the remaining
// balance to the remainder address.
//
// Failed sends do not emit the SendFailure event declared by ABI. The value
// of a failed send stays with the contract and is swept to the remainder.
var CreationCode = common.FromHex("" +
	"60606040526040516099380380609983398101604052805160805160a051918301" +
	"92019081518351600091146032576002565b5b8351811015608d57838181518110" +
	"1560025790602001906020020151600160a060020a031660008483815181101560" +
	"025790602001906020020151604051809050600060405180830381858888f15050" +
	"5050506001016033565b81600160a060020a0316ff")

// ABI describes the constructor and the events of the distribution
// contract.
const ABI = `[
	{
		"type": "constructor",
		"payable": true,
		"inputs": [
			{"name": "recipients", "type": "address[]"},
			{"name": "amounts", "type": "uint256[]"},
			{"name": "remainder", "type": "address"}
		]
	},
	{
		"type": "event",
		"name": "SendFailure",
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "recipient", "type": "address"},
			{"indexed": false, "name": "amount", "type": "uint256"}
		]
	}
]`
