package chain

import (
	"crypto/rand"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// 模拟链参数：区块号落在主网近期区间，gas 为小额随机值
const (
	baseBlockNumber  = 18_000_000
	blockNumberRange = 1_000_000
)

// Receipt 模拟链上回执
//
// 哈希、区块号和 gas 仅用于展示，不参与任何业务校验。
type Receipt struct {
	TxHash      string
	BlockNumber int64
	GasUsed     decimal.Decimal
}

// NewReceipt 生成一条模拟回执
func NewReceipt() Receipt {
	return Receipt{
		TxHash:      randomHash(),
		BlockNumber: baseBlockNumber + randomInt64(blockNumberRange),
		GasUsed:     randomGas(),
	}
}

// NewAddress 生成一个模拟钱包地址
func NewAddress() string {
	var b [common.AddressLength]byte
	rand.Read(b[:])
	return common.BytesToAddress(b[:]).Hex()
}

// randomHash 生成一个模拟交易哈希
func randomHash() string {
	var b [common.HashLength]byte
	rand.Read(b[:])
	return common.BytesToHash(b[:]).Hex()
}

// randomGas 生成 0.001 ~ 0.011 区间的模拟 gas 消耗
func randomGas() decimal.Decimal {
	n := randomInt64(10_000)
	return decimal.New(n+1_000, -6)
}

func randomInt64(max int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0
	}
	return n.Int64()
}
