package chain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewReceipt(t *testing.T) {
	r := NewReceipt()

	assert.Regexp(t, `^0x[0-9a-f]{64}$`, r.TxHash)
	assert.GreaterOrEqual(t, r.BlockNumber, int64(baseBlockNumber))
	assert.Less(t, r.BlockNumber, int64(baseBlockNumber+blockNumberRange))
	assert.True(t, r.GasUsed.IsPositive())
	assert.True(t, r.GasUsed.LessThan(decimal.NewFromInt(1)))
}

func TestReceiptsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		r := NewReceipt()
		assert.False(t, seen[r.TxHash], "duplicate hash %s", r.TxHash)
		seen[r.TxHash] = true
	}
}

func TestNewAddress(t *testing.T) {
	// go-ethereum 的 Hex() 输出 EIP-55 校验和格式（大小写混合）
	addr := NewAddress()
	assert.Regexp(t, `^0x[0-9a-fA-F]{40}$`, addr)
	assert.NotEqual(t, addr, NewAddress())
}
