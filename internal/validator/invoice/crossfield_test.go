package invoice_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invex/internal/validator/invoice"
)

func TestCrossField_GrandTotal(t *testing.T) {
	v := findValidator("xf.grand_total")
	require.NotNil(t, v)
	assert.Equal(t, invoice.RuleTypeCrossField, v.RuleType())
	ctx := context.Background()

	t.Run("pass_equal", func(t *testing.T) {
		results := v.Validate(ctx, validRecord())
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
	})

	t.Run("pass_round_off", func(t *testing.T) {
		rec := validRecord()
		rec.Summary.StatedTotal = n("1180.60")
		results := v.Validate(ctx, rec)
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
	})

	t.Run("fail_mismatch", func(t *testing.T) {
		rec := validRecord()
		rec.Summary.StatedTotal = n("1280")
		results := v.Validate(ctx, rec)
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.Equal(t, invoice.RecordLevel, results[0].LineIndex)
	})

	t.Run("skip_without_stated_total", func(t *testing.T) {
		rec := validRecord()
		rec.Summary.StatedTotal = decimal.NullDecimal{}
		assert.Empty(t, v.Validate(ctx, rec))
	})
}

func TestAllBuiltinValidators_UniqueKeys(t *testing.T) {
	seen := map[string]bool{}
	for _, v := range invoice.AllBuiltinValidators() {
		assert.False(t, seen[v.RuleKey()], v.RuleKey())
		seen[v.RuleKey()] = true
	}
	assert.Len(t, seen, 6)
}
