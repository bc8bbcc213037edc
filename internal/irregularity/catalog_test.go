package irregularity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/fake-transaction-generator/internal/types"
)

func noopApply(op *Op) ([]types.ProvenanceEntry, error) { return nil, nil }

func TestCatalogRegister(t *testing.T) {
	t.Run("preserves registration order", func(t *testing.T) {
		cat := NewCatalog()
		require.NoError(t, cat.Register(Entry{Kind: "zebra", Apply: noopApply}))
		require.NoError(t, cat.Register(Entry{Kind: "ant", Apply: noopApply}))
		require.NoError(t, cat.Register(Entry{Kind: "mole", Apply: noopApply}))

		assert.Equal(t, []Kind{"zebra", "ant", "mole"}, cat.Kinds())
	})

	t.Run("rejects an empty kind", func(t *testing.T) {
		err := NewCatalog().Register(Entry{Apply: noopApply})
		assert.Error(t, err)
	})

	t.Run("rejects an entry without a transform", func(t *testing.T) {
		err := NewCatalog().Register(Entry{Kind: "nothing"})
		assert.Error(t, err)
	})

	t.Run("rejects an entry with both transforms", func(t *testing.T) {
		err := NewCatalog().Register(Entry{Kind: "both", Apply: noopApply, Spread: spreadCumulative})
		assert.Error(t, err)
	})

	t.Run("rejects duplicate kinds", func(t *testing.T) {
		cat := NewCatalog()
		require.NoError(t, cat.Register(Entry{Kind: "once", Apply: noopApply}))
		assert.Error(t, cat.Register(Entry{Kind: "once", Apply: noopApply}))
	})
}

func TestDefaultCatalog(t *testing.T) {
	want := []Kind{
		KindHighAmount,
		KindFrequencyChange,
		KindDoubleSpend,
		KindMissingID,
		KindIncorrectDate,
		KindMismatchedDescription,
		KindWrongAccount,
		KindPersonalExpense,
		KindBenfordViolation,
		KindSubtleSkimming,
		KindSeasonalAnomaly,
		KindRoundNumberBias,
		KindCumulative,
	}
	assert.Equal(t, want, Default().Kinds())

	freq, ok := Default().Lookup(KindFrequencyChange)
	require.True(t, ok)
	assert.True(t, freq.RecurringOnly)

	cum, ok := Default().Lookup(KindCumulative)
	require.True(t, ok)
	assert.NotNil(t, cum.Spread)
	assert.Nil(t, cum.Apply)
	assert.Equal(t, 0.005, cum.DefaultThreshold)
}

func TestIsRegistered(t *testing.T) {
	assert.True(t, IsRegistered("high_amount"))
	assert.True(t, IsRegistered("cumulative_irregularity"))
	assert.False(t, IsRegistered("made_up_kind"))
	assert.False(t, IsRegistered(""))
}

func TestKindDefaultThreshold(t *testing.T) {
	got, ok := KindDefaultThreshold("cumulative_irregularity")
	require.True(t, ok)
	assert.Equal(t, 0.005, got)

	_, ok = KindDefaultThreshold("high_amount")
	assert.False(t, ok)
}

func TestKindDefaultCount(t *testing.T) {
	got, ok := KindDefaultCount("subtle_skimming")
	require.True(t, ok)
	assert.Equal(t, 10, got)

	got, ok = KindDefaultCount("high_amount")
	require.True(t, ok)
	assert.Equal(t, 1, got)

	_, ok = KindDefaultCount("no_such_kind")
	assert.False(t, ok)
}
