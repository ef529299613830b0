package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/media-planner-api/internal/domain"
)

func TestKey(t *testing.T) {
	base := domain.DefaultPlanRequest()
	base.Budget = 1000
	base.BudgetSplit = map[domain.ChannelKey]float64{
		domain.ChannelMeta:         2,
		domain.ChannelGoogleSearch: 1,
		domain.ChannelTikTok:       1,
	}

	first, err := Key(base)
	require.NoError(t, err)

	t.Run("Chave tem prefixo e hash sha256", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(first, keyPrefix))
		assert.Len(t, first, len(keyPrefix)+64)
	})

	t.Run("Mesma requisição gera a mesma chave", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			again, err := Key(base)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("Orçamento diferente gera outra chave", func(t *testing.T) {
		other, err := Key(base.WithBudget(2000))
		require.NoError(t, err)
		assert.NotEqual(t, first, other)
	})
}
