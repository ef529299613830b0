package planning

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/media-planner-api/internal/domain"
)

func TestNewCatalog_DuplicateKeepsPosition(t *testing.T) {
	catalog := NewCatalog([]domain.RateCard{
		{Key: domain.ChannelMeta, CPM: 1},
		{Key: domain.ChannelTikTok, CPM: 2},
		{Key: domain.ChannelMeta, CPM: 3},
	})

	assert.Equal(t, []domain.ChannelKey{domain.ChannelMeta, domain.ChannelTikTok}, catalog.Keys())

	card, ok := catalog.Card(domain.ChannelMeta)
	require.True(t, ok)
	assert.Equal(t, 3.0, card.CPM)

	_, ok = catalog.Card("radio")
	assert.False(t, ok)
}

func TestCatalog_CardsReturnsCopy(t *testing.T) {
	catalog := DefaultCatalog()

	cards := catalog.Cards()
	cards[0].CPM = 999

	card, _ := catalog.Card(cards[0].Key)
	assert.NotEqual(t, 999.0, card.CPM)
}

func TestCatalog_Fallbacks(t *testing.T) {
	catalog := DefaultCatalog()

	assert.Equal(t, 1.0, catalog.CountryFactor("br"))
	assert.Equal(t, 0.9, catalog.CountryFactor(domain.CountryUZ))
	assert.Equal(t, catalog.Targeting(domain.TargetingBalanced), catalog.Targeting("x"))
	assert.Equal(t, catalog.Industry(domain.IndustryOther), catalog.Industry("x"))
	assert.Equal(t, 500.0, catalog.MinBudget(domain.ChannelGoogleSearch))
	assert.Zero(t, catalog.MinBudget("radio"))
}

func TestParseCatalog(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantErr  error
		validate func(t *testing.T, c *Catalog)
	}{
		{
			name: "Substitui cards e mescla tabelas",
			yaml: `
rate_cards:
  - key: meta
    name: Meta
    cpm: 3
    cpc: 0.4
    ctr: 0.01
    cvr: 0.02
    post_click: 0.4
    pricing: mixed
countries:
  kz: 1.5
min_budgets:
  meta: 50
`,
			validate: func(t *testing.T, c *Catalog) {
				assert.Equal(t, []domain.ChannelKey{domain.ChannelMeta}, c.Keys())
				card, _ := c.Card(domain.ChannelMeta)
				assert.Equal(t, 3.0, card.CPM)
				assert.Equal(t, domain.PricingMixed, card.Pricing)
				assert.Equal(t, 1.5, c.CountryFactor(domain.CountryKZ))
				assert.Equal(t, 0.9, c.CountryFactor(domain.CountryUZ))
				assert.Equal(t, 50.0, c.MinBudget(domain.ChannelMeta))
			},
		},
		{
			name: "Sem cards mantém os embutidos",
			yaml: `
targeting:
  focused:
    cost: 2
    ctr: 1
    cvr: 1
`,
			validate: func(t *testing.T, c *Catalog) {
				assert.Equal(t, DefaultCatalog().Keys(), c.Keys())
				assert.Equal(t, 2.0, c.Targeting(domain.TargetingFocused).Cost)
			},
		},
		{
			name: "Card sem chave",
			yaml: `
rate_cards:
  - name: sem chave
    cpm: 1
`,
			wantErr: ErrCardWithoutKey,
		},
		{
			name:    "YAML inválido",
			yaml:    "rate_cards: [",
			wantErr: ErrCatalogLoad,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseCatalog([]byte(tt.yaml))

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, c)
				return
			}

			require.NoError(t, err)
			tt.validate(t, c)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog().Keys(), c.Keys())

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "nao-existe.yaml"))
	assert.True(t, errors.Is(err, ErrCatalogLoad))

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("countries:\n  uz: 0.5\n"), 0o600))

	c, err = LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, c.CountryFactor(domain.CountryUZ))
}
