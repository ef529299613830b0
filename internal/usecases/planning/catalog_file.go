package planning

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/vfg2006/media-planner-api/internal/domain"
)

// catalogFile é o formato YAML aceito em CATALOG_PATH
type catalogFile struct {
	RateCards  []domain.RateCard                           `yaml:"rate_cards"`
	Targeting  map[domain.TargetingDepth]domain.Adjustment `yaml:"targeting"`
	Countries  map[domain.Country]float64                  `yaml:"countries"`
	Industries map[domain.Industry]domain.Adjustment       `yaml:"industries"`
	MinBudgets map[domain.ChannelKey]float64               `yaml:"min_budgets"`
}

// LoadCatalog devolve o catálogo embutido quando path é vazio, ou o catálogo
// lido do arquivo. Seções ausentes mantêm os valores embutidos.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrCatalogLoad, "reading %s: %v", path, err)
	}

	return ParseCatalog(data)
}

// ParseCatalog interpreta um documento YAML de catálogo
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(ErrCatalogLoad, "decoding yaml: %v", err)
	}

	cards := defaultRateCards
	if len(file.RateCards) > 0 {
		for i, card := range file.RateCards {
			if card.Key == "" {
				return nil, errors.Wrapf(ErrCardWithoutKey, "rate_cards[%d]", i)
			}
		}
		cards = file.RateCards
	}

	return NewCatalog(cards,
		WithTargeting(file.Targeting),
		WithCountries(file.Countries),
		WithIndustries(file.Industries),
		WithMinBudgets(file.MinBudgets),
	), nil
}
