package planning

import (
	"math"

	"github.com/vfg2006/media-planner-api/internal/domain"
)

// ScoreForGoal mede o quanto um canal rende para o objetivo.
// Os denominadores têm piso 1 para custos abaixo da unidade.
func ScoreForGoal(goal domain.Goal, card domain.RateCard) float64 {
	switch goal {
	case domain.GoalReach:
		return 1 / math.Max(card.CPM, 1)
	case domain.GoalTraffic:
		return 1 / math.Max(card.CPC, 1)
	case domain.GoalLeads:
		return card.CVR / math.Max(card.CPC, 1)
	case domain.GoalConversions:
		return card.CVR * card.PostClick / math.Max(card.CPC, 1)
	default:
		return 1
	}
}

// DefaultShares distribui proporcionalmente ao score; com soma zero divide igualmente
func DefaultShares(goal domain.Goal, cards []domain.RateCard) []float64 {
	shares := make([]float64, len(cards))
	if len(cards) == 0 {
		return shares
	}

	var total float64
	for i, card := range cards {
		shares[i] = ScoreForGoal(goal, card)
		total += shares[i]
	}

	for i := range shares {
		if total > 0 {
			shares[i] /= total
		} else {
			shares[i] = 1 / float64(len(cards))
		}
	}

	return shares
}

// NormalizeSplit renormaliza os pesos manuais positivos para somar 1.
// Pesos zero ou negativos ficam de fora; devolve nil quando não sobra nenhum.
func NormalizeSplit(split map[domain.ChannelKey]float64) map[domain.ChannelKey]float64 {
	var total float64
	for _, w := range split {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return nil
	}

	out := make(map[domain.ChannelKey]float64, len(split))
	for k, w := range split {
		if w > 0 {
			out[k] = w / total
		}
	}
	return out
}

// SmartMix é a combinação pré-definida do modo smart
type SmartMix struct {
	Channels  []domain.ChannelKey
	Split     map[domain.ChannelKey]float64
	Rationale map[domain.ChannelKey]string
}

// SmartMediaMix escolhe canais, split e justificativa por objetivo e tipo de negócio
func SmartMediaMix(goal domain.Goal, businessType domain.BusinessType) SmartMix {
	if businessType == "" {
		businessType = domain.BusinessServices
	}

	switch goal {
	case domain.GoalConversions:
		if businessType == domain.BusinessEcom {
			return SmartMix{
				Channels: []domain.ChannelKey{domain.ChannelMeta, domain.ChannelGoogleSearch, domain.ChannelGoogleDisplayCPC},
				Split: map[domain.ChannelKey]float64{
					domain.ChannelMeta:             0.5,
					domain.ChannelGoogleSearch:     0.3,
					domain.ChannelGoogleDisplayCPC: 0.2,
				},
				Rationale: map[domain.ChannelKey]string{
					domain.ChannelMeta:             "Traffic + warm-up",
					domain.ChannelGoogleSearch:     "Capture hot demand",
					domain.ChannelGoogleDisplayCPC: "Remarketing and top-up",
				},
			}
		}
		return metaSearchMix("Demand generation", "Demand capture")
	case domain.GoalTraffic:
		return SmartMix{
			Channels: []domain.ChannelKey{domain.ChannelMeta, domain.ChannelTelegradChannels},
			Split: map[domain.ChannelKey]float64{
				domain.ChannelMeta:             0.6,
				domain.ChannelTelegradChannels: 0.4,
			},
			Rationale: map[domain.ChannelKey]string{
				domain.ChannelMeta:             "Cheap reach and clicks",
				domain.ChannelTelegradChannels: "Extra traffic and clicks",
			},
		}
	}

	switch businessType {
	case domain.BusinessLocal, domain.BusinessServices:
		return metaSearchMix("Lead generation", "Hot demand")
	case domain.BusinessB2B:
		return metaSearchMix("Narrow audience + engagement", "Query demand")
	default:
		return metaSearchMix("Demand generation", "Demand capture")
	}
}

func metaSearchMix(metaRationale, searchRationale string) SmartMix {
	return SmartMix{
		Channels: []domain.ChannelKey{domain.ChannelMeta, domain.ChannelGoogleSearch},
		Split: map[domain.ChannelKey]float64{
			domain.ChannelMeta:         0.6,
			domain.ChannelGoogleSearch: 0.4,
		},
		Rationale: map[domain.ChannelKey]string{
			domain.ChannelMeta:         metaRationale,
			domain.ChannelGoogleSearch: searchRationale,
		},
	}
}

var metaPlacementLabels = map[string]string{
	"fb_feed":         "Meta · Feed",
	"fb_video_feeds":  "Meta · Video Feeds",
	"fb_instream":     "Meta · In-Stream",
	"fb_reels":        "Meta · Reels",
	"fb_stories":      "Meta · Stories",
	"fb_search":       "Meta · Search",
	"ig_feed":         "Meta · IG Feed",
	"ig_profile_feed": "Meta · Profile",
	"ig_reels":        "Meta · IG Reels",
	"ig_explore":      "Meta · Explore",
	"ig_explore_home": "Meta · Explore Home",
	"ig_stories":      "Meta · IG Stories",
}

// MetaPlacements filtra os posicionamentos reconhecidos, preservando a ordem
func MetaPlacements(placements []string) []string {
	var out []string
	for _, p := range placements {
		if _, ok := metaPlacementLabels[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// activeCard é um cartão resolvido para o plano, já com o posicionamento Meta
type activeCard struct {
	card      domain.RateCard
	placement string
}

// resolveActive monta a lista de cartões ativos na ordem pedida.
// Chaves fora do catálogo são ignoradas; "meta" expande por posicionamento.
func (c *Catalog) resolveActive(keys []domain.ChannelKey, placements []string) (cards []activeCard, metaExpansion int) {
	for _, key := range keys {
		card, ok := c.Card(key)
		if !ok {
			continue
		}

		if key == domain.ChannelMeta && len(placements) > 0 {
			for _, p := range placements {
				cards = append(cards, activeCard{card: card.WithName(metaPlacementLabels[p]), placement: p})
				metaExpansion++
			}
			continue
		}

		cards = append(cards, activeCard{card: card})
	}

	return cards, metaExpansion
}
