package reconciling

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/vfg2006/media-planner-api/internal/domain"
)

// colunas numéricas aceitas; ausentes ou vazias valem 0
var numericColumns = []string{"impressions", "clicks", "cost", "leads", "conversions", "views"}

// ParseFactCSV lê linhas de fato de um CSV com cabeçalho.
// Linhas com data, plataforma ou número inválido são descartadas e contadas em dropped.
// Só falhas ao ler o cabeçalho devolvem erro.
func ParseFactCSV(r io.Reader) (rows []domain.FactRow, dropped int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return []domain.FactRow{}, 0, nil
		}
		return nil, 0, errors.Wrap(ErrInvalidCSV, err.Error())
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}

	rows = make([]domain.FactRow, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				// erro de leitura do stream: o restante do arquivo é perdido
				dropped++
				break
			}
			dropped++
			continue
		}

		row, ok := parseFactRecord(record, columns)
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, row)
	}

	return rows, dropped, nil
}

func parseFactRecord(record []string, columns map[string]int) (domain.FactRow, bool) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := domain.ParseDate(field("date"))
	if err != nil {
		return domain.FactRow{}, false
	}

	platform := domain.ChannelKey(field("platform"))
	if !platform.Valid() {
		return domain.FactRow{}, false
	}

	values := make([]float64, len(numericColumns))
	for i, name := range numericColumns {
		raw := field(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return domain.FactRow{}, false
		}
		values[i] = v
	}

	return domain.FactRow{
		Date:         date,
		Platform:     platform,
		AdAccountID:  field("ad_account_id"),
		CampaignName: field("campaign_name"),
		Impressions:  values[0],
		Clicks:       values[1],
		Cost:         values[2],
		Leads:        values[3],
		Conversions:  values[4],
		Views:        values[5],
	}, true
}
