package metadomain

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// DailyInsight é uma linha de /insights com time_increment=1 e level=campaign.
// A Graph API devolve os números como string.
type DailyInsight struct {
	AccountID    string   `json:"account_id"`
	CampaignID   string   `json:"campaign_id"`
	CampaignName string   `json:"campaign_name"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	Spend        string   `json:"spend"`
	Actions      []Action `json:"actions"`
}

type InsightsPage struct {
	Data   []DailyInsight `json:"data"`
	Paging Paging         `json:"paging"`
}

// Tipos de ação de cada métrica de fato, em ordem de prioridade
var (
	LeadActionTypes       = []string{"lead", "onsite_conversion.lead_grouped"}
	ConversionActionTypes = []string{"offsite_conversion.fb_pixel_purchase", "purchase"}
	ViewActionTypes       = []string{"video_view"}
)
