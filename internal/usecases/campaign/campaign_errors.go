package campaign

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de campanhas
var (
	// Erros de validação
	ErrNameRequired        = errors.New("campaign name is required")
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// Erros de acesso
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrForbidden        = errors.New("campaign belongs to another user")

	// Erros de banco de dados
	ErrCreateCampaign = errors.New("error creating campaign")
	ErrFetchCampaigns = errors.New("error fetching campaigns from database")

	ErrGenerateID = errors.New("error generating campaign ID")
)

// CampaignError é um erro com contexto adicional para campanhas
type CampaignError struct {
	Err        error  // Erro base
	Code       string // Código de erro para API
	CampaignID string // ID da campanha envolvida (quando aplicável)
	Details    string // Detalhes adicionais
}

func (e *CampaignError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CampaignError) Unwrap() error {
	return e.Err
}

func NewCampaignError(err error, code string, details string) *CampaignError {
	return &CampaignError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewCampaignErrorWithID(err error, code string, campaignID string, details string) *CampaignError {
	return &CampaignError{
		Err:        err,
		Code:       code,
		CampaignID: campaignID,
		Details:    details,
	}
}
