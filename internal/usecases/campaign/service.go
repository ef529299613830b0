package campaign

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/media-planner-api/infrastructure/repository"
	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/pkg/apiErrors"
	"github.com/vfg2006/media-planner-api/pkg/utils"
)

type CampaignService interface {
	CreateCampaign(claims *domain.Claims, request *domain.CreateCampaignRequest) (*domain.Campaign, error)
	ListCampaigns(claims *domain.Claims) ([]*domain.Campaign, error)
	// GetCampaign devolve a campanha quando o usuário é dono dela ou administrador
	GetCampaign(claims *domain.Claims, campaignID string) (*domain.Campaign, error)
}

type Service struct {
	campaignRepository repository.CampaignRepository
	generateID         func() (string, error)
}

func NewService(campaignRepository repository.CampaignRepository) CampaignService {
	return &Service{
		campaignRepository: campaignRepository,
		generateID:         utils.GenerateID,
	}
}

func (s *Service) CreateCampaign(claims *domain.Claims, request *domain.CreateCampaignRequest) (*domain.Campaign, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, NewCampaignError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "name")
	}

	currency := request.Currency
	if currency == "" {
		currency = domain.CurrencyUSD
	}
	if currency != domain.CurrencyUSD && currency != domain.CurrencyKZT {
		return nil, NewCampaignError(ErrUnsupportedCurrency, apiErrors.ErrInvalidCurrency, string(currency))
	}

	id, err := s.generateID()
	if err != nil {
		return nil, NewCampaignError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	campaign := &domain.Campaign{
		ID:          id,
		UserID:      claims.UserID,
		Name:        name,
		Currency:    currency,
		AdAccountID: request.AdAccountID,
	}

	if err := s.campaignRepository.CreateCampaign(campaign); err != nil {
		logrus.WithError(err).WithField("user_id", claims.UserID).Error("Erro ao criar campanha")
		return nil, NewCampaignError(ErrCreateCampaign, apiErrors.ErrDatabaseOperation, "Falha ao salvar campanha no banco de dados")
	}

	return campaign, nil
}

func (s *Service) ListCampaigns(claims *domain.Claims) ([]*domain.Campaign, error) {
	campaigns, err := s.campaignRepository.ListCampaignsByUser(claims.UserID)
	if err != nil {
		return nil, NewCampaignError(ErrFetchCampaigns, apiErrors.ErrDatabaseOperation, "Falha ao listar campanhas no banco de dados")
	}

	return campaigns, nil
}

func (s *Service) GetCampaign(claims *domain.Claims, campaignID string) (*domain.Campaign, error) {
	campaign, err := s.campaignRepository.GetCampaignByID(campaignID)
	if err != nil {
		return nil, NewCampaignErrorWithID(ErrFetchCampaigns, apiErrors.ErrDatabaseOperation, campaignID, err.Error())
	}

	if campaign == nil {
		return nil, NewCampaignErrorWithID(ErrCampaignNotFound, apiErrors.ErrCampaignNotFound, campaignID, "")
	}

	if campaign.UserID != claims.UserID && claims.UserRoleID != domain.RoleAdmin {
		return nil, NewCampaignErrorWithID(ErrForbidden, apiErrors.ErrInsufficientPrivilege, campaignID, "")
	}

	return campaign, nil
}
