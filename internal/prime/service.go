package prime

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"staking-ledger-go/internal/models"

	"github.com/coinbase-samples/prime-sdk-go/client"
	"github.com/coinbase-samples/prime-sdk-go/credentials"
	"github.com/coinbase-samples/prime-sdk-go/portfolios"
	"github.com/coinbase-samples/prime-sdk-go/wallets"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
)

type Service struct {
	client        client.RestClient
	portfoliosSvc portfolios.PortfoliosService
	walletsSvc    wallets.WalletsService
}

func NewService(creds *credentials.Credentials) (*Service, error) {
	httpClient, err := createCustomHttpClient()
	if err != nil {
		return nil, fmt.Errorf("unable to create custom http client: %w", err)
	}

	restClient := client.NewRestClient(creds, httpClient)

	return &Service{
		client:        restClient,
		portfoliosSvc: portfolios.NewPortfoliosService(restClient),
		walletsSvc:    wallets.NewWalletsService(restClient),
	}, nil
}

func createCustomHttpClient() (http.Client, error) {
	tr := &http.Transport{
		ResponseHeaderTimeout: 30 * time.Second,
		Proxy:                 http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			KeepAlive: 30 * time.Second,
			Timeout:   15 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConnsPerHost:   5,
		ExpectContinueTimeout: 5 * time.Second,
	}

	if err := http2.ConfigureTransport(tr); err != nil {
		return http.Client{}, err
	}

	return http.Client{
		Transport: tr,
		Timeout:   60 * time.Second,
	}, nil
}

const defaultPortfolioName = "Default Portfolio"

func (s *Service) ListPortfolios(ctx context.Context) ([]models.PrimePortfolio, error) {
	response, err := s.portfoliosSvc.ListPortfolios(ctx, &portfolios.ListPortfoliosRequest{})
	if err != nil {
		return nil, fmt.Errorf("unable to list portfolios: %w", err)
	}

	portfolioList := make([]models.PrimePortfolio, len(response.Portfolios))
	for i, p := range response.Portfolios {
		portfolioList[i] = models.PrimePortfolio{
			Id:   p.Id,
			Name: p.Name,
		}
	}

	return portfolioList, nil
}

func (s *Service) FindDefaultPortfolio(ctx context.Context) (*models.PrimePortfolio, error) {
	portfolioList, err := s.ListPortfolios(ctx)
	if err != nil {
		return nil, err
	}
	return selectDefaultPortfolio(portfolioList)
}

func selectDefaultPortfolio(portfolioList []models.PrimePortfolio) (*models.PrimePortfolio, error) {
	for _, portfolio := range portfolioList {
		if portfolio.Name == defaultPortfolioName {
			zap.L().Info("Using default portfolio",
				zap.String("name", portfolio.Name),
				zap.String("id", portfolio.Id))
			return &portfolio, nil
		}
	}

	return nil, fmt.Errorf("default portfolio not found among %d portfolios", len(portfolioList))
}
