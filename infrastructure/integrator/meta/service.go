package meta

import (
	"context"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-insights-connector/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-insights-connector/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/internal/planner"
)

// MetaIntegrator reads insights and ad accounts through the Graph API client.
type MetaIntegrator struct {
	Client *metaclient.MetaClient
}

// New wraps client.
func New(client *metaclient.MetaClient) *MetaIntegrator {
	return &MetaIntegrator{
		Client: client,
	}
}

// FetchInsights runs plan against the insights edge of accountID and returns every
// record of every page, in page order.
func (s *MetaIntegrator) FetchInsights(ctx context.Context, accountID string, plan planner.QueryPlan) ([]metadomain.InsightRecord, error) {
	pager := metaclient.NewPager[metadomain.InsightRecord](s.Client, s.Client.InsightsURL(accountID, plan.Values()))

	records, err := metaclient.FetchAll(ctx, pager)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"level":      plan.Level,
			"error":      err.Error(),
		}).Error("meta: failed to fetch insights")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"level":      plan.Level,
		"pages":      pager.Pages(),
		"records":    len(records),
	}).Debug("meta: insights fetched")

	return records, nil
}

// GetAdAccounts lists every ad account visible to the access token, following
// pagination like FetchInsights.
func (s *MetaIntegrator) GetAdAccounts(ctx context.Context) ([]domain.AdAccount, error) {
	pager := metaclient.NewPager[metadomain.AdAccount](s.Client, s.Client.AdAccountsURL())

	accounts, err := metaclient.FetchAll(ctx, pager)
	if err != nil {
		logrus.WithError(err).Error("meta: failed to list ad accounts")
		return nil, err
	}

	result := make([]domain.AdAccount, 0, len(accounts))
	for _, a := range accounts {
		result = append(result, domain.AdAccount{
			ID:   a.ID,
			Name: a.Name,
		})
	}

	logrus.WithField("total_accounts", len(result)).Info("meta: ad accounts retrieved")

	return result, nil
}
