package backend

import (
	"context"

	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/domain/entity"

	"github.com/valyala/fasthttp"
)

const historyPath = "/api/wallets/portfolio-history"

func (c *clientImpl) GetHistory(ctx context.Context, sess *session.Session) (*entity.PortfolioHistory, error) {
	history := entity.PortfolioHistory{Labels: []string{}, Values: []float64{}}
	if err := c.getJSON(ctx, call{
		endpoint: "history.get",
		method:   fasthttp.MethodGet,
		path:     historyPath,
		sess:     sess,
	}, &history); err != nil {
		return nil, err
	}
	if history.Labels == nil {
		history.Labels = []string{}
	}
	if history.Values == nil {
		history.Values = []float64{}
	}
	return &history, nil
}

func (c *clientImpl) RecordHistory(ctx context.Context, sess *session.Session, totalValue float64) error {
	_, err := c.do(ctx, call{
		endpoint: "history.record",
		method:   fasthttp.MethodPost,
		path:     historyPath,
		sess:     sess,
		body:     entity.HistoryRecord{TotalValue: totalValue},
	})
	return err
}
