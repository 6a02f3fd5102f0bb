package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"guideadmin/internal/dashboard/domain"
)

// Overview — GET /admin/dashboard
func (c *Client) Overview(ctx context.Context) (*domain.Overview, error) {
	var data domain.Overview
	if _, err := c.do(ctx, http.MethodGet, "/admin/dashboard", nil, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Analytics — GET /admin/analytics?year=YYYY
func (c *Client) Analytics(ctx context.Context, year int) (*domain.Analytics, error) {
	var data domain.Analytics
	q := url.Values{"year": {strconv.Itoa(year)}}
	if _, err := c.do(ctx, http.MethodGet, "/admin/analytics", q, nil, &data); err != nil {
		return nil, err
	}
	data.Year = year
	return &data, nil
}
