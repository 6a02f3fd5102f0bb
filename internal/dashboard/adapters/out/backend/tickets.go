package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"guideadmin/internal/dashboard/domain"
)

// ListContacts — GET /client/contact
func (c *Client) ListContacts(ctx context.Context) ([]domain.ContactMessage, error) {
	var data []domain.ContactMessage
	if _, err := c.do(ctx, http.MethodGet, "/client/contact", nil, nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// UpdateContactStatus — PATCH /client/contact/{id}
func (c *Client) UpdateContactStatus(ctx context.Context, id domain.ID, status string) (string, error) {
	path, err := idPath("/client/contact/", id)
	if err != nil {
		return "", err
	}
	return c.do(ctx, http.MethodPatch, path, nil, map[string]string{"status": status}, nil)
}

type reportsData struct {
	Reports      []domain.GuideReport `json:"reports"`
	TotalReports int                  `json:"totalReports"`
	TotalPages   int                  `json:"totalPages"`
	CurrentPage  int                  `json:"currentPage"`
}

// ListReports — GET /common/get-all-guides-reports?page=N
func (c *Client) ListReports(ctx context.Context, page int) (*domain.Page[domain.GuideReport], error) {
	var data reportsData
	q := url.Values{"page": {strconv.Itoa(page)}}
	if _, err := c.do(ctx, http.MethodGet, "/common/get-all-guides-reports", q, nil, &data); err != nil {
		return nil, err
	}
	return &domain.Page[domain.GuideReport]{
		Items:       data.Reports,
		TotalPages:  data.TotalPages,
		TotalItems:  data.TotalReports,
		CurrentPage: data.CurrentPage,
	}, nil
}

// UpdateReportStatus — PATCH /common/guides-reports/{id}
func (c *Client) UpdateReportStatus(ctx context.Context, id domain.ID, status string) (string, error) {
	path, err := idPath("/common/guides-reports/", id)
	if err != nil {
		return "", err
	}
	return c.do(ctx, http.MethodPatch, path, nil, map[string]string{"status": status}, nil)
}
