package backend

import (
	"context"
	"net/http"

	"guideadmin/internal/dashboard/domain"
)

type guidesData struct {
	Guides      []domain.Guide `json:"guides"`
	TotalPages  int            `json:"totalPages"`
	TotalGuides int            `json:"totalGuides"`
	CurrentPage int            `json:"currentPage"`
}

// ListGuides — GET /admin/view-guides
func (c *Client) ListGuides(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.Guide], error) {
	var data guidesData
	if _, err := c.do(ctx, http.MethodGet, "/admin/view-guides", listQuery(q), nil, &data); err != nil {
		return nil, err
	}
	return &domain.Page[domain.Guide]{
		Items:       data.Guides,
		TotalPages:  data.TotalPages,
		TotalItems:  data.TotalGuides,
		CurrentPage: data.CurrentPage,
	}, nil
}

type suspensionRequest struct {
	GuideID domain.ID `json:"guideId"`
	Action  string    `json:"action"`
}

// SetSuspension — POST /admin/guide-suspension
func (c *Client) SetSuspension(ctx context.Context, guideID domain.ID, action string) (string, error) {
	if guideID == "" {
		return "", domain.ErrInvalidID
	}
	return c.do(ctx, http.MethodPost, "/admin/guide-suspension", nil, suspensionRequest{GuideID: guideID, Action: action}, nil)
}

// ListRequests — GET /admin/registration-request
func (c *Client) ListRequests(ctx context.Context) ([]domain.Guide, error) {
	var data []domain.Guide
	if _, err := c.do(ctx, http.MethodGet, "/admin/registration-request", nil, nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// GetRequest — GET /guide/get-single-request/{id}
func (c *Client) GetRequest(ctx context.Context, id domain.ID) (*domain.Guide, error) {
	path, err := idPath("/guide/get-single-request/", id)
	if err != nil {
		return nil, err
	}
	var data domain.Guide
	if _, err := c.do(ctx, http.MethodGet, path, nil, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ReviewRequest — PATCH /admin/verify-request/{id}
func (c *Client) ReviewRequest(ctx context.Context, id domain.ID, action string) (string, error) {
	path, err := idPath("/admin/verify-request/", id)
	if err != nil {
		return "", err
	}
	return c.do(ctx, http.MethodPatch, path, nil, map[string]string{"action": action}, nil)
}
