package backend

import (
	"context"
	"net/http"

	"guideadmin/internal/dashboard/domain"
)

type usersData struct {
	Users       []domain.User `json:"users"`
	TotalPages  int           `json:"totalPages"`
	TotalUsers  int           `json:"totalUsers"`
	CurrentPage int           `json:"currentPage"`
}

// ListUsers — GET /admin/view-users
func (c *Client) ListUsers(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.User], error) {
	var data usersData
	if _, err := c.do(ctx, http.MethodGet, "/admin/view-users", listQuery(q), nil, &data); err != nil {
		return nil, err
	}
	return &domain.Page[domain.User]{
		Items:       data.Users,
		TotalPages:  data.TotalPages,
		TotalItems:  data.TotalUsers,
		CurrentPage: data.CurrentPage,
	}, nil
}

// ListBookings — GET /common/get-all-booking
func (c *Client) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var data []domain.Booking
	if _, err := c.do(ctx, http.MethodGet, "/common/get-all-booking", nil, nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}
