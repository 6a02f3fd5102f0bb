package backend

import (
	"context"
	"net/http"

	"guideadmin/internal/dashboard/application/ports/out"
	"guideadmin/internal/dashboard/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	JWT  string `json:"jwt"`
	User struct {
		ID    domain.ID `json:"id"`
		Email string    `json:"email"`
		Name  string    `json:"name"`
		Role  string    `json:"role"`
	} `json:"user"`
}

// Login — POST /admin/login
func (c *Client) Login(ctx context.Context, email, password string) (*out.LoginResult, error) {
	var data loginData
	msg, err := c.do(ctx, http.MethodPost, "/admin/login", nil, loginRequest{Email: email, Password: password}, &data)
	if err != nil {
		return nil, err
	}
	if data.User.ID == "" {
		return nil, &domain.BackendError{Status: http.StatusOK, Message: "login response has no user"}
	}

	return &out.LoginResult{
		Token:   data.JWT,
		UserID:  data.User.ID.String(),
		Email:   data.User.Email,
		Name:    data.User.Name,
		Role:    data.User.Role,
		Message: msg,
	}, nil
}
