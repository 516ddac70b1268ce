package crmclient

import (
	"context"
	"net/http"
	"net/url"
)

// Login signs in and keeps the returned token for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	form := LoginForm{Email: email, Password: password}
	if err := Validate(form); err != nil {
		return nil, err
	}
	var resp struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, form, &resp); err != nil {
		return nil, err
	}
	c.setSession(resp.Token, resp.User)
	return resp.User, nil
}

// Me fetches the signed-in user's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.authed(ctx, http.MethodGet, "/v1/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	form := struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password"     validate:"required,min=8"`
	}{current, next}
	if err := Validate(form); err != nil {
		return err
	}
	return c.authed(ctx, http.MethodPut, "/v1/me/password", nil, form, nil)
}

// AddComment appends text to an inquiry's description history.
func (c *Client) AddComment(ctx context.Context, inquiryID, text string) (*Comment, error) {
	form := struct {
		Text string `json:"text" validate:"required,max=2000"`
	}{text}
	if err := Validate(form); err != nil {
		return nil, err
	}
	var out Comment
	path := "/v1/inquiries/" + url.PathEscape(inquiryID) + "/comments"
	if err := c.authed(ctx, http.MethodPost, path, nil, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateInquiryStatus(ctx context.Context, inquiryID, status string) (*Inquiry, error) {
	form := struct {
		Status string `json:"status" validate:"required,oneof=tender purchase procurement urgent"`
	}{status}
	if err := Validate(form); err != nil {
		return nil, err
	}
	var out Inquiry
	path := "/v1/inquiries/" + url.PathEscape(inquiryID) + "/status"
	if err := c.authed(ctx, http.MethodPut, path, nil, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignFollowUp assigns an inquiry and creates the linked follow-up.
func (c *Client) AssignFollowUp(ctx context.Context, inquiryID string, form AssignFollowUpForm) (*Inquiry, *FollowUp, error) {
	if err := Validate(form); err != nil {
		return nil, nil, err
	}
	var resp struct {
		Inquiry  *Inquiry  `json:"inquiry"`
		FollowUp *FollowUp `json:"follow_up"`
	}
	path := "/v1/inquiries/" + url.PathEscape(inquiryID) + "/follow-up"
	if err := c.authed(ctx, http.MethodPost, path, nil, form, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Inquiry, resp.FollowUp, nil
}

func (c *Client) Notifications(ctx context.Context, p ListParams, unreadOnly bool) (*Page[Notification], error) {
	q := p.values()
	if unreadOnly {
		q.Set("unread", "true")
	}
	var page Page[Notification]
	if err := c.authed(ctx, http.MethodGet, "/v1/notifications", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	var resp struct {
		Count int64 `json:"count"`
	}
	if err := c.authed(ctx, http.MethodGet, "/v1/notifications/unread-count", nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.authed(ctx, http.MethodPut, "/v1/notifications/"+url.PathEscape(id)+"/read", nil, nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) (int64, error) {
	var resp struct {
		Updated int64 `json:"updated"`
	}
	if err := c.authed(ctx, http.MethodPut, "/v1/notifications/read-all", nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Updated, nil
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.authed(ctx, http.MethodDelete, "/v1/notifications/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) AnalyticsSummary(ctx context.Context) (*Summary, error) {
	var s Summary
	if err := c.authed(ctx, http.MethodGet, "/v1/analytics/summary", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
