package statusclient

import (
	"context"
	"net/http"
)

func (c *Client) ValidateSubscription(ctx context.Context, code string) (Subscription, error) {
	return do[Subscription](ctx, c, call{
		method: http.MethodPost,
		path:   "/organization/validate-subscription",
		body:   map[string]string{"subscription_code": code},
	})
}

func (c *Client) RegisterOrganization(ctx context.Context, req RegisterOrganizationRequest) (Registration, error) {
	return do[Registration](ctx, c, call{method: http.MethodPost, path: "/organization/register", body: req})
}

// LookupOrganization backs the member sign-up form.
func (c *Client) LookupOrganization(ctx context.Context, orgID string) (OrganizationInfo, error) {
	return do[OrganizationInfo](ctx, c, call{method: http.MethodGet, path: pathf("/team/organization/%s", orgID)})
}

func (c *Client) Settings(ctx context.Context, sess *Session) (Settings, error) {
	return do[Settings](ctx, c, call{method: http.MethodGet, path: "/organizations/settings", session: sess})
}

func (c *Client) CreateSettings(ctx context.Context, sess *Session, patch SettingsPatch) (Settings, error) {
	return do[Settings](ctx, c, call{method: http.MethodPost, path: "/organizations/settings", body: patch, session: sess})
}

func (c *Client) UpdateSettings(ctx context.Context, sess *Session, patch SettingsPatch) (Settings, error) {
	return do[Settings](ctx, c, call{method: http.MethodPut, path: "/organizations/settings", body: patch, session: sess})
}
