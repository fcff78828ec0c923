package statusclient

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Members(ctx context.Context, sess *Session) (Members, error) {
	return do[Members](ctx, c, call{method: http.MethodGet, path: "/team/members", session: sess})
}

// Approve grants role, or viewer when role is empty.
func (c *Client) Approve(ctx context.Context, sess *Session, userID, role string) (Member, error) {
	return c.decide(ctx, sess, userID, "approve", role)
}

func (c *Client) Reject(ctx context.Context, sess *Session, userID string) (Member, error) {
	return c.decide(ctx, sess, userID, "reject", "")
}

func (c *Client) decide(ctx context.Context, sess *Session, userID, action, role string) (Member, error) {
	body := map[string]string{"user_id": userID, "action": action}
	if role != "" {
		body["role"] = role
	}
	return do[Member](ctx, c, call{method: http.MethodPost, path: "/team/approve-user", body: body, session: sess})
}

func (c *Client) UpdateRole(ctx context.Context, sess *Session, userID, role string) (Member, error) {
	return do[Member](ctx, c, call{
		method:  http.MethodPut,
		path:    "/team/update-role",
		body:    map[string]string{"user_id": userID, "new_role": role},
		session: sess,
	})
}

func (c *Client) RevokeAccess(ctx context.Context, sess *Session, userID string) (Member, error) {
	return do[Member](ctx, c, call{
		method:  http.MethodDelete,
		path:    "/team/revoke-access",
		query:   url.Values{"user_id": {userID}},
		session: sess,
	})
}

func (c *Client) RestoreAccess(ctx context.Context, sess *Session, userID, role string) (Member, error) {
	body := map[string]string{"user_id": userID}
	if role != "" {
		body["role"] = role
	}
	return do[Member](ctx, c, call{method: http.MethodPost, path: "/team/restore-access", body: body, session: sess})
}
