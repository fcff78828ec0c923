package statusclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) Directory(ctx context.Context) ([]DirectoryEntry, error) {
	return do[[]DirectoryEntry](ctx, c, call{method: http.MethodGet, path: "/public/organizations"})
}

// Status accepts an organization id or its exact name.
func (c *Client) Status(ctx context.Context, orgRef string) (StatusSnapshot, error) {
	return do[StatusSnapshot](ctx, c, call{method: http.MethodGet, path: pathf("/public/organizations/%s/status", orgRef)})
}

func (c *Client) PublicServices(ctx context.Context, orgRef string) ([]Service, error) {
	return do[[]Service](ctx, c, call{method: http.MethodGet, path: pathf("/public/organizations/%s/services", orgRef)})
}

func (c *Client) PublicIncidents(ctx context.Context, orgRef string) ([]Incident, error) {
	return do[[]Incident](ctx, c, call{method: http.MethodGet, path: pathf("/public/organizations/%s/incidents", orgRef)})
}

// Timeline leaves the window to the server default when days is 0.
func (c *Client) Timeline(ctx context.Context, orgRef string, days int) (Timeline, error) {
	q := url.Values{}
	if days != 0 {
		q.Set("days", strconv.Itoa(days))
	}
	return do[Timeline](ctx, c, call{
		method: http.MethodGet,
		path:   pathf("/organizations/public/%s/incidents/timeline", orgRef),
		query:  q,
	})
}

// StatusPage looks up a branded page by subdomain or custom domain.
func (c *Client) StatusPage(ctx context.Context, host string) (StatusPage, error) {
	return do[StatusPage](ctx, c, call{method: http.MethodGet, path: pathf("/status/%s", host)})
}

func (c *Client) StatusPageByOrg(ctx context.Context, orgID string) (StatusPage, error) {
	return do[StatusPage](ctx, c, call{method: http.MethodGet, path: pathf("/status/org/%s", orgID)})
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	return do[Health](ctx, c, call{method: http.MethodGet, path: "/health"})
}
