package backoffice

import (
	"context"
	"net/url"

	"hoteldesk/internal/domain"
)

// Login exchanges form-encoded credentials for a bearer token.
// Persisting the token is the session's job, not the transport's.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.Token, error) {
	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	var tok domain.Token
	err := c.postForm(ctx, "auth.token", "/auth/token", form, &tok)
	return tok, err
}
