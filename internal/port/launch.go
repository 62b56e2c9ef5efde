package port

import "context"

// ExchangeClient calls the source application's token exchange
// endpoint on behalf of an authenticated session.
type ExchangeClient interface {
	ExchangeToken(ctx context.Context, idToken, targetApp string) (string, error)
}

// Navigator opens a URL in a new browsing context.
type Navigator interface {
	OpenURL(ctx context.Context, url string) error
}
