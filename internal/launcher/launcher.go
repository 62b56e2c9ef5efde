package launcher

import (
	"context"
	"net/url"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"crossgate/internal/domain"
	"crossgate/internal/port"
)

// Launcher is the session bootstrap client: given the current
// session's identity token it obtains a cross-app token from the
// source application and opens the target's redemption URL in a new
// browsing context.
type Launcher struct {
	targetBase string
	targetApp  string
	client     port.ExchangeClient
	navigator  port.Navigator
	logger     *zap.Logger
	inFlight   atomic.Bool
}

// NewLauncher creates a Launcher. A single trailing slash on the
// target base URL is stripped so the constructed redemption URL never
// carries a doubled separator. An empty base URL is allowed here;
// Launch then refuses to run with a visible configuration error.
func NewLauncher(targetBaseURL, targetApp string, client port.ExchangeClient, navigator port.Navigator, logger *zap.Logger) *Launcher {
	return &Launcher{
		targetBase: strings.TrimSuffix(targetBaseURL, "/"),
		targetApp:  targetApp,
		client:     client,
		navigator:  navigator,
		logger:     logger,
	}
}

// Launch runs the handshake once: exchange the identity token, build
// the redemption URL, navigate. It returns the URL it opened. Each
// invocation mints a fresh cross-app token, so a failed attempt can
// simply be retried. Overlapping invocations are refused; a prior
// attempt must finish first.
func (l *Launcher) Launch(ctx context.Context, idToken string) (string, error) {
	if l.targetBase == "" {
		return "", domain.ErrTargetNotConfigured
	}

	if !l.inFlight.CompareAndSwap(false, true) {
		return "", domain.ErrLaunchInFlight
	}
	defer l.inFlight.Store(false)

	customToken, err := l.client.ExchangeToken(ctx, idToken, l.targetApp)
	if err != nil {
		l.logger.Error("token exchange failed",
			zap.String("target_app", l.targetApp),
			zap.Error(err),
		)
		return "", domain.ErrLaunchFailed
	}

	ssoURL := l.targetBase + "/sso?token=" + url.QueryEscape(customToken)

	if err := l.navigator.OpenURL(ctx, ssoURL); err != nil {
		l.logger.Error("opening redemption url failed", zap.Error(err))
		return "", domain.ErrLaunchFailed
	}

	return ssoURL, nil
}
