package domain

import "errors"

var (
	ErrInvalidToken        = errors.New("identity token is invalid")
	ErrMintFailed          = errors.New("minting cross-app token failed")
	ErrMissingToken        = errors.New("sso token is missing")
	ErrRedemptionFailed    = errors.New("cross-app token redemption failed")
	ErrTokenConsumed       = errors.New("cross-app token already consumed")
	ErrProviderConfig      = errors.New("identity provider configuration is incomplete")
	ErrTargetNotConfigured = errors.New("target application URL is not configured")
	ErrLaunchInFlight      = errors.New("a launch attempt is already in flight")
	ErrLaunchFailed        = errors.New("unable to generate sso token")
	ErrUnauthorized        = errors.New("unauthorized")
)
