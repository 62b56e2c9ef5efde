package domain

// RedemptionState enumerates the states of the SSO redemption flow.
type RedemptionState string

const (
	RedemptionInitializing         RedemptionState = "initializing"
	RedemptionRedeeming            RedemptionState = "redeeming"
	RedemptionAlreadyAuthenticated RedemptionState = "already_authenticated"
	RedemptionFailed               RedemptionState = "failed"
	RedemptionDone                 RedemptionState = "done"
)

// AuditKind enumerates recorded handshake events.
type AuditKind string

const (
	AuditTokenMinted      AuditKind = "token_minted"
	AuditTokenRedeemed    AuditKind = "token_redeemed"
	AuditRedemptionFailed AuditKind = "redemption_failed"
	AuditExchangeRejected AuditKind = "exchange_rejected"
)
