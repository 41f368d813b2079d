package common

type ContextKey string

const (
	// ClientAddressContextKey carries the resolved client address for the request.
	ClientAddressContextKey ContextKey = "client_address"
	// ActorContextKey carries the authenticated operator identity, when present.
	ActorContextKey ContextKey = "actor"
)
