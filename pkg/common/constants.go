package common

const (
	// LocalAddress is the normalized form for loopback and unresolvable client addresses.
	LocalAddress = "localhost"
)
