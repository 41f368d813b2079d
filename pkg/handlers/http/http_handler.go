package http

import "github.com/gofiber/fiber/v2"

const ErrInvalidJsonPayload = "invalid JSON payload"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Actions
	SubmitLoginHandler      Handler
	SubmitUploadHandler     Handler
	SubmitRoleChangeHandler Handler

	// Block registry
	BlockSubjectHandler   Handler
	UnblockSubjectHandler Handler
	ListBlockedHandler    Handler

	// Incidents
	ListIncidentsHandler Handler

	// Trusted pairs
	AddTrustedPairHandler    Handler
	ListTrustedPairsHandler  Handler
	RemoveTrustedPairHandler Handler

	// Notifier
	NotifierCommandHandler Handler
}
