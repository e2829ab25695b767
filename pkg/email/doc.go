// Package email delivers the transactional messages the auth flows depend
// on: email-verification codes and password-reset codes.
//
// Sender is the collaborator interface injected into the auth service; its
// lifecycle (client construction, shutdown) belongs to the process
// bootstrap, not to this package. Two implementations are provided:
// a Postmark-backed client for production and DevSender, which writes
// messages to disk for local development.
//
// # Usage
//
//	var cfg email.Config
//	config.MustLoad(&cfg)
//
//	sender := email.MustNewPostmarkClient(cfg)
//	err := sender.Send(ctx, email.VerificationCodeEmail("user@example.com", code))
package email
