// Package gateways declares the outbound collaborators of the core services
// that are not repositories.
package gateways

import "context"

// PasswordHasher turns plaintext passwords into stored digests and checks them.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Matches(digest, plaintext string) bool
}

// VerificationMailer requests delivery of an email verification message.
type VerificationMailer interface {
	SendVerification(ctx context.Context, email, verificationCode string) error
}
