// Package principalservice resolves the calling identity inside the
// identity-access context.
//
// The module consumes tokens minted by the external identity provider and
// yields the (user id, role) pair the rest of the system passes explicitly
// into every core operation. It owns no user data of its own.
package principalservice
