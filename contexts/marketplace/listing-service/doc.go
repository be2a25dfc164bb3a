// Package listingservice implements the clothing marketplace inside the
// marketplace context.
//
// The module owns the listing moderation lifecycle (pending, approved,
// rejected, reserved, closed), the single-slot reservation ledger whose
// exclusivity the persistence layer arbitrates, favorites, and the
// browse/search read side. Lifecycle changes are published through
// outbox-backed workers.
package listingservice
