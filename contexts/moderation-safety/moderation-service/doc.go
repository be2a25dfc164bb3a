// Package moderationservice presents one moderation queue over both
// resource kinds. It owns no resource state: queue rows project from the
// owning contexts, and decisions dispatch back to them through client ports.
package moderationservice
