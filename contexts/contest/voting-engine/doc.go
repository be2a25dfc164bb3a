// Package votingengine owns the contest's vote ledger and the ranking
// projection derived from it. Every voter holds at most one vote; casting
// for a new target moves the existing vote instead of adding a second one.
// The ranking is always recomputable by counting vote rows, so the cached
// ordering is disposable.
package votingengine
