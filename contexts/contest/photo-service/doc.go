// Package photoservice owns contest photo submissions, their moderation
// lifecycle, and the contest settings that gate voting and ranking
// visibility. Votes themselves live in the voting engine; this context
// notifies it through client ports when photos leave the contest.
package photoservice
