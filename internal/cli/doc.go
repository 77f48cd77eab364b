// Package cli implements the command-line interface for mma-picks.
//
// The cli package provides the Cobra-based CLI: listing and checking decision
// scores, fetching fight cards from Wikipedia and Tapology, building picks
// workbooks, validating filled-in picks, rendering the printed fight list and
// reconciling the two card sources. Output is text (tables) or JSON; logs go to
// stderr.
//
// Exit codes: 0 on success, 1 on errors, 2 when a score or picks file is invalid.
package cli
