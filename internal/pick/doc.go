// Package pick collects and validates predicted fight outcomes.
//
// An Entry is one raw row of a picks sheet. Collect trims and checks every row,
// returning the export records together with human-readable issues. Decision picks
// are checked against the score package's set of reachable totals.
package pick
