// Package score generates and validates MMA judges' decision totals.
//
// Each round is scored 10-9, 10-8 or 10-7 for either fighter under the 10-point-must
// system. A bout total is the sum of its rounds, written "A-B". The package enumerates
// every reachable total for a 3- or 5-round bout and answers whether a submitted score
// string is one of them.
package score
