// Package card models an event's fight card and the list views built from it.
//
// Cards come from the scrapers as ordered fighter pairs, main event first. Preload
// turns them into the picks order (prelims first, main event last and five rounds),
// Render lays them out in the fixed-size output list, and Reconcile lines up the
// same card scraped from two different sites.
package card
