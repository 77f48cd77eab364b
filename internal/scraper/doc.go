// Package scraper loads UFC fight cards from Wikipedia and Tapology.
//
// Wikipedia cards come from the MediaWiki parse API: the "Fight card" section of an
// event page is fetched as HTML and fighter pairs are read from its result tables,
// with a "Name vs. Name" text scan as a fallback. The newest scheduled event is the
// last row of the Scheduled events table on the List of UFC events page.
//
// Tapology cards come from the fight center listing: the first upcoming event is
// opened and its bout list is parsed, including the scheduled round count. Pages can
// be fetched through a proxy prefix when direct access is blocked.
//
// Scraping is best effort. Failures are returned as errors and summarized by Load as
// a single status line.
package scraper
