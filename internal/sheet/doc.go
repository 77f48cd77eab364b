// Package sheet reads and writes the files a user works with between commands.
//
// A picks workbook is an xlsx file with one row per bout and drop-down lists for
// the pick, method and round-format columns. Filled-in picks can also be given as
// YAML or JSON lists of rows. Cards are saved as indented JSON so that a fetched
// card can be rendered or turned into a workbook later without another download.
// Paths beginning with ~/ are expanded to the user's home directory.
package sheet
