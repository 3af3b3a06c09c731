// Package patterns holds the risk pattern catalog: an ordered, immutable list
// of case-insensitive regular expressions checked against every scanned line.
// Catalog order decides which pattern is reported when several match a line.
package patterns
