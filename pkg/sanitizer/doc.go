// Package sanitizer normalizes user-entered form values before
// validation and persistence: whitespace folding for names and
// addresses, and Philippine mobile numbers to the local 09 format.
package sanitizer
