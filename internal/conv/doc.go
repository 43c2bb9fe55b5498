// Package conv provides bounds-checked integer conversions for values read
// from untrusted headers.
package conv
