// Package text implements an owned, growable byte string.
//
// A Buffer keeps its content followed by a zero terminator, so its capacity is
// always at least Len()+1. Appending reuses spare capacity and only reallocates
// when the result would not fit.
package text
