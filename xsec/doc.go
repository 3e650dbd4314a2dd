// Package xsec stores cross-section/energy samples and interpolates between them.
//
// A Table owns two parallel float32 arrays: cross-section values and the
// energies they were tabulated at. Producers append samples in ascending
// energy order with Push; consumers look samples up by index or evaluate the
// table at an arbitrary energy with Interpolate.
//
// # Sortedness
//
// Interpolate binary-searches the energy array and therefore requires it to be
// sorted ascending. The table does not check or enforce this; the result for
// unsorted input is undefined.
//
// # Failure Atomicity
//
// Growth allocates the new value array and then the new energy array. If the
// second allocation fails the first is discarded and the table keeps its
// previous arrays, so a failed Push never corrupts the table.
package xsec
