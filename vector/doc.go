// Package vector implements a growable float32 vector.
//
// Besides appending, a Vector supports insertion and removal at the front and
// at arbitrary positions; both shift the elements behind the position by one
// slot. Failed pops and lookups return Invalid together with an error.
package vector
