// Package growth implements the capacity growth law shared by all containers.
//
// # Growth Law
//
// Capacity doubles while it is below Threshold and grows by Increment once it
// reaches it. An empty container starts from MinStart, so its first growth
// yields 2*MinStart:
//
//	0 -> 32 -> 64 -> ... -> 1 MiB -> 2 MiB -> 3 MiB -> ...
//
// # Byte Accounting
//
// Bytes converts element counts into overflow-checked byte counts used to
// reserve memory from a resource.Controller.
package growth
