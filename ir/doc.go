// Package ir defines the intermediate representation for spvcross.
//
// A parsed SPIR-V module is an ID-addressed graph: every type, variable,
// constant, function and block is reachable through a single integer ID.
// The Module owns a dense table of tagged slots (one payload kind per ID)
// plus a parallel Meta table carrying names and decorations, which may be
// populated before the ID's defining instruction has been seen.
package ir
