// Package space enumerates the points of a search space in-process. It
// evaluates every constraint body over the cartesian product of the
// specification's arguments, which is what the generated harness does with
// getSolutions(), and reports how many points are legal.
package space
