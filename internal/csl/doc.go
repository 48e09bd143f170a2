// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package csl is the semantic model of the constraint specification language
// (CSL). A CSL program describes an empirical-tuning search space: named
// tunable parameters, the code regions they are wired into, and the
// constraints that restrict which parameter combinations are legal.
//
// # Core Concepts
//
//   - Parameter: a named, typed tunable. It owns an optional value Domain, an
//     optional DefaultVal and an optional RegionSet.
//
//   - Domain: the enumerated legal values of a parameter. The union is sealed;
//     IntDomain and FloatDomain are the only variants.
//
//   - Reference: the identity of a name used inside a constraint body, either a
//     whole parameter or a parameter instantiated for one code region. Its
//     canonical key is computed once and is the only thing equality looks at.
//
//   - Constraint: a named predicate. Its arguments are the set of References
//     its body uses.
//
//   - Specification: the ordered constraints of one search space plus the
//     deduplicated union of their arguments, which becomes the signature of
//     the generated legality predicate.
//
//   - Program: everything a front end produced from one source file.
//
// Nothing in this package knows about target languages. Skins receive these
// entities as opaque values and decide formatting themselves.
//
// Ordering is part of the contract. Every collection in this package
// iterates in first-seen insertion order so that code generated from the same
// source is byte-for-byte reproducible.
package csl
