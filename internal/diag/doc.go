// Package diag accumulates the compiler's diagnostics.
//
// A Sink is created per compilation and injected into every stage that can
// report a problem. Each record carries a stable code (for example
// DUPLICATE_RESPONSE_KEY), a human-readable message and, when known, the
// worksheet cell it refers to. Records are stored as hcl.Diagnostics so they
// can be rendered with the same text writer HCL tooling uses, while the Sink
// also keeps the two summary flags callers consult after each stage: whether
// any error and whether any warning was recorded.
//
// Nothing in this package is global; two compilations never share a Sink.
package diag
