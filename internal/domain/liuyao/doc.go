// Package liuyao implements the deterministic divination calculation: four
// pillars and void branches from the timestamp, hexagram resolution and its
// four derived figures, najia line installation, the six guardians, line
// strength grading, branch relations, focus-element selection, and the final
// interpretation with its reasoning chain.
//
// Everything in this package is pure calculation over fixed tables. The same
// input always yields the same output; there is no randomness, no clock
// access, and no I/O on the calculation path. Coin simulation and
// time-derived casting exist only to collect input and sit outside the
// deterministic pipeline.
package liuyao
