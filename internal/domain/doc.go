// Package domain contains the core business entities, value objects, and
// domain logic of the divination engine: the closed stem/branch/element
// enumerations, the 64-hexagram table, cast lines and their attributes, and
// the immutable result types. It represents the heart of the system,
// independent of any specific infrastructure or delivery mechanism.
package domain
