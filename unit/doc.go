// Package unit models physical dimensions and the units that measure them.
//
// A [Dimension] is a vector of integer exponents over the base dimensions
// length, mass, time, temperature, current, currency, and count. A [Unit]
// scales a magnitude into the canonical unit of its dimension, and a
// [Compound] is a product of unit powers such as km/h or $/hour.
//
// Currency units carry no fixed factor. A [Registry] binds currency codes to
// exchange rates supplied by the caller, so conversions between currencies
// succeed only when a rate is known.
package unit
