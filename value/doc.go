// Package value implements the semantic values computed by calcpad and the
// arithmetic between them.
//
// A [Value] is a tagged union: a plain number, a currency amount, a quantity
// with a compound unit, a percentage, a calendar date, a duration, a time of
// day, a list, an error, or a residual symbolic expression. Arithmetic is
// dimension-aware: adding kilometres to miles converts, adding kilometres to
// kilograms fails with [KindIncompatibleDimensions], and dates step through
// the calendar with end-of-month clamping.
//
// Operations return explicit errors of type [*Error], each tagged with a
// [Kind]. Errors never escape as panics.
package value
