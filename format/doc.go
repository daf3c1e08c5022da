// Package format renders semantic values as display text.
//
// Numbers print in fixed notation rounded to a configured number of decimal
// places, switching to scientific notation outside a magnitude window.
// Numbers are never digit-grouped, since a comma separates list items.
package format
