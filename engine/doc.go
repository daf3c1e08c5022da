// Package engine evaluates calculator documents.
//
// A document is a sequence of lines. [Engine.Evaluate] parses every line
// with package lang and runs one full pass in document order: function
// definitions register as they are reached, assignments bind names, and
// each line ending in a trigger ("=>") yields a [Descriptor] holding the
// formatted result or a "Kind: message" error.
//
// Every pass starts from an empty store. A line that fails leaves its name
// unbound, so every later line that reads the name fails with
// UndefinedVariable in the same pass.
//
// Lines are handed to the first evaluator of a fixed chain that claims
// them: percentage phrases, unit expressions, combined assignments, plain
// assignments, bare expressions, parse errors, and finally plain text.
//
// User functions see their arguments, then the arguments of their callers,
// then the bindings in effect at the call. They shadow builtins of the
// same name, and calls nest at most [Config].MaxCallDepth deep.
//
// Exchange rates are configured as expressions in the base currency and
// may reference other codes:
//
//	rates:
//	  EUR: "1.08"
//	  GBP: "EUR * 1.17"
//	  JPY: "1 / 150"
package engine
