// Package cli is the command-line interface of calcpad.
//
// # Usage
//
//	calcpad [flags] [eval] [FILE|-]...
//	calcpad repl [FILE|-]...
//	calcpad units [DIMENSION]
//	calcpad init [--force]
//
// Eval is the default command: with no arguments it reads a document from
// standard input. Documents named on the command line are looked up in the
// working directory, then in each directory of $CALCPAD_PATH, then in the
// docs directory under the configuration directory.
//
// # Configuration
//
// Every flag may be set in ~/.config/calcpad/config.yaml (the platform's
// user configuration directory). Keys are the flag names in camelCase,
// kebab-case or snake_case. Exchange rates are a mapping from currency code
// to an expression in the base currency:
//
//	logLevel: debug
//	baseCurrency: USD
//	decimalPlaces: 2
//	dateDisplayFormat: locale
//	dateLocale: de-DE
//	rates:
//	  EUR: 1.08
//	  GBP: EUR * 1.17
//
// Flags on the command line override the file. calcpad init writes the
// current flag values to it.
//
// # Profiling
//
// Built with the pprof tag, --pprof-mode and --pprof-dir enable runtime
// profiling; see package profile.
package cli
