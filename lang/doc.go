// Package lang parses the lines of a calculator notepad into syntax nodes.
//
// Every line parses independently into exactly one [Node]. A line is a
// function definition, an assignment, a triggered expression, or plain
// text. Parsing never fails: a triggered line that cannot be parsed becomes
// a [NodeError] carrying a [*ParseError] with the offending column.
//
// # Grammar
//
// Informal EBNF, lowest precedence first:
//
//	Line        → (Definition | Assignment | Expression)? Trigger? Comment?
//	Definition  → Name '(' (Param (',' Param)*)? ')' '=' Expression
//	Param       → Name ('=' Where)?
//	Assignment  → Name '=' Expression
//	Trigger     → '=>' <ignored text>
//	Comment     → '//' <ignored text>
//
//	Expression  → Where (',' Where)*
//	Where       → Convert ('where' Cmp Convert)*
//	Convert     → Percent (('to' | 'in') Target)*
//	Target      → '%' | Zone | UnitSpec
//	Percent     → Range ('of' | 'on' | 'off') Percent
//	            | Range 'as' 'a'? '%' (('of' | 'on' | 'off') Range)?
//	            | Range 'is' 'what' '%' ('of' | 'on' | 'off') Range
//	            | Range 'is' Range ('of' | 'on' | 'off') 'what'
//	            | Range
//	Range       → Additive ('..' Additive ('step' Additive)?)?
//	Additive    → Mul (('+' | '-') Mul)*
//	Mul         → Unary (('*' | '/' | '×' | '÷' | '·' | 'mod' | 'per')? Unary)*
//	Unary       → ('-' | '+') Unary | Power
//	Power       → Postfix (('^' | '**') Unary)?
//	Postfix     → Primary ('[' Additive ('..' Additive)? ']')*
//	Primary     → Number ('%' | ('am' | 'pm') Zone? | UnitSpec Duration*)?
//	            | Sign Number | Code Number
//	            | Date Clock? Zone? | Clock Zone?
//	            | Name '(' (Arg (',' Arg)*)? ')'
//	            | Name+ | '(' Expression ')'
//	Arg         → (Name ':')? Where
//	UnitSpec    → Unit ('^' Int)? (('/' | '*') Unit ('^' Int)?)*
//	Duration    → Number TimeUnit
//
// Names may span several words separated by spaces: "base price". Words
// that are keywords (of, on, off, as, is, to, in, where, step, per, mod)
// end a name.
//
// A digit group such as 1,000 is rejected because the comma separates list
// items; write 1000 or 1, 000.
//
// # Example
//
//	discount = 15%
//	base price = $120.50
//	discount off base price =>         // $102.425
//	trip = 1h 30m + 45 min to min =>   // 135 min
//	area(w, h = 2) = w * h
//	area(3 m) =>                       // 6 m
package lang
