// Package pyrs implements a small Python-flavoured scripting language. The
// pipeline has three stages, each of which can fail on its own:
//   - Scan turns source text into tokens, deriving Indent/Dedent markers from
//     leading whitespace.
//   - Parse builds a Program of statements by recursive descent.
//   - An Engine executes the program by walking the tree against a chain of
//     scope frames.
//
// The language has ints (128-bit), floats, strings, bools, lists and None;
// if/else, while, def/return and a print statement. Lexer and parser errors
// are accumulated into an ErrorList; runtime errors stop execution at the
// first failure.
package pyrs
