// Package parser turns a token stream into the program AST via recursive
// descent, recovering from syntax errors with panic-mode synchronization
// (error_recovery.go) so a single malformed construct never stops the parser
// from reporting the rest of a program's diagnostics.
package parser
