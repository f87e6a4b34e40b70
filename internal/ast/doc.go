// The ast package has no runtime dependencies: every node is a plain struct
// carrying a source Position and its operands, built once by the parser. The
// semantic analyzer only reads the tree: nodes have no type or folded-value
// annotation fields, and the analyzer's per-node results are not written back
// into the AST.
package ast
