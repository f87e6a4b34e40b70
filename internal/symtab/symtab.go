// Package symtab implements the bucketed-hash symbol table from spec §3: a
// fixed-width hash table (default 100 buckets, hash = sum of code points mod
// N) with chained buckets, plus an insertion-ordered vector for deterministic
// reporting (spec §5's determinism contract).
package symtab

import (
	"sort"

	"github.com/maruel/natural"
)

// Type is the closed set of value types this language supports.
type Type int

const (
	Int Type = iota
	Float
	Bool
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	default:
		return "?"
	}
}

// Symbol is one declared identifier (spec §3).
type Symbol struct {
	Name        string
	Type        Type
	DeclLine    int
	DeclColumn  int
	Initialized bool
	Used        bool
	Value       any // nil, or a folded int64/float64/bool/"<input>"
	Register    int // hash bucket index
	UseLines    []int
}

// DefaultBuckets is the spec's hard-coded bucket count.
const DefaultBuckets = 100

// Table is the bucketed symbol table.
type Table struct {
	buckets   [][]*Symbol
	order     []*Symbol // insertion order, for deterministic reporting
	bucketCap int
}

// New creates a Table with the given bucket count (spec §9: "make [VM memory
// size] a parameter" generalizes to making the bucket count configurable
// too; default is spec's 100).
func New(buckets int) *Table {
	if buckets <= 0 {
		buckets = DefaultBuckets
	}
	return &Table{buckets: make([][]*Symbol, buckets), bucketCap: buckets}
}

// hash sums the code points of name, mod the bucket count (spec §3).
func (t *Table) hash(name string) int {
	sum := 0
	for _, r := range name {
		sum += int(r)
	}
	return sum % t.bucketCap
}

// Lookup finds a symbol by name, or returns (nil, false).
func (t *Table) Lookup(name string) (*Symbol, bool) {
	bucket := t.hash(name)
	for _, sym := range t.buckets[bucket] {
		if sym.Name == name {
			return sym, true
		}
	}
	return nil, false
}

// Insert adds a new symbol if name is not already declared. It returns the
// symbol (new or pre-existing) and whether it was newly inserted.
func (t *Table) Insert(name string, typ Type, line, column int) (*Symbol, bool) {
	if existing, ok := t.Lookup(name); ok {
		return existing, false
	}
	bucket := t.hash(name)
	sym := &Symbol{
		Name:       name,
		Type:       typ,
		DeclLine:   line,
		DeclColumn: column,
		Register:   bucket,
		UseLines:   []int{line}, // the declaration line itself counts (spec §8 scenario 1)
	}
	t.buckets[bucket] = append(t.buckets[bucket], sym)
	t.order = append(t.order, sym)
	return sym, true
}

// MarkUsed records a use of name at line, appending line to UseLines.
func (t *Table) MarkUsed(name string, line int) {
	sym, ok := t.Lookup(name)
	if !ok {
		return
	}
	sym.Used = true
	sym.UseLines = append(sym.UseLines, line)
}

// MarkInitialized records that name now holds value (folded literal,
// "<input>" for cin-read variables, or nil when the value can't be folded).
func (t *Table) MarkInitialized(name string, value any) {
	sym, ok := t.Lookup(name)
	if !ok {
		return
	}
	sym.Initialized = true
	sym.Value = value
}

// All returns every symbol in declaration (insertion) order.
func (t *Table) All() []*Symbol {
	return t.order
}

// ReportRow is one line of the presentation-only symbol report (spec §6):
// the sequential Index is NOT part of Symbol — the original implementation
// keeps it as a separate report-only counter distinct from the hash-bucket
// Register (see SPEC_FULL.md "Symbol table register vs. report ordering").
type ReportRow struct {
	Index      int
	Identifier string
	Register   int
	Value      any
	DataType   Type
	Scope      string
	UseLines   []int
}

// Report builds the symbol report sorted by identifier using natural order
// (so x2 sorts before x10), per spec §6's "Symbol report columns".
func Report(t *Table) []ReportRow {
	symbols := append([]*Symbol(nil), t.order...)
	sort.Slice(symbols, func(i, j int) bool {
		return natural.Less(symbols[i].Name, symbols[j].Name)
	})

	rows := make([]ReportRow, len(symbols))
	for i, sym := range symbols {
		lines := append([]int(nil), sym.UseLines...)
		sort.Ints(lines)
		rows[i] = ReportRow{
			Index:      i,
			Identifier: sym.Name,
			Register:   sym.Register,
			Value:      sym.Value,
			DataType:   sym.Type,
			Scope:      "Global",
			UseLines:   lines,
		}
	}
	return rows
}
