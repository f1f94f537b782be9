package aml

import "fmt"

// Table is the parsed form of one AML byte stream (a DSDT, or the body
// of an SSDT): its top-level TermList plus the name-scope symbol table
// built up while parsing it.
type Table struct {
	Terms   []TermObj
	Context *Context
}

// Parse runs the full AML grammar over bytes, starting from a fresh
// root-scoped Context, and requires every byte to be consumed.
func Parse(bytes []byte) (*Table, error) {
	ctx := NewContext()
	in := NewInput(bytes)
	debugLog.Printf("parsing %d bytes", len(bytes))

	terms, err := parseTermList(in, ctx)
	if err != nil {
		debugLog.Printf("parse failed: %v", err)
		return nil, fmt.Errorf("aml: parse failed: %w", err)
	}

	debugLog.Printf("parsed %d top-level terms", len(terms))
	return &Table{Terms: terms, Context: ctx}, nil
}
