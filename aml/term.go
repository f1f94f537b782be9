package aml

// SymbolAccessKind discriminates a name reference from a method
// invocation.
type SymbolAccessKind int

const (
	SymbolAccessVariable SymbolAccessKind = iota
	SymbolAccessMethod
)

// SymbolAccess is a bare name reference, resolved at parse time against
// Context's method table: if the name was previously declared with
// Method(), it consumes the declared number of TermArgs as invocation
// arguments; otherwise it's a plain variable reference.
type SymbolAccess struct {
	Kind   SymbolAccessKind
	Name   NameString
	Args   []TermArg
}

func parseSymbolAccess(in Input, ctx *Context) (SymbolAccess, Input, error) {
	name, rest, err := parseNameString(in)
	if err != nil {
		return SymbolAccess{}, Input{}, err
	}

	argCount, isMethod := ctx.MethodArgs(name)
	if !isMethod {
		return SymbolAccess{Kind: SymbolAccessVariable, Name: name}, rest, nil
	}

	args := make([]TermArg, 0, argCount)
	for i := 0; i < argCount; i++ {
		var arg TermArg
		arg, rest, err = parseTermArg(rest, ctx)
		if err != nil {
			return SymbolAccess{}, Input{}, fail(err)
		}
		args = append(args, arg)
	}
	return SymbolAccess{Kind: SymbolAccessMethod, Name: name, Args: args}, rest, nil
}

// ObjKind discriminates Obj's variants.
type ObjKind int

const (
	ObjNameSpaceModObj ObjKind = iota
	ObjNamedObj
)

// Obj is a NameSpaceModObj (Alias/Name/Scope) or a NamedObj (Device,
// Method, Field, ...).
type Obj struct {
	Kind      ObjKind
	NSMod     NameSpaceModObj
	NamedObj  NamedObj
}

func parseObj(in Input, ctx *Context) (Obj, Input, error) {
	if nsmod, rest, err := parseNameSpaceModObj(in, ctx); err == nil {
		return Obj{Kind: ObjNameSpaceModObj, NSMod: nsmod}, rest, nil
	} else if isFailure(err) {
		return Obj{}, Input{}, err
	}

	named, rest, err := parseNamedObj(in, ctx)
	if err != nil {
		return Obj{}, Input{}, err
	}
	return Obj{Kind: ObjNamedObj, NamedObj: named}, rest, nil
}

// TermArgKind discriminates TermArg's variants.
type TermArgKind int

const (
	TermArgArgObj TermArgKind = iota
	TermArgLocalObj
	TermArgDataObj
	TermArgExpr
)

// TermArg is one operand position: a stored argument/local, a literal
// data object, or a nested expression producing a value.
type TermArg struct {
	Kind   TermArgKind
	Arg    ArgObj
	Loc    LocalObj
	Data   *DataObj
	Expr   *Expr
}

func parseTermArg(in Input, ctx *Context) (TermArg, Input, error) {
	if arg, rest, err := parseArgObj(in); err == nil {
		return TermArg{Kind: TermArgArgObj, Arg: arg}, rest, nil
	} else if isFailure(err) {
		return TermArg{}, Input{}, err
	}
	if loc, rest, err := parseLocalObj(in); err == nil {
		return TermArg{Kind: TermArgLocalObj, Loc: loc}, rest, nil
	} else if isFailure(err) {
		return TermArg{}, Input{}, err
	}
	if data, rest, err := parseDataObj(in, ctx); err == nil {
		return TermArg{Kind: TermArgDataObj, Data: &data}, rest, nil
	} else if isFailure(err) {
		return TermArg{}, Input{}, err
	}

	expr, rest, err := parseExpr(in, ctx)
	if err != nil {
		return TermArg{}, Input{}, err
	}
	return TermArg{Kind: TermArgExpr, Expr: expr}, rest, nil
}

// TermObjKind discriminates TermObj's variants.
type TermObjKind int

const (
	TermObjObj TermObjKind = iota
	TermObjStatement
	TermObjExpr
)

// TermObj is one element of a TermList: a declaration (Obj), a control
// statement, or a bare expression evaluated for its side effect.
type TermObj struct {
	Kind      TermObjKind
	Obj       Obj
	Statement Statement
	Expr      *Expr
}

func parseTermObj(in Input, ctx *Context) (TermObj, Input, error) {
	if obj, rest, err := parseObj(in, ctx); err == nil {
		return TermObj{Kind: TermObjObj, Obj: obj}, rest, nil
	} else if isFailure(err) {
		return TermObj{}, Input{}, err
	}

	if stmt, rest, err := parseStatement(in, ctx); err == nil {
		return TermObj{Kind: TermObjStatement, Statement: stmt}, rest, nil
	} else if isFailure(err) {
		return TermObj{}, Input{}, err
	}

	expr, rest, err := parseExpr(in, ctx)
	if err != nil {
		return TermObj{}, Input{}, err
	}
	return TermObj{Kind: TermObjExpr, Expr: expr}, rest, nil
}

// parseTermList parses TermObjs until in is exhausted, used for bodies
// already bounded by a pkg() sub-Input.
func parseTermList(in Input, ctx *Context) ([]TermObj, error) {
	var terms []TermObj
	rest := in
	for len(rest.Bytes) != 0 {
		term, next, err := parseTermObj(rest, ctx)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
		rest = next
	}
	return terms, nil
}
