package aml

// downgrade converts a committed Failure back into a backtrackable
// Error, preserving its span and message. Used only for the standalone
// top-level Else alternative below.
func downgrade(err error) error {
	pe, ok := err.(*ParserError)
	if !ok {
		return err
	}
	return newError(pe.Span, pe.Msg)
}

type Break struct{}

func parseBreak(in Input) (Break, Input, error) {
	rest, err := item(in, opBreak)
	if err != nil {
		return Break{}, Input{}, err
	}
	return Break{}, rest, nil
}

type BreakPoint struct{}

func parseBreakPoint(in Input) (BreakPoint, Input, error) {
	rest, err := item(in, opBreakPoint)
	if err != nil {
		return BreakPoint{}, Input{}, err
	}
	return BreakPoint{}, rest, nil
}

type Continue struct{}

func parseContinue(in Input) (Continue, Input, error) {
	rest, err := item(in, opContinue)
	if err != nil {
		return Continue{}, Input{}, err
	}
	return Continue{}, rest, nil
}

type Noop struct{}

func parseNoop(in Input) (Noop, Input, error) {
	rest, err := item(in, opNoop)
	if err != nil {
		return Noop{}, Input{}, err
	}
	return Noop{}, rest, nil
}

// Else is the tail half of an IfElse: only ever produced by IfElse's own
// parsing of its trailing ElseOp, never as a free-standing Statement. A
// bare ElseOp encountered elsewhere in a TermList is malformed AML, but
// is reported as a soft Error (see parseStatement) so the surrounding
// alternation can recover instead of aborting the whole table.
type Else struct {
	Terms []TermObj
}

// parseElseInner parses the DefElse production (ElseOp PkgLength
// TermList) as IfElse calls it: committed once ElseOp has matched.
func parseElseInner(in Input, ctx *Context) (Else, Input, error) {
	rest, err := item(in, opElse)
	if err != nil {
		return Else{}, Input{}, err
	}

	inner, outer, err := pkg(rest)
	if err != nil {
		return Else{}, Input{}, fail(err)
	}
	terms, err := parseTermList(inner, ctx)
	if err != nil {
		return Else{}, Input{}, fail(err)
	}
	return Else{Terms: terms}, outer, nil
}

type IfElse struct {
	Predicate TermArg
	Terms     []TermObj
	Else      *Else
}

func parseIfElse(in Input, ctx *Context) (IfElse, Input, error) {
	rest, err := item(in, opIf)
	if err != nil {
		return IfElse{}, Input{}, err
	}

	inner, outer, err := pkg(rest)
	if err != nil {
		return IfElse{}, Input{}, fail(err)
	}

	predicate, inner, err := parseTermArg(inner, ctx)
	if err != nil {
		return IfElse{}, Input{}, fail(err)
	}
	terms, err := parseTermList(inner, ctx)
	if err != nil {
		return IfElse{}, Input{}, fail(err)
	}

	var elseBranch *Else
	if elseStmt, next, err := parseElseInner(outer, ctx); err == nil {
		elseBranch = &elseStmt
		outer = next
	} else if isFailure(err) {
		return IfElse{}, Input{}, err
	}

	return IfElse{Predicate: predicate, Terms: terms, Else: elseBranch}, outer, nil
}

type While struct {
	Predicate TermArg
	Terms     []TermObj
}

func parseWhile(in Input, ctx *Context) (While, Input, error) {
	rest, err := item(in, opWhile)
	if err != nil {
		return While{}, Input{}, err
	}

	inner, outer, err := pkg(rest)
	if err != nil {
		return While{}, Input{}, fail(err)
	}
	predicate, inner, err := parseTermArg(inner, ctx)
	if err != nil {
		return While{}, Input{}, fail(err)
	}
	terms, err := parseTermList(inner, ctx)
	if err != nil {
		return While{}, Input{}, fail(err)
	}
	return While{Predicate: predicate, Terms: terms}, outer, nil
}

type Return struct {
	Arg TermArg
}

func parseReturn(in Input, ctx *Context) (Return, Input, error) {
	rest, err := item(in, opReturn)
	if err != nil {
		return Return{}, Input{}, err
	}
	arg, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Return{}, Input{}, fail(err)
	}
	return Return{Arg: arg}, rest, nil
}

type Notify struct {
	Obj   SuperName
	Value TermArg
}

func parseNotify(in Input, ctx *Context) (Notify, Input, error) {
	rest, err := item(in, opNotify)
	if err != nil {
		return Notify{}, Input{}, err
	}
	obj, rest, err := parseSuperName(rest, ctx)
	if err != nil {
		return Notify{}, Input{}, fail(err)
	}
	value, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Notify{}, Input{}, fail(err)
	}
	return Notify{Obj: obj, Value: value}, rest, nil
}

type Release struct {
	Mutex SuperName
}

func parseRelease(in Input, ctx *Context) (Release, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extRelease)
	if err != nil {
		return Release{}, Input{}, err
	}
	mutex, rest, err := parseSuperName(rest, ctx)
	if err != nil {
		return Release{}, Input{}, fail(err)
	}
	return Release{Mutex: mutex}, rest, nil
}

type Reset struct {
	Event SuperName
}

func parseReset(in Input, ctx *Context) (Reset, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extReset)
	if err != nil {
		return Reset{}, Input{}, err
	}
	event, rest, err := parseSuperName(rest, ctx)
	if err != nil {
		return Reset{}, Input{}, fail(err)
	}
	return Reset{Event: event}, rest, nil
}

type Signal struct {
	Event SuperName
}

func parseSignal(in Input, ctx *Context) (Signal, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extSignal)
	if err != nil {
		return Signal{}, Input{}, err
	}
	event, rest, err := parseSuperName(rest, ctx)
	if err != nil {
		return Signal{}, Input{}, fail(err)
	}
	return Signal{Event: event}, rest, nil
}

type Sleep struct {
	Msec TermArg
}

func parseSleep(in Input, ctx *Context) (Sleep, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extSleep)
	if err != nil {
		return Sleep{}, Input{}, err
	}
	msec, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Sleep{}, Input{}, fail(err)
	}
	return Sleep{Msec: msec}, rest, nil
}

type Stall struct {
	Usec TermArg
}

func parseStall(in Input, ctx *Context) (Stall, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extStall)
	if err != nil {
		return Stall{}, Input{}, err
	}
	usec, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Stall{}, Input{}, fail(err)
	}
	return Stall{Usec: usec}, rest, nil
}

type Fatal struct {
	Type byte
	Code uint32
	Arg  TermArg
}

func parseFatal(in Input, ctx *Context) (Fatal, Input, error) {
	rest, err := itemPair(in, opExtPrefix, extFatal)
	if err != nil {
		return Fatal{}, Input{}, err
	}
	typ, rest, err := byteData(rest)
	if err != nil {
		return Fatal{}, Input{}, fail(err)
	}
	code, rest, err := dwordData(rest)
	if err != nil {
		return Fatal{}, Input{}, fail(err)
	}
	arg, rest, err := parseTermArg(rest, ctx)
	if err != nil {
		return Fatal{}, Input{}, fail(err)
	}
	return Fatal{Type: typ, Code: code, Arg: arg}, rest, nil
}

// StatementKind discriminates Statement's variants.
type StatementKind int

const (
	StatementBreak StatementKind = iota
	StatementBreakPoint
	StatementContinue
	StatementElse
	StatementFatal
	StatementIfElse
	StatementNoop
	StatementNotify
	StatementRelease
	StatementReset
	StatementReturn
	StatementSignal
	StatementSleep
	StatementStall
	StatementWhile
)

// Statement is an AML control or side-effecting statement.
type Statement struct {
	Kind       StatementKind
	Break      Break
	BreakPoint BreakPoint
	Continue   Continue
	Else       Else
	Fatal      Fatal
	IfElse     IfElse
	Noop       Noop
	Notify     Notify
	Release    Release
	Reset      Reset
	Return     Return
	Signal     Signal
	Sleep      Sleep
	Stall      Stall
	While      While
}

func parseStatement(in Input, ctx *Context) (Statement, Input, error) {
	if v, rest, err := parseBreak(in); err == nil {
		return Statement{Kind: StatementBreak, Break: v}, rest, nil
	}
	if v, rest, err := parseBreakPoint(in); err == nil {
		return Statement{Kind: StatementBreakPoint, BreakPoint: v}, rest, nil
	}
	if v, rest, err := parseContinue(in); err == nil {
		return Statement{Kind: StatementContinue, Continue: v}, rest, nil
	}

	// A standalone Else outside IfElse is malformed, but reported as a
	// soft Error rather than the committed Failure parseElseInner would
	// normally raise once ElseOp matches (and also when its body parses
	// cleanly), so TermObj can fall through to Expr instead of aborting
	// the whole TermList.
	if _, _, err := parseElseInner(in, ctx); err == nil {
		return Statement{}, Input{}, newError(in.Span, "Else outside IfElse")
	} else if isFailure(err) {
		return Statement{}, Input{}, downgrade(err)
	}

	if v, rest, err := parseFatal(in, ctx); err == nil {
		return Statement{Kind: StatementFatal, Fatal: v}, rest, nil
	} else if isFailure(err) {
		return Statement{}, Input{}, err
	}

	if v, rest, err := parseIfElse(in, ctx); err == nil {
		return Statement{Kind: StatementIfElse, IfElse: v}, rest, nil
	} else if isFailure(err) {
		return Statement{}, Input{}, err
	}

	if v, rest, err := parseNoop(in); err == nil {
		return Statement{Kind: StatementNoop, Noop: v}, rest, nil
	}

	if v, rest, err := parseNotify(in, ctx); err == nil {
		return Statement{Kind: StatementNotify, Notify: v}, rest, nil
	} else if isFailure(err) {
		return Statement{}, Input{}, err
	}

	if v, rest, err := parseRelease(in, ctx); err == nil {
		return Statement{Kind: StatementRelease, Release: v}, rest, nil
	} else if isFailure(err) {
		return Statement{}, Input{}, err
	}

	if v, rest, err := parseReset(in, ctx); err == nil {
		return Statement{Kind: StatementReset, Reset: v}, rest, nil
	} else if isFailure(err) {
		return Statement{}, Input{}, err
	}

	if v, rest, err := parseReturn(in, ctx); err == nil {
		return Statement{Kind: StatementReturn, Return: v}, rest, nil
	} else if isFailure(err) {
		return Statement{}, Input{}, err
	}

	if v, rest, err := parseSignal(in, ctx); err == nil {
		return Statement{Kind: StatementSignal, Signal: v}, rest, nil
	} else if isFailure(err) {
		return Statement{}, Input{}, err
	}

	if v, rest, err := parseSleep(in, ctx); err == nil {
		return Statement{Kind: StatementSleep, Sleep: v}, rest, nil
	} else if isFailure(err) {
		return Statement{}, Input{}, err
	}

	if v, rest, err := parseStall(in, ctx); err == nil {
		return Statement{Kind: StatementStall, Stall: v}, rest, nil
	} else if isFailure(err) {
		return Statement{}, Input{}, err
	}

	v, rest, err := parseWhile(in, ctx)
	if err != nil {
		return Statement{}, Input{}, err
	}
	return Statement{Kind: StatementWhile, While: v}, rest, nil
}
