package aml_test

import (
	"testing"

	"github.com/rosgo/bringup/aml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNameAbsoluteByteConst(t *testing.T) {
	// Name(\ABCD, 0x2A)
	bytes := []byte{0x08, 0x5C, 0x41, 0x42, 0x43, 0x44, 0x0A, 0x2A}

	table, err := aml.Parse(bytes)
	require.NoError(t, err)
	require.Len(t, table.Terms, 1)

	term := table.Terms[0]
	require.Equal(t, aml.TermObjObj, term.Kind)
	require.Equal(t, aml.ObjNameSpaceModObj, term.Obj.Kind)
	require.Equal(t, aml.NameSpaceModObjName, term.Obj.NSMod.Kind)

	name := term.Obj.NSMod.Name
	assert.True(t, name.Name.Absolute)
	require.Equal(t, aml.NamePathNameSeg, name.Name.Path.Kind)
	assert.Equal(t, "ABCD", name.Name.Path.Seg.String())

	data := name.Data.Data
	require.Equal(t, aml.DataObjComputational, data.Kind)
	require.Equal(t, aml.CompDataConstInteger, data.Computational.Kind)
	assert.Equal(t, aml.ConstIntegerByte, data.Computational.ConstInteger.Kind)
	assert.Equal(t, uint64(0x2A), data.Computational.ConstInteger.Value)
}

func TestParseScopeEmptyBody(t *testing.T) {
	// Scope(\_SB_) {}
	bytes := []byte{0x10, 0x06, 0x5C, 0x5F, 0x53, 0x42, 0x5F}

	table, err := aml.Parse(bytes)
	require.NoError(t, err)
	require.Len(t, table.Terms, 1)

	term := table.Terms[0]
	require.Equal(t, aml.ObjNameSpaceModObj, term.Obj.Kind)
	require.Equal(t, aml.NameSpaceModObjScope, term.Obj.NSMod.Kind)

	scope := term.Obj.NSMod.Scope
	assert.True(t, scope.Name.Absolute)
	assert.Equal(t, "_SB_", scope.Name.Path.Seg.String())
	assert.Empty(t, scope.Terms)
}

func TestParseMethodReturningOne(t *testing.T) {
	// Method(FOO_, 0) { Return(One) }
	bytes := []byte{0x14, 0x08, 0x46, 0x4F, 0x4F, 0x5F, 0x00, 0xA4, 0x01}

	table, err := aml.Parse(bytes)
	require.NoError(t, err)
	require.Len(t, table.Terms, 1)

	term := table.Terms[0]
	require.Equal(t, aml.ObjNamedObj, term.Obj.Kind)
	require.Equal(t, aml.NamedObjMethod, term.Obj.NamedObj.Kind)

	method := term.Obj.NamedObj.Method
	assert.Equal(t, "FOO_", method.Name.Path.Seg.String())
	assert.Equal(t, 0, method.Flags.ArgCount)
	require.Len(t, method.Terms, 1)

	ret := method.Terms[0]
	require.Equal(t, aml.TermObjStatement, ret.Kind)
	require.Equal(t, aml.StatementReturn, ret.Statement.Kind)

	arg := ret.Statement.Return.Arg
	require.Equal(t, aml.TermArgDataObj, arg.Kind)
	require.Equal(t, aml.CompDataConstObj, arg.Data.Computational.Kind)
	assert.Equal(t, aml.ConstObjOne, arg.Data.Computational.ConstObj)

	args, isMethod := table.Context.MethodArgs(method.Name)
	require.True(t, isMethod)
	assert.Equal(t, 0, args)
}

func TestParseSymbolAccessAsRegisteredMethod(t *testing.T) {
	// A Method(FOO_, 0) declaration followed by a bare reference to FOO_
	// as a top-level term: since the preceding Method() registered FOO_
	// as a 0-arg method in the root scope, the reference resolves as an
	// invocation.
	declareMethod := []byte{0x14, 0x08, 0x46, 0x4F, 0x4F, 0x5F, 0x00, 0xA4, 0x01}
	reference := []byte{0x46, 0x4F, 0x4F, 0x5F}
	bytes := append(append([]byte{}, declareMethod...), reference...)

	table, err := aml.Parse(bytes)
	require.NoError(t, err)
	require.Len(t, table.Terms, 2)

	second := table.Terms[1]
	require.Equal(t, aml.TermObjExpr, second.Kind)
	require.Equal(t, aml.ExprSymbolAccess, second.Expr.Kind)
	assert.Equal(t, aml.SymbolAccessMethod, second.Expr.SymbolAccess.Kind)
	assert.Empty(t, second.Expr.SymbolAccess.Args)
}

func TestParseSymbolAccessAsBareVariable(t *testing.T) {
	// The same FOO_ bytes with no preceding method declaration resolve
	// as a plain variable reference instead.
	bytes := []byte{0x46, 0x4F, 0x4F, 0x5F}

	table, err := aml.Parse(bytes)
	require.NoError(t, err)
	require.Len(t, table.Terms, 1)

	term := table.Terms[0]
	require.Equal(t, aml.ExprSymbolAccess, term.Expr.Kind)
	assert.Equal(t, aml.SymbolAccessVariable, term.Expr.SymbolAccess.Kind)
}

func TestParseElseOutsideIfElseIsSoftError(t *testing.T) {
	// A bare ElseOp with an empty body is well-formed DefElse bytes, but
	// outside IfElse parseStatement reports it as a plain Error; nothing
	// else matches 0xA1 either, so the parse fails without any Failure.
	bytes := []byte{0xA1, 0x01}

	table, err := aml.Parse(bytes)
	require.Error(t, err)
	assert.Nil(t, table)
	var pe *aml.ParserError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, aml.KindError, pe.Kind)
}

func TestParseTruncatedElseDowngradesToErrorAndFallsThrough(t *testing.T) {
	// ElseOp matches but the table ends before a PkgLength byte:
	// parseElseInner's internal Failure is downgraded to a plain Error
	// so parseStatement's caller can still try Expr, but nothing else
	// matches 0xA1 either, so the overall parse still fails.
	bytes := []byte{0xA1}

	_, err := aml.Parse(bytes)
	require.Error(t, err)
	var pe *aml.ParserError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, aml.KindError, pe.Kind)
}

func TestParseTruncatedMethodIsCommittedFailure(t *testing.T) {
	// MethodOp matched, but the table ends mid-PkgLength.
	bytes := []byte{0x14}

	_, err := aml.Parse(bytes)
	require.Error(t, err)
	var pe *aml.ParserError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, aml.KindFailure, pe.Kind)
}

func TestParseIfElseWithElseBranch(t *testing.T) {
	// If (One) { Return (One) } Else { Return (Zero) }
	ifBody := []byte{0x01, 0xA4, 0x01}
	elseBody := []byte{0xA4, 0x00}

	bytes := []byte{0xA0, byte(len(ifBody) + 1)}
	bytes = append(bytes, ifBody...)
	bytes = append(bytes, 0xA1, byte(len(elseBody)+1))
	bytes = append(bytes, elseBody...)

	table, err := aml.Parse(bytes)
	require.NoError(t, err)
	require.Len(t, table.Terms, 1)

	stmt := table.Terms[0].Statement
	require.Equal(t, aml.StatementIfElse, stmt.Kind)
	require.NotNil(t, stmt.IfElse.Else)
	require.Len(t, stmt.IfElse.Else.Terms, 1)
}

func TestParseAddExpression(t *testing.T) {
	// Add(One, One, Local0)
	bytes := []byte{0x72, 0x01, 0x01, 0x60}

	table, err := aml.Parse(bytes)
	require.NoError(t, err)
	require.Len(t, table.Terms, 1)

	term := table.Terms[0]
	require.Equal(t, aml.TermObjExpr, term.Kind)
	require.Equal(t, aml.ExprInteger, term.Expr.Kind)
	assert.Equal(t, aml.IntegerAdd, term.Expr.Integer.Kind)
}

func TestParseStoreIntoLocal(t *testing.T) {
	// Store(One, Local0)
	bytes := []byte{0x70, 0x01, 0x60}

	table, err := aml.Parse(bytes)
	require.NoError(t, err)
	require.Len(t, table.Terms, 1)

	term := table.Terms[0]
	require.Equal(t, aml.ExprStore, term.Expr.Kind)
	assert.Equal(t, aml.SuperNameSimple, term.Expr.Store.Name.Kind)
}

func TestParseLNotEqual(t *testing.T) {
	// LNotEqual(One, Zero) -- encoded as LNot, LEqual
	bytes := []byte{0x92, 0x93, 0x01, 0x00}

	table, err := aml.Parse(bytes)
	require.NoError(t, err)
	require.Len(t, table.Terms, 1)

	term := table.Terms[0]
	require.Equal(t, aml.ExprLogical, term.Expr.Kind)
	assert.Equal(t, aml.LogicalNotEqual, term.Expr.Logical.Kind)
}
