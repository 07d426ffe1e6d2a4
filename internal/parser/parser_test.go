package parser

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/hassan/minilang/internal/diag"
	"github.com/hassan/minilang/internal/lexer"
	"github.com/hassan/minilang/internal/parser/ast"
	"github.com/hassan/minilang/internal/symtab"
	"github.com/hassan/minilang/internal/types"
)

// analyze runs the full front-end over src and returns the tree, the
// symbol table, and the diagnostics.
func analyze(t *testing.T, src string) (*ast.Program, *symtab.Table, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag()
	p := New(lexer.New(src, "test.mini"), bag)
	program := p.ParseProgram()
	return program, p.Table(), bag
}

// analyzeOK fails the test if src produces any error.
func analyzeOK(t *testing.T, src string) (*ast.Program, *symtab.Table) {
	t.Helper()
	program, table, bag := analyze(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors:\n%s", diag.NewRenderer(false).RenderAll(bag))
	}
	return program, table
}

// errorCodes extracts the codes of all error-severity diagnostics.
func errorCodes(bag *diag.Bag) []diag.Code {
	var codes []diag.Code
	for _, d := range bag.Errors() {
		codes = append(codes, d.Code)
	}
	return codes
}

func TestParse_DeclarationsProduceNoNodes(t *testing.T) {
	program, table := analyzeOK(t, "int x, y; double z; x = 1; y = 2; z = .5;")

	// Three assignments, zero declaration nodes.
	be.Equal(t, len(program.Statements), 3)
	for _, stmt := range program.Statements {
		_, ok := stmt.(*ast.Assign)
		be.True(t, ok)
	}
	// The declarations' whole effect is in the symbol table.
	be.Equal(t, len(table.Global().Symbols()), 3)
}

// Every expression in an error-free program carries a real type.
func TestParse_WellTypedProgramIsFullyTyped(t *testing.T) {
	program, _ := analyzeOK(t, `
		int x;
		double d;
		x = 1 + 2 * 3;
		d = if x > 0 then 1.5 else .5;
	`)

	for _, stmt := range program.Statements {
		assign := stmt.(*ast.Assign)
		be.True(t, assign.Value.Type().IsValid())
		be.True(t, assign.Target != nil)
	}
}

func TestParse_OffsetAssignment(t *testing.T) {
	_, table := analyzeOK(t, "int x; long y; double z; x = 0; y = 0; z = .0;")

	wants := map[string]int{"x": 0, "y": 4, "z": 12}
	for name, want := range wants {
		sym := table.Global().LookupLocal(name)
		if sym == nil {
			t.Fatalf("symbol %s not declared", name)
		}
		be.Equal(t, sym.Offset, want)
	}
}

func TestParse_DuplicateDeclaration(t *testing.T) {
	// Same scope, regardless of whether the types match.
	for _, src := range []string{"int x; int x;", "int x; double x;"} {
		_, _, bag := analyze(t, src)
		be.Equal(t, errorCodes(bag), []diag.Code{diag.DuplicateDeclaration})
	}
}

func TestParse_ShadowingIsLegal(t *testing.T) {
	program, _ := analyzeOK(t, `
		int x;
		{
			double x;
			x = 1.5;
		}
		x = 2;
	`)

	// Inside the block, x resolves to the inner double.
	block := program.Statements[0].(*ast.Block)
	inner := block.Statements[0].(*ast.Assign)
	be.Equal(t, inner.TargetType(), types.Double)
	be.Equal(t, inner.Target.Offset, 0) // scope-relative

	// Outside, x is the global int again.
	outer := program.Statements[1].(*ast.Assign)
	be.Equal(t, outer.TargetType(), types.Int)
}

func TestParse_WideningIsDirectional(t *testing.T) {
	// int into long: accepted.
	analyzeOK(t, "int i; long l; i = 1; l = i;")

	// long into int: rejected.
	_, _, bag := analyze(t, "int i; long l; l = 1; i = l;")
	be.Equal(t, errorCodes(bag), []diag.Code{diag.TypeMismatch})
}

// Comparison is stricter than arithmetic: int+double widens, but
// int<double is an error.
func TestParse_ComparisonRequiresIdenticalTypes(t *testing.T) {
	analyzeOK(t, "int i; double d; i = 1; d = i + d;")

	_, _, bag := analyze(t, "int i; double d; bool b; i = 1; d = .5; b = i < d;")
	be.Equal(t, errorCodes(bag), []diag.Code{diag.TypeMismatch})
}

func TestParse_ChainedComparisonIsSyntaxError(t *testing.T) {
	_, _, bag := analyze(t, "bool b; b = 1 < 2 < 3;")
	codes := errorCodes(bag)
	be.True(t, len(codes) > 0)
	be.Equal(t, codes[0], diag.SyntaxError)
}

func TestParse_IfExprTyping(t *testing.T) {
	ifType := func(src string) (types.Type, *diag.Bag) {
		program, _, bag := analyze(t, src)
		for _, stmt := range program.Statements {
			if assign, ok := stmt.(*ast.Assign); ok {
				return assign.Value.Type(), bag
			}
		}
		t.Fatalf("no assignment in %q", src)
		return types.Invalid, bag
	}

	typ, bag := ifType("int r; r = if true then 1 else 2;")
	be.Equal(t, typ, types.Int)
	be.True(t, !bag.HasErrors())

	// Branches of different numeric types widen to the common type.
	typ, bag = ifType("double r; r = if true then 1 else 2.0;")
	be.Equal(t, typ, types.Double)
	be.True(t, !bag.HasErrors())

	_, _, bag = analyze(t, "int r; r = if true then true else 1;")
	be.Equal(t, errorCodes(bag), []diag.Code{diag.IncompatibleBranches})
}

func TestParse_IfConditionMustBeBool(t *testing.T) {
	_, _, bag := analyze(t, "int r; r = if 1 then 2 else 3;")
	be.Equal(t, errorCodes(bag), []diag.Code{diag.TypeMismatch})
}

func TestParse_FunctionDefinition(t *testing.T) {
	_, table := analyzeOK(t, "fun add(int a, int b) = a + b;")

	fn := table.Global().LookupLocal("add")
	if fn == nil {
		t.Fatal("function not declared in global scope")
	}
	be.Equal(t, fn.Kind, symtab.SymbolFunction)
	be.Equal(t, fn.Type, types.Int) // return type inferred from the body
	be.Equal(t, fn.ParamTypes, []types.Type{types.Int, types.Int})
	be.Equal(t, fn.Signature(), "add(int, int) -> int")
}

func TestParse_ReturnTypeWidensWithBody(t *testing.T) {
	_, table := analyzeOK(t, "fun scale(int n) = n * 2.0;")
	be.Equal(t, table.Global().LookupLocal("scale").Type, types.Double)
}

func TestParse_CallChecking(t *testing.T) {
	header := "fun add(int a, int b) = a + b;\nint r;\n"

	// Exact call type-checks to the return type.
	program, _ := analyzeOK(t, header+"r = add(1, 2);")
	assign := program.Statements[1].(*ast.Assign)
	be.Equal(t, assign.Value.Type(), types.Int)

	// Wrong argument count.
	_, _, bag := analyze(t, header+"r = add(1);")
	be.Equal(t, errorCodes(bag), []diag.Code{diag.ArityMismatch})

	// Wrong argument type, reported against the second argument.
	_, _, bag = analyze(t, header+"r = add(1, true);")
	errs := bag.Errors()
	be.Equal(t, len(errs), 1)
	be.Equal(t, errs[0].Code, diag.TypeMismatch)
	be.True(t, strings.Contains(errs[0].Message, "argument 2"))
}

func TestParse_CallWidensArguments(t *testing.T) {
	analyzeOK(t, "fun half(double x) = x / 2.0; double r; r = half(3);")
}

// Functions become visible only after their body parses, so recursion
// and forward references are rejected.
func TestParse_NoForwardCalls(t *testing.T) {
	_, _, bag := analyze(t, "fun f(int n) = f(n);")
	be.Equal(t, errorCodes(bag), []diag.Code{diag.UndeclaredIdentifier})
}

func TestParse_UndeclaredIdentifier(t *testing.T) {
	_, _, bag := analyze(t, "int x; x = y + 1;")
	be.Equal(t, errorCodes(bag), []diag.Code{diag.UndeclaredIdentifier})
}

func TestParse_CallStatement(t *testing.T) {
	program, _ := analyzeOK(t, "fun ping(int n) = n; ping(3);")
	call := program.Statements[1].(*ast.CallStmt)
	be.Equal(t, call.Call.Name, "ping")
	be.Equal(t, call.Call.Type(), types.Int)
}

func TestParse_CallOfNonFunction(t *testing.T) {
	_, _, bag := analyze(t, "int x; x(1);")
	errs := bag.Errors()
	be.Equal(t, len(errs), 1)
	be.Equal(t, errs[0].Code, diag.TypeMismatch)
	be.True(t, strings.Contains(errs[0].Message, "not a function"))
}

func TestParse_AssignToFunction(t *testing.T) {
	_, _, bag := analyze(t, "fun f(int n) = n; f = 3;")
	be.Equal(t, errorCodes(bag), []diag.Code{diag.TypeMismatch})
}

func TestParse_CompoundAssignment(t *testing.T) {
	// Sugar for x = x + 2: well-typed.
	analyzeOK(t, "int x; x = 1; x += 2;")
	analyzeOK(t, "long l; l = 1; l *= 2;")

	// x = x + 2.0 would widen x to double, which cannot be stored back.
	_, _, bag := analyze(t, "int x; x = 1; x += 2.0;")
	be.Equal(t, errorCodes(bag), []diag.Code{diag.TypeMismatch})
}

func TestParse_FloorDivision(t *testing.T) {
	program, _ := analyzeOK(t, "int x; x = 7 // 2;")
	be.Equal(t, program.Statements[0].(*ast.Assign).Value.Type(), types.Int)

	_, _, bag := analyze(t, "double d; d = 7.0 // 2.0;")
	be.Equal(t, errorCodes(bag), []diag.Code{diag.TypeMismatch})
}

func TestParse_UnaryMinus(t *testing.T) {
	analyzeOK(t, "int x; x = -5; double d; d = -x * 1.5;")

	_, _, bag := analyze(t, "bool b; b = -true;")
	be.Equal(t, errorCodes(bag), []diag.Code{diag.TypeMismatch})
}

func TestParse_LogicalConnectives(t *testing.T) {
	analyzeOK(t, "bool b; b = true andalso false orelse true;")

	_, _, bag := analyze(t, "bool b; int i; i = 1; b = i andalso true;")
	be.Equal(t, errorCodes(bag), []diag.Code{diag.TypeMismatch})
}

// One root cause, one diagnostic: the undeclared name is reported
// once, and the surrounding expression and assignment stay silent.
func TestParse_NoCascadeFromOneError(t *testing.T) {
	_, _, bag := analyze(t, "int x; x = (y + 1) * 2;")
	be.Equal(t, errorCodes(bag), []diag.Code{diag.UndeclaredIdentifier})
}

func TestParse_SyntaxErrorRecovery(t *testing.T) {
	// The bad declaration aborts at the '='; parsing resumes with the
	// next statement and the rest of the program is analyzed.
	_, table, bag := analyze(t, "int x = 5; double d; d = 1.0;")
	be.Equal(t, errorCodes(bag), []diag.Code{diag.SyntaxError})
	be.True(t, table.Global().LookupLocal("d") != nil)
}

func TestParse_RecoveryFindsMultipleErrors(t *testing.T) {
	_, _, bag := analyze(t, "int x; x = ; x = 5; x = ;")
	be.Equal(t, errorCodes(bag), []diag.Code{diag.SyntaxError, diag.SyntaxError})
}

// A syntax error inside a block must not corrupt the scope stack.
func TestParse_ScopeStackSurvivesErrors(t *testing.T) {
	_, table, bag := analyze(t, "{ int x; x = ; } int y; y = 1;")
	be.True(t, bag.HasErrors())
	be.Equal(t, table.Current(), table.Global())
	be.True(t, table.Global().LookupLocal("y") != nil)
}

func TestParse_BlockScopes(t *testing.T) {
	program, table := analyzeOK(t, "{ int a; a = 1; { int b; b = 2; } }")

	block := program.Statements[0].(*ast.Block)
	be.True(t, block.Scope != nil)
	be.Equal(t, block.Scope.Kind, symtab.ScopeBlock)

	// global + outer block + inner block, all retained after exit.
	be.Equal(t, len(table.Scopes()), 3)
	be.Equal(t, table.Current(), table.Global())
}

func TestParse_UnusedVariableWarning(t *testing.T) {
	_, _, bag := analyze(t, "int x;")
	be.True(t, !bag.HasErrors())
	be.Equal(t, bag.Len(), 1)

	d := bag.All()[0]
	be.Equal(t, d.Code, diag.UnusedVariable)
	be.Equal(t, d.Severity, diag.SeverityWarning)
}

func TestParse_LexicalErrorIsReported(t *testing.T) {
	_, _, bag := analyze(t, "int x; x = 1 @ 2;")
	codes := errorCodes(bag)
	be.True(t, len(codes) > 0)
	be.Equal(t, codes[0], diag.SyntaxError)
}

func TestParse_EmptyProgram(t *testing.T) {
	program, _ := analyzeOK(t, "")
	be.Equal(t, len(program.Statements), 0)

	program, _ = analyzeOK(t, "(* nothing but a comment *)")
	be.Equal(t, len(program.Statements), 0)
}

func TestAstPrint(t *testing.T) {
	program, _ := analyzeOK(t, "int x; x = 1 + 2;")
	out := ast.Print(program)

	for _, want := range []string{
		"Assign x =: int",
		"Binary +: int",
		"Literal 1: int",
		"Literal 2: int",
	} {
		be.True(t, strings.Contains(out, want))
	}
}
