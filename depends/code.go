package depends

import (
	"maps"
	"slices"
	"strings"

	"github.com/reusee/cellbook/sandboxes"
	"go.starlark.net/syntax"
)

// Code returns the known names a code fragment reads before assigning
// them, and the top-level names it assigns. Nothing is executed. On a
// parse failure both results are empty.
func Code(content string, known map[string]bool) (reads []string, writes []string) {
	file, err := sandboxes.FileOptions.Parse("analyze", content, 0)
	if err != nil {
		return nil, nil
	}
	a := newAnalyzer(known)
	a.stmts(file.Stmts, nil)
	return a.result()
}

// Expression returns the known names referenced by a single expression.
func Expression(expr string, known map[string]bool) []string {
	e, err := sandboxes.FileOptions.ParseExpr("analyze", expr, 0)
	if err != nil {
		return nil
	}
	a := newAnalyzer(known)
	a.expr(e, nil)
	reads, _ := a.result()
	return reads
}

type analyzer struct {
	known    map[string]bool
	assigned map[string]bool
	reads    map[string]bool
	writes   map[string]bool
}

func newAnalyzer(known map[string]bool) *analyzer {
	return &analyzer{
		known:    known,
		assigned: make(map[string]bool),
		reads:    make(map[string]bool),
		writes:   make(map[string]bool),
	}
}

func (a *analyzer) result() ([]string, []string) {
	return slices.Sorted(maps.Keys(a.reads)), slices.Sorted(maps.Keys(a.writes))
}

// scope holds names local to a function, lambda or comprehension.
type scope struct {
	names  map[string]bool
	parent *scope
}

func (s *scope) has(name string) bool {
	for ; s != nil; s = s.parent {
		if s.names[name] {
			return true
		}
	}
	return false
}

func (a *analyzer) load(name string, local *scope) {
	if local.has(name) || a.assigned[name] {
		return
	}
	if a.known[name] {
		a.reads[name] = true
	}
}

func (a *analyzer) bind(name string, local *scope) {
	if local != nil {
		local.names[name] = true
		return
	}
	a.assigned[name] = true
	if !strings.HasPrefix(name, "_") {
		a.writes[name] = true
	}
}

func (a *analyzer) stmts(stmts []syntax.Stmt, local *scope) {
	for _, stmt := range stmts {
		a.stmt(stmt, local)
	}
}

func (a *analyzer) stmt(stmt syntax.Stmt, local *scope) {
	switch stmt := stmt.(type) {

	case *syntax.AssignStmt:
		if stmt.Op != syntax.EQ {
			// augmented assignment reads its target first
			a.expr(stmt.LHS, local)
		}
		a.expr(stmt.RHS, local)
		a.target(stmt.LHS, local)

	case *syntax.ExprStmt:
		a.expr(stmt.X, local)

	case *syntax.IfStmt:
		a.expr(stmt.Cond, local)
		a.stmts(stmt.True, local)
		a.stmts(stmt.False, local)

	case *syntax.ForStmt:
		a.expr(stmt.X, local)
		a.target(stmt.Vars, local)
		a.stmts(stmt.Body, local)

	case *syntax.WhileStmt:
		a.expr(stmt.Cond, local)
		a.stmts(stmt.Body, local)

	case *syntax.DefStmt:
		a.bind(stmt.Name.Name, local)
		a.function(stmt.Params, local, func(inner *scope) {
			for name := range boundNames(stmt.Body) {
				inner.names[name] = true
			}
			a.stmts(stmt.Body, inner)
		})

	case *syntax.ReturnStmt:
		if stmt.Result != nil {
			a.expr(stmt.Result, local)
		}

	case *syntax.LoadStmt:
		// load binds file-locally: it shadows state but produces nothing
		for _, id := range stmt.To {
			if local != nil {
				local.names[id.Name] = true
			} else {
				a.assigned[id.Name] = true
			}
		}

	}
}

// target handles the left side of an assignment.
func (a *analyzer) target(expr syntax.Expr, local *scope) {
	switch expr := expr.(type) {

	case *syntax.Ident:
		a.bind(expr.Name, local)

	case *syntax.ParenExpr:
		a.target(expr.X, local)

	case *syntax.TupleExpr:
		for _, e := range expr.List {
			a.target(e, local)
		}

	case *syntax.ListExpr:
		for _, e := range expr.List {
			a.target(e, local)
		}

	case *syntax.IndexExpr:
		// d[k] = v reads and mutates d
		a.expr(expr.X, local)
		a.expr(expr.Y, local)
		if id, ok := expr.X.(*syntax.Ident); ok && !local.has(id.Name) {
			a.mutate(id.Name, local)
		}

	case *syntax.DotExpr:
		a.expr(expr.X, local)
		if id, ok := expr.X.(*syntax.Ident); ok && !local.has(id.Name) {
			a.mutate(id.Name, local)
		}

	}
}

func (a *analyzer) mutate(name string, local *scope) {
	if local != nil {
		return
	}
	if !strings.HasPrefix(name, "_") {
		a.writes[name] = true
	}
}

func (a *analyzer) function(params []syntax.Expr, local *scope, body func(*scope)) {
	inner := &scope{
		names:  make(map[string]bool),
		parent: local,
	}
	for _, param := range params {
		switch param := param.(type) {
		case *syntax.Ident:
			inner.names[param.Name] = true
		case *syntax.BinaryExpr:
			// default values are evaluated in the enclosing scope
			a.expr(param.Y, local)
			if id, ok := param.X.(*syntax.Ident); ok {
				inner.names[id.Name] = true
			}
		case *syntax.UnaryExpr:
			if id, ok := param.X.(*syntax.Ident); ok {
				inner.names[id.Name] = true
			}
		}
	}
	body(inner)
}

func (a *analyzer) expr(expr syntax.Expr, local *scope) {
	if expr == nil {
		return
	}
	switch expr := expr.(type) {

	case *syntax.Ident:
		a.load(expr.Name, local)

	case *syntax.Literal:

	case *syntax.ParenExpr:
		a.expr(expr.X, local)

	case *syntax.ListExpr:
		for _, e := range expr.List {
			a.expr(e, local)
		}

	case *syntax.TupleExpr:
		for _, e := range expr.List {
			a.expr(e, local)
		}

	case *syntax.DictExpr:
		for _, e := range expr.List {
			a.expr(e, local)
		}

	case *syntax.DictEntry:
		a.expr(expr.Key, local)
		a.expr(expr.Value, local)

	case *syntax.UnaryExpr:
		a.expr(expr.X, local)

	case *syntax.BinaryExpr:
		a.expr(expr.X, local)
		a.expr(expr.Y, local)

	case *syntax.CallExpr:
		a.expr(expr.Fn, local)
		for _, arg := range expr.Args {
			if kw, ok := arg.(*syntax.BinaryExpr); ok && kw.Op == syntax.EQ {
				// keyword argument, the name is not a reference
				a.expr(kw.Y, local)
				continue
			}
			a.expr(arg, local)
		}

	case *syntax.DotExpr:
		a.expr(expr.X, local)

	case *syntax.IndexExpr:
		a.expr(expr.X, local)
		a.expr(expr.Y, local)

	case *syntax.SliceExpr:
		a.expr(expr.X, local)
		a.expr(expr.Lo, local)
		a.expr(expr.Hi, local)
		a.expr(expr.Step, local)

	case *syntax.CondExpr:
		a.expr(expr.Cond, local)
		a.expr(expr.True, local)
		a.expr(expr.False, local)

	case *syntax.Comprehension:
		inner := &scope{
			names:  make(map[string]bool),
			parent: local,
		}
		for _, clause := range expr.Clauses {
			switch clause := clause.(type) {
			case *syntax.ForClause:
				a.expr(clause.X, inner)
				a.target(clause.Vars, inner)
			case *syntax.IfClause:
				a.expr(clause.Cond, inner)
			}
		}
		a.expr(expr.Body, inner)

	case *syntax.LambdaExpr:
		a.function(expr.Params, local, func(inner *scope) {
			a.expr(expr.Body, inner)
		})

	}
}

// boundNames collects names assigned anywhere in a function body,
// which makes them local for the whole body.
func boundNames(stmts []syntax.Stmt) map[string]bool {
	ret := make(map[string]bool)
	var collect func(expr syntax.Expr)
	collect = func(expr syntax.Expr) {
		switch expr := expr.(type) {
		case *syntax.Ident:
			ret[expr.Name] = true
		case *syntax.ParenExpr:
			collect(expr.X)
		case *syntax.TupleExpr:
			for _, e := range expr.List {
				collect(e)
			}
		case *syntax.ListExpr:
			for _, e := range expr.List {
				collect(e)
			}
		}
	}
	var walk func(stmts []syntax.Stmt)
	walk = func(stmts []syntax.Stmt) {
		for _, stmt := range stmts {
			switch stmt := stmt.(type) {
			case *syntax.AssignStmt:
				collect(stmt.LHS)
			case *syntax.ForStmt:
				collect(stmt.Vars)
				walk(stmt.Body)
			case *syntax.IfStmt:
				walk(stmt.True)
				walk(stmt.False)
			case *syntax.WhileStmt:
				walk(stmt.Body)
			case *syntax.DefStmt:
				ret[stmt.Name.Name] = true
			}
		}
	}
	walk(stmts)
	return ret
}
