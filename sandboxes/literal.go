package sandboxes

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"

	"go.starlark.net/syntax"
)

var ErrNotLiteral = errors.New("not a literal")

// ParseLiteral evaluates src if it consists only of literals: numbers,
// strings, lists, tuples, dicts, True, False and None. Nothing is
// executed.
func ParseLiteral(src string) (any, error) {
	expr, err := FileOptions.ParseExpr("literal", src, 0)
	if err != nil {
		return nil, err
	}
	return literalValue(expr)
}

func literalValue(expr syntax.Expr) (any, error) {
	switch expr := expr.(type) {

	case *syntax.Literal:
		switch expr.Token {
		case syntax.BYTES:
			return []byte(expr.Value.(string)), nil
		default:
			return expr.Value, nil
		}

	case *syntax.Ident:
		switch expr.Name {
		case "True":
			return true, nil
		case "False":
			return false, nil
		case "None":
			return nil, nil
		}
		return nil, fmt.Errorf("%w: name %s", ErrNotLiteral, expr.Name)

	case *syntax.ParenExpr:
		return literalValue(expr.X)

	case *syntax.UnaryExpr:
		if expr.Op != syntax.MINUS && expr.Op != syntax.PLUS {
			break
		}
		lit, ok := expr.X.(*syntax.Literal)
		if !ok {
			break
		}
		if expr.Op == syntax.PLUS {
			return literalValue(lit)
		}
		switch v := lit.Value.(type) {
		case int64:
			return -v, nil
		case *big.Int:
			return new(big.Int).Neg(v), nil
		case float64:
			return -v, nil
		}

	case *syntax.ListExpr:
		return literalList(expr.List)

	case *syntax.TupleExpr:
		return literalList(expr.List)

	case *syntax.DictExpr:
		entries := make([][2]any, 0, len(expr.List))
		allStrings := true
		for _, e := range expr.List {
			entry := e.(*syntax.DictEntry)
			key, err := literalValue(entry.Key)
			if err != nil {
				return nil, err
			}
			if key == nil || !reflect.TypeOf(key).Comparable() {
				return nil, fmt.Errorf("unhashable dict key: %v", key)
			}
			if _, ok := key.(string); !ok {
				allStrings = false
			}
			value, err := literalValue(entry.Value)
			if err != nil {
				return nil, err
			}
			entries = append(entries, [2]any{key, value})
		}
		if allStrings {
			ret := make(map[string]any, len(entries))
			for _, entry := range entries {
				ret[entry[0].(string)] = entry[1]
			}
			return ret, nil
		}
		ret := make(map[any]any, len(entries))
		for _, entry := range entries {
			ret[entry[0]] = entry[1]
		}
		return ret, nil

	}

	return nil, fmt.Errorf("%w: %T", ErrNotLiteral, expr)
}

func literalList(exprs []syntax.Expr) ([]any, error) {
	ret := make([]any, 0, len(exprs))
	for _, e := range exprs {
		v, err := literalValue(e)
		if err != nil {
			return nil, err
		}
		ret = append(ret, v)
	}
	return ret, nil
}
