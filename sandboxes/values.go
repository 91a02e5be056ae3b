package sandboxes

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// ToStarlark converts a state value to a fresh starlark value.
// Containers are copied, so mutating the result never touches v.
func ToStarlark(v any) (starlark.Value, error) {
	switch v := v.(type) {

	case starlark.Value:
		return thaw(v)

	case nil:
		return starlark.None, nil

	case bool:
		return starlark.Bool(v), nil

	case []byte:
		return starlark.Bytes(v), nil
	case string:
		return starlark.String(v), nil

	case int:
		return starlark.MakeInt(v), nil
	case int8:
		return starlark.MakeInt(int(v)), nil
	case int16:
		return starlark.MakeInt(int(v)), nil
	case int32:
		return starlark.MakeInt(int(v)), nil
	case int64:
		return starlark.MakeInt64(v), nil
	case *big.Int:
		return starlark.MakeBigInt(v), nil

	case uint:
		return starlark.MakeUint(v), nil
	case uint8:
		return starlark.MakeUint(uint(v)), nil
	case uint16:
		return starlark.MakeUint(uint(v)), nil
	case uint32:
		return starlark.MakeUint(uint(v)), nil
	case uint64:
		return starlark.MakeUint64(v), nil

	case float32:
		return starlark.Float(v), nil
	case float64:
		return starlark.Float(v), nil

	case []any:
		elems := make([]starlark.Value, len(v))
		for i, e := range v {
			elem, err := ToStarlark(e)
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return starlark.NewList(elems), nil

	case map[string]any:
		d := starlark.NewDict(len(v))
		for k, val := range v {
			elem, err := ToStarlark(val)
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(starlark.String(k), elem); err != nil {
				return nil, err
			}
		}
		return d, nil

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool()), nil

	case reflect.String:
		return starlark.String(value.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(value.Uint()), nil

	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float()), nil

	case reflect.Slice, reflect.Array:
		l := value.Len()
		elems := make([]starlark.Value, l)
		for i := range l {
			elem, err := ToStarlark(value.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return starlark.NewList(elems), nil

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			key, err := ToStarlark(iter.Key().Interface())
			if err != nil {
				return nil, err
			}
			elem, err := ToStarlark(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(key, elem); err != nil {
				return nil, err
			}
		}
		return d, nil

	case reflect.Struct:
		n := value.NumField()
		d := starlark.NewDict(n)
		typ := value.Type()
		for i := range n {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			elem, err := ToStarlark(value.Field(i).Interface())
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(starlark.String(field.Name), elem); err != nil {
				return nil, err
			}
		}
		return d, nil

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None, nil
		}
		return ToStarlark(elem.Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface()), nil

	}

	return nil, fmt.Errorf("unsupported type for starlark: %T", v)
}

// FromStarlark converts a starlark value to its Go form.
// Values without a Go form are frozen and returned as is.
func FromStarlark(v starlark.Value) any {
	switch v := v.(type) {

	case starlark.NoneType:
		return nil

	case starlark.Bool:
		return bool(v)

	case starlark.Int:
		if i, ok := v.Int64(); ok {
			return i
		}
		return v.BigInt()

	case starlark.Float:
		return float64(v)

	case starlark.String:
		return string(v)

	case starlark.Bytes:
		return []byte(v)

	case *starlark.List:
		ret := make([]any, 0, v.Len())
		for i := range v.Len() {
			ret = append(ret, FromStarlark(v.Index(i)))
		}
		return ret

	case starlark.Tuple:
		ret := make([]any, 0, len(v))
		for _, elem := range v {
			ret = append(ret, FromStarlark(elem))
		}
		return ret

	case *starlark.Dict:
		if m, ok := stringKeyedMap(v); ok {
			return m
		}
		if m, ok := comparableKeyedMap(v); ok {
			return m
		}

	}

	v.Freeze()
	return v
}

// thaw copies mutable containers so the copy can be modified
// even when v is frozen.
func thaw(v starlark.Value) (starlark.Value, error) {
	switch v := v.(type) {

	case *starlark.List:
		elems := make([]starlark.Value, v.Len())
		for i := range v.Len() {
			elem, err := thaw(v.Index(i))
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return starlark.NewList(elems), nil

	case starlark.Tuple:
		ret := make(starlark.Tuple, len(v))
		for i, elem := range v {
			e, err := thaw(elem)
			if err != nil {
				return nil, err
			}
			ret[i] = e
		}
		return ret, nil

	case *starlark.Dict:
		d := starlark.NewDict(v.Len())
		for _, item := range v.Items() {
			elem, err := thaw(item[1])
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(item[0], elem); err != nil {
				return nil, err
			}
		}
		return d, nil

	case *starlark.Set:
		set := starlark.NewSet(v.Len())
		iter := v.Iterate()
		defer iter.Done()
		var elem starlark.Value
		for iter.Next(&elem) {
			if err := set.Insert(elem); err != nil {
				return nil, err
			}
		}
		return set, nil

	}
	return v, nil
}

// Equal reports whether two state values hold the same content.
// Starlark values compare by starlark equality, others deeply.
func Equal(a, b any) (ret bool) {
	defer func() {
		if recover() != nil {
			ret = false
		}
	}()
	if x, ok := a.(starlark.Value); ok {
		y, ok := b.(starlark.Value)
		if !ok {
			return false
		}
		eq, err := starlark.Equal(x, y)
		return err == nil && eq
	}
	return reflect.DeepEqual(a, b)
}

func stringKeyedMap(d *starlark.Dict) (map[string]any, bool) {
	ret := make(map[string]any, d.Len())
	for _, item := range d.Items() {
		key, ok := item[0].(starlark.String)
		if !ok {
			return nil, false
		}
		ret[string(key)] = FromStarlark(item[1])
	}
	return ret, true
}

func comparableKeyedMap(d *starlark.Dict) (map[any]any, bool) {
	ret := make(map[any]any, d.Len())
	for _, item := range d.Items() {
		key := FromStarlark(item[0])
		if key == nil || !reflect.TypeOf(key).Comparable() {
			return nil, false
		}
		ret[key] = FromStarlark(item[1])
	}
	return ret, true
}

// Format renders a value the way it is substituted into prompts:
// strings as is, everything else in starlark notation.
func Format(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	sv, err := ToStarlark(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	if s, ok := sv.(starlark.String); ok {
		return string(s)
	}
	return sv.String()
}
