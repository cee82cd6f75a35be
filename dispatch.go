package setcover

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/hayeah/setcover/internal/errs"
)

// DynamicSet is a set whose id and element types are only known at run time,
// e.g. after decoding JSON or reading a database. Elements must be a slice.
type DynamicSet struct {
	ID       any
	Elements any
}

// DynamicResult is a Result with ids boxed as any. Every id is a string or
// an int64, matching the input's id type.
type DynamicResult struct {
	Strategy  Strategy  `json:"strategy"`
	Cover     []any     `json:"cover"`
	Gains     []int     `json:"gains"`
	Sets      int       `json:"sets"`
	Universe  int       `json:"universe"`
	Footprint Footprint `json:"footprint"`
}

type valueKind int

const (
	kindNone valueKind = iota
	kindString
	kindInt
)

func (k valueKind) String() string {
	switch k {
	case kindString:
		return "string"
	case kindInt:
		return "int64"
	default:
		return "none"
	}
}

// SolveDynamic checks the id and element types of sets once and runs the
// matching typed solve. Ids must all be strings or all be integers, and the
// same holds for elements across every set. Integers of any width are
// widened to int64; json.Number is accepted when it holds an integer.
func SolveDynamic(ctx context.Context, sets []DynamicSet, strategy Strategy, opts ...Option) (*DynamicResult, error) {
	in, err := unbox(sets)
	if err != nil {
		return nil, err
	}
	if in.elemKind == kindNone {
		return nil, errs.ErrEmptyInput.New("no set has any elements")
	}

	switch {
	case in.keyKind == kindString && in.elemKind == kindString:
		return solveTyped[string, string](ctx, in.ids, in.elems, strategy, opts)
	case in.keyKind == kindString && in.elemKind == kindInt:
		return solveTyped[string, int64](ctx, in.ids, in.elems, strategy, opts)
	case in.keyKind == kindInt && in.elemKind == kindString:
		return solveTyped[int64, string](ctx, in.ids, in.elems, strategy, opts)
	default:
		return solveTyped[int64, int64](ctx, in.ids, in.elems, strategy, opts)
	}
}

// VerifyDynamic is Verify for dynamic input. Cover ids are normalized the
// same way as set ids, so an int cover matches int64 set ids.
func VerifyDynamic(sets []DynamicSet, cover []any) error {
	in, err := unbox(sets)
	if err != nil {
		return err
	}
	byID := make(map[any][]any, len(in.ids))
	for i, id := range in.ids {
		byID[id] = in.elems[i]
	}
	ids := make([]any, len(cover))
	for i, id := range cover {
		ids[i] = id
		if _, n, ok := normalize(id); ok {
			ids[i] = n
		}
	}
	return verify(byID, ids)
}

// unboxed is a DynamicSet slice after the one-time type check.
type unboxed struct {
	ids      []any
	elems    [][]any
	keyKind  valueKind
	elemKind valueKind
}

func unbox(sets []DynamicSet) (*unboxed, error) {
	if len(sets) == 0 {
		return nil, errs.ErrEmptyInput.New("no sets given")
	}

	in := &unboxed{
		ids:   make([]any, len(sets)),
		elems: make([][]any, len(sets)),
	}

	for i, set := range sets {
		kind, id, ok := normalize(set.ID)
		if !ok {
			return nil, errs.ErrUnsupportedKeyType.New(fmt.Sprintf("%T", set.ID))
		}
		if in.keyKind == kindNone {
			in.keyKind = kind
		} else if kind != in.keyKind {
			return nil, errs.ErrUnsupportedKeyType.New(fmt.Sprintf("%T mixed with %s ids", set.ID, in.keyKind))
		}
		in.ids[i] = id

		v := reflect.ValueOf(set.Elements)
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			return nil, errs.ErrInvalidInputShape.New(fmt.Sprintf("elements of set %v are %T, not a list", id, set.Elements))
		}
		values := make([]any, v.Len())
		for j := range values {
			raw := v.Index(j).Interface()
			kind, el, ok := normalize(raw)
			if !ok {
				return nil, errs.ErrUnsupportedElementType.New(fmt.Sprintf("%T", raw), id)
			}
			if in.elemKind == kindNone {
				in.elemKind = kind
			} else if kind != in.elemKind {
				return nil, errs.ErrUnsupportedElementType.New(fmt.Sprintf("%T mixed with %s elements", raw, in.elemKind), id)
			}
			values[j] = el
		}
		in.elems[i] = values
	}
	return in, nil
}

func solveTyped[K, E Key](ctx context.Context, ids []any, elems [][]any, strategy Strategy, opts []Option) (*DynamicResult, error) {
	sets := make([]Set[K, E], len(ids))
	for i, id := range ids {
		elements := make([]E, len(elems[i]))
		for j, el := range elems[i] {
			elements[j] = el.(E)
		}
		sets[i] = Set[K, E]{ID: id.(K), Elements: elements}
	}
	// the boxed copies are no longer needed once typed
	clear(elems)

	res, err := SolveContext(ctx, sets, strategy, opts...)
	if err != nil {
		return nil, err
	}

	out := &DynamicResult{
		Strategy:  res.Strategy,
		Cover:     make([]any, len(res.Cover)),
		Gains:     make([]int, len(res.Steps)),
		Sets:      res.Sets,
		Universe:  res.Universe,
		Footprint: res.Footprint,
	}
	for i, id := range res.Cover {
		out.Cover[i] = id
		out.Gains[i] = res.Steps[i].Gain
	}
	return out, nil
}

// normalize maps supported scalar values to string or int64.
func normalize(v any) (valueKind, any, bool) {
	switch x := v.(type) {
	case string:
		return kindString, x, true
	case int:
		return kindInt, int64(x), true
	case int8:
		return kindInt, int64(x), true
	case int16:
		return kindInt, int64(x), true
	case int32:
		return kindInt, int64(x), true
	case int64:
		return kindInt, x, true
	case uint8:
		return kindInt, int64(x), true
	case uint16:
		return kindInt, int64(x), true
	case uint32:
		return kindInt, int64(x), true
	case uint:
		if uint64(x) > math.MaxInt64 {
			return kindNone, nil, false
		}
		return kindInt, int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return kindNone, nil, false
		}
		return kindInt, int64(x), true
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return kindNone, nil, false
		}
		return kindInt, n, true
	default:
		return kindNone, nil, false
	}
}
