package types

import "errors"

// ErrNoBiggestCommonType is returned when two types cannot be widened to a
// shared type.
var ErrNoBiggestCommonType = errors.New("no biggest common type")

// Biggest computes the smallest type both a and b can be widened to:
//   - Auto on either side yields the other side.
//   - Equal types yield themselves.
//   - Two arrays of equal length unify their bases; a length of 1
//     broadcasts to the other length.
//   - An array and a non-array broadcast the non-array.
func Biggest(a, b Type) (Type, error) {
	if a.Kind() == AutomaticKind {
		return b, nil
	}
	if b.Kind() == AutomaticKind {
		return a, nil
	}
	if Equal(a, b) {
		return a, nil
	}

	aa, aIsArray := a.(Array)
	bb, bIsArray := b.(Array)
	switch {
	case aIsArray && bIsArray:
		length := aa.Len
		switch {
		case aa.Len == bb.Len:
		case aa.Len == 1:
			length = bb.Len
		case bb.Len == 1:
		default:
			return nil, ErrNoBiggestCommonType
		}
		base, err := Biggest(aa.Base, bb.Base)
		if err != nil {
			return nil, err
		}
		return Array{Len: length, Base: base}, nil
	case aIsArray:
		base, err := Biggest(aa.Base, b)
		if err != nil {
			return nil, err
		}
		return Array{Len: aa.Len, Base: base}, nil
	case bIsArray:
		base, err := Biggest(a, bb.Base)
		if err != nil {
			return nil, err
		}
		return Array{Len: bb.Len, Base: base}, nil
	}
	return nil, ErrNoBiggestCommonType
}

// Widens reports whether a value of type from can be implicitly widened to
// type to.
func Widens(from, to Type) bool {
	if to.Kind() == AutomaticKind {
		return true
	}
	bct, err := Biggest(from, to)
	return err == nil && Equal(bct, to)
}
