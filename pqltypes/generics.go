package pqltypes

import "fmt"

// ApplyInnerType applies a type argument to a container type (ListType
// or OptionalType), as used by generic-type application in spec.md §4.5
// (`table[SomeType]` where table is itself a type, not an Instance).
func ApplyInnerType(container Type, arg Type) (Type, error) {
	switch container.(type) {
	case ListType:
		return ListType{Elem: arg}, nil
	case OptionalType:
		return OptionalType{Inner: arg}, nil
	default:
		return nil, fmt.Errorf("pqltypes: %s isn't a container type", container)
	}
}
