// errors are a set of functions useful for type checks, given the absence
// of static type checking due to reflection.

package att

import (
	"fmt"
)

// AttributeSubsetError represents an error that occurs when a predicate
// refers to attributes that the tuple it is evaluated on does not have.
type AttributeSubsetError struct {
	Expected []Attribute
	Found    []Attribute
}

func (e *AttributeSubsetError) Error() string {
	return fmt.Sprintf("relcalc: expected attributes to be a subset of %v, found %v", e.Expected, e.Found)
}

// EnsureSubDomain returns an error if the input sub is not a subdomain of
// input dom.  The error lists only the offending attributes.
func EnsureSubDomain(sub, dom []Attribute) error {
	if IsSubDomain(sub, dom) {
		return nil
	}
	var invalid []Attribute
SubLoop:
	for _, n1 := range sub {
		for _, n2 := range dom {
			if n1 == n2 {
				continue SubLoop
			}
		}
		invalid = append(invalid, n1)
	}
	return &AttributeSubsetError{dom, invalid}
}
