package block

import (
	"fmt"
	"strings"
)

// SubjectKind namespaces the two block key spaces. An address and a
// principal with the same raw value never collide in storage.
type SubjectKind string

const (
	SubjectAddress   SubjectKind = "ip"
	SubjectPrincipal SubjectKind = "principal"
)

type SubjectKey struct {
	Kind  SubjectKind
	Value string
}

func AddressKey(address string) SubjectKey {
	return SubjectKey{Kind: SubjectAddress, Value: address}
}

func PrincipalKey(principal string) SubjectKey {
	return SubjectKey{Kind: SubjectPrincipal, Value: principal}
}

// String returns the namespaced storage form, e.g. "ip:10.0.0.1" or
// "principal:admin@example.com".
func (k SubjectKey) String() string {
	return fmt.Sprintf("%s:%s", k.Kind, k.Value)
}

func (k SubjectKey) IsZero() bool {
	return k.Value == ""
}

func ParseSubjectKey(s string) (SubjectKey, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return SubjectKey{}, fmt.Errorf("invalid subject key: %q", s)
	}
	kind := SubjectKind(parts[0])
	if kind != SubjectAddress && kind != SubjectPrincipal {
		return SubjectKey{}, fmt.Errorf("invalid subject key kind: %q", parts[0])
	}
	return SubjectKey{Kind: kind, Value: parts[1]}, nil
}
