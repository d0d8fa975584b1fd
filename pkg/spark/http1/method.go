package http1

// Method is a request method: one of the nine standard methods or a custom
// token. Custom names are borrowed and written as given.
type Method struct {
	id     uint8
	custom string
}

var (
	MethodGet     = Method{id: methodIDGet}
	MethodHead    = Method{id: methodIDHead}
	MethodPost    = Method{id: methodIDPost}
	MethodPut     = Method{id: methodIDPut}
	MethodDelete  = Method{id: methodIDDelete}
	MethodConnect = Method{id: methodIDConnect}
	MethodOptions = Method{id: methodIDOptions}
	MethodTrace   = Method{id: methodIDTrace}
	MethodPatch   = Method{id: methodIDPatch}
)

// CustomMethod returns a method that is written as name. The name is not
// validated.
func CustomMethod(name string) Method {
	return Method{id: methodIDCustom, custom: name}
}

// IsCustom reports whether m is outside the standard set.
func (m Method) IsCustom() bool { return m.id == methodIDCustom }

// String returns the wire name of m.
//
// Allocation behavior: 0 allocs/op
func (m Method) String() string {
	switch m.id {
	case methodIDGet:
		return methodGETString
	case methodIDPost:
		return methodPOSTString
	case methodIDPut:
		return methodPUTString
	case methodIDDelete:
		return methodDELETEString
	case methodIDPatch:
		return methodPATCHString
	case methodIDHead:
		return methodHEADString
	case methodIDOptions:
		return methodOPTIONSString
	case methodIDConnect:
		return methodCONNECTString
	case methodIDTrace:
		return methodTRACEString
	default:
		return m.custom
	}
}

// ParseMethod maps a wire method name to the standard set. Matching is
// case-sensitive; anything else becomes a custom method holding a copy of b.
//
// Allocation behavior: 0 allocs/op for standard methods
func ParseMethod(b []byte) Method {
	switch string(b) {
	case methodGETString:
		return MethodGet
	case methodPOSTString:
		return MethodPost
	case methodPUTString:
		return MethodPut
	case methodDELETEString:
		return MethodDelete
	case methodPATCHString:
		return MethodPatch
	case methodHEADString:
		return MethodHead
	case methodOPTIONSString:
		return MethodOptions
	case methodCONNECTString:
		return MethodConnect
	case methodTRACEString:
		return MethodTrace
	}
	return CustomMethod(string(b))
}
