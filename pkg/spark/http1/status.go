package http1

import "strconv"

// StatusCode is a response status code. Its range is not checked; String and
// Reason only read it.
type StatusCode int

// codeStrings holds the decimal form of every three-digit code.
var codeStrings = func() (t [1000]string) {
	for c := 100; c < len(t); c++ {
		t[c] = strconv.Itoa(c)
	}
	return t
}()

// String returns the decimal code as written on the status line.
//
// Allocation behavior: 0 allocs/op for codes 100-999
func (c StatusCode) String() string {
	if c >= 100 && c < 1000 {
		return codeStrings[c]
	}
	return strconv.Itoa(int(c))
}

// Reason returns the canonical reason phrase, or "" when the code has none.
// Based on RFC 9110 Section 15.
func (c StatusCode) Reason() string {
	switch c {
	// 1xx Informational
	case 100:
		return "Continue"
	case 101:
		return "Switching Protocols"
	case 102:
		return "Processing"
	case 103:
		return "Early Hints"

	// 2xx Success
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 202:
		return "Accepted"
	case 203:
		return "Non-Authoritative Information"
	case 204:
		return "No Content"
	case 205:
		return "Reset Content"
	case 206:
		return "Partial Content"
	case 207:
		return "Multi-Status"
	case 208:
		return "Already Reported"
	case 226:
		return "IM Used"

	// 3xx Redirection
	case 300:
		return "Multiple Choices"
	case 301:
		return "Moved Permanently"
	case 302:
		return "Found"
	case 303:
		return "See Other"
	case 304:
		return "Not Modified"
	case 305:
		return "Use Proxy"
	case 307:
		return "Temporary Redirect"
	case 308:
		return "Permanent Redirect"

	// 4xx Client Error
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 402:
		return "Payment Required"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	case 406:
		return "Not Acceptable"
	case 407:
		return "Proxy Authentication Required"
	case 408:
		return "Request Timeout"
	case 409:
		return "Conflict"
	case 410:
		return "Gone"
	case 411:
		return "Length Required"
	case 412:
		return "Precondition Failed"
	case 413:
		return "Payload Too Large"
	case 414:
		return "URI Too Long"
	case 415:
		return "Unsupported Media Type"
	case 416:
		return "Range Not Satisfiable"
	case 417:
		return "Expectation Failed"
	case 418:
		return "I'm a teapot"
	case 421:
		return "Misdirected Request"
	case 422:
		return "Unprocessable Entity"
	case 423:
		return "Locked"
	case 424:
		return "Failed Dependency"
	case 425:
		return "Too Early"
	case 426:
		return "Upgrade Required"
	case 428:
		return "Precondition Required"
	case 429:
		return "Too Many Requests"
	case 431:
		return "Request Header Fields Too Large"
	case 451:
		return "Unavailable For Legal Reasons"

	// 5xx Server Error
	case 500:
		return "Internal Server Error"
	case 501:
		return "Not Implemented"
	case 502:
		return "Bad Gateway"
	case 503:
		return "Service Unavailable"
	case 504:
		return "Gateway Timeout"
	case 505:
		return "HTTP Version Not Supported"
	case 506:
		return "Variant Also Negotiates"
	case 507:
		return "Insufficient Storage"
	case 508:
		return "Loop Detected"
	case 510:
		return "Not Extended"
	case 511:
		return "Network Authentication Required"

	default:
		return ""
	}
}

// statusLine11 returns the pre-compiled HTTP/1.1 status line for common codes
// and false for everything else.
//
// Allocation behavior: 0 allocs/op
func statusLine11(c StatusCode) (string, bool) {
	switch c {
	case 100:
		return status100String, true
	case 101:
		return status101String, true
	case 200:
		return status200String, true
	case 201:
		return status201String, true
	case 202:
		return status202String, true
	case 204:
		return status204String, true
	case 206:
		return status206String, true
	case 301:
		return status301String, true
	case 302:
		return status302String, true
	case 304:
		return status304String, true
	case 307:
		return status307String, true
	case 308:
		return status308String, true
	case 400:
		return status400String, true
	case 401:
		return status401String, true
	case 403:
		return status403String, true
	case 404:
		return status404String, true
	case 405:
		return status405String, true
	case 429:
		return status429String, true
	case 500:
		return status500String, true
	case 502:
		return status502String, true
	case 503:
		return status503String, true
	case 504:
		return status504String, true
	}
	return "", false
}
