// Package http1 serializes HTTP/1.x request and response heads straight into
// an io.Writer without building intermediate strings.
package http1

// HTTP Method IDs for O(1) switching
const (
	methodIDCustom  uint8 = 0
	methodIDGet     uint8 = 1
	methodIDPost    uint8 = 2
	methodIDPut     uint8 = 3
	methodIDDelete  uint8 = 4
	methodIDPatch   uint8 = 5
	methodIDHead    uint8 = 6
	methodIDOptions uint8 = 7
	methodIDConnect uint8 = 8
	methodIDTrace   uint8 = 9
)

// HTTP Methods - wire names
const (
	methodGETString     = "GET"
	methodPOSTString    = "POST"
	methodPUTString     = "PUT"
	methodDELETEString  = "DELETE"
	methodPATCHString   = "PATCH"
	methodHEADString    = "HEAD"
	methodOPTIONSString = "OPTIONS"
	methodCONNECTString = "CONNECT"
	methodTRACEString   = "TRACE"
)

// HTTP/1.1 status lines - pre-compiled with CRLF so the common responses
// go out in a single write
const (
	// 1xx Informational
	status100String = "HTTP/1.1 100 Continue\r\n"
	status101String = "HTTP/1.1 101 Switching Protocols\r\n"

	// 2xx Success
	status200String = "HTTP/1.1 200 OK\r\n"
	status201String = "HTTP/1.1 201 Created\r\n"
	status202String = "HTTP/1.1 202 Accepted\r\n"
	status204String = "HTTP/1.1 204 No Content\r\n"
	status206String = "HTTP/1.1 206 Partial Content\r\n"

	// 3xx Redirection
	status301String = "HTTP/1.1 301 Moved Permanently\r\n"
	status302String = "HTTP/1.1 302 Found\r\n"
	status304String = "HTTP/1.1 304 Not Modified\r\n"
	status307String = "HTTP/1.1 307 Temporary Redirect\r\n"
	status308String = "HTTP/1.1 308 Permanent Redirect\r\n"

	// 4xx Client Error
	status400String = "HTTP/1.1 400 Bad Request\r\n"
	status401String = "HTTP/1.1 401 Unauthorized\r\n"
	status403String = "HTTP/1.1 403 Forbidden\r\n"
	status404String = "HTTP/1.1 404 Not Found\r\n"
	status405String = "HTTP/1.1 405 Method Not Allowed\r\n"
	status429String = "HTTP/1.1 429 Too Many Requests\r\n"

	// 5xx Server Error
	status500String = "HTTP/1.1 500 Internal Server Error\r\n"
	status502String = "HTTP/1.1 502 Bad Gateway\r\n"
	status503String = "HTTP/1.1 503 Service Unavailable\r\n"
	status504String = "HTTP/1.1 504 Gateway Timeout\r\n"
)

// Wire punctuation
const (
	crlf       = "\r\n"
	colonSpace = ": "
	httpSlash  = "HTTP/"
	spHTTP     = " HTTP/"
	rootPath   = "/"

	querySep = "?"
	queryAmp = "&"
)

// Fixed bytes around the variable parts of a start line.
//
// Request line: METHOD SP PATH SP "HTTP/" VERSION CRLF
// Status line:  "HTTP/" VERSION SP CODE SP REASON CRLF
const (
	requestLineOverhead = 1 + len(spHTTP) + len(crlf)
	statusLineOverhead  = len(httpSlash) + 1 + 1 + len(crlf)
	headerLineOverhead  = len(colonSpace) + len(crlf)
)

// MaxInlineSegments is the number of header or query segments a builder keeps
// without touching the heap. 32 headers covers nearly every real message; more
// spill into an overflow slice.
const MaxInlineSegments = 32

// Common header names
const (
	HeaderHost                = "Host"
	HeaderConnection          = "Connection"
	HeaderUpgrade             = "Upgrade"
	HeaderSecWebSocketKey     = "Sec-WebSocket-Key"
	HeaderSecWebSocketVersion = "Sec-WebSocket-Version"
	HeaderRequestID           = "X-Request-Id"
)
