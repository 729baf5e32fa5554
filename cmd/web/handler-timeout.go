package main

import (
	"net/http"
	"time"
)

const timeoutBody = `<html lang="en">
<head><title>Timeout</title></head>
<body>
<h1>Timeout</h1>
<p>The request took too long. Please try again in a few moments.</p>
<p><a href="">Retry</a></p>
</body>
</html>
`

const apiTimeoutBody = `{"error":"Failed to get analysis from API","details":"request timed out"}`

// timeoutHandler responds with a 503 Service Unavailable error when the handler does not meet the deadline.
//
// serverTimeout is the server's write timeout. The handler gets a little less so that it has a chance to respond
// before the server closes the connection.
func timeoutHandler(serverTimeout time.Duration, body string) func(http.Handler) http.Handler {
	httpHandlerTimeout := serverTimeout - timeoutMargin
	return func(h http.Handler) http.Handler {
		return http.TimeoutHandler(h, httpHandlerTimeout, body)
	}
}
