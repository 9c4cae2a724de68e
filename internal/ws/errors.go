package ws

import "errors"

// ErrNotConnected is returned by Send while the socket is down.
var ErrNotConnected = errors.New("socket not connected")
