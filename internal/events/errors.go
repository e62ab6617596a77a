package events

import "errors"

// ErrBrokerClosed is returned when publishing to a broker after Close.
var ErrBrokerClosed = errors.New("event broker closed")

// ErrClientClosed is returned when sending through a Client after Close.
var ErrClientClosed = errors.New("event client closed")

// ErrQueueFull is returned when a Client's outgoing queue has no room.
var ErrQueueFull = errors.New("event queue full")
