package game

import "github.com/mmuslimabdulj/goat-wolf/internal/domain"

// Notifier is the engine's only way out: the transport layer implements it
// and the engine stays ignorant of sockets. Broadcast reaches everyone in
// the room, NotifyConn reaches one connection, RoomClosed tells the owner
// to drop the room and release its connections.
//
// All three are called while the room's lock is held, so implementations
// must never call back into the room synchronously.
type Notifier interface {
	Broadcast(msg domain.Message)
	NotifyConn(connID string, msg domain.Message)
	RoomClosed(reason string)
}
