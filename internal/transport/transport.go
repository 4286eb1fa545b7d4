package transport

// Transport defines a generic interface for publishing generated
// pattern frames to external collaborators (plotting clients, loggers,
// network peers). Implementations must be safe for concurrent use.
type Transport interface {
	Send(data any) error
	Close() error
}
