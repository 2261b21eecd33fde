package driving

import "context"

// Watcher ingests course material dropped into a directory tree.
type Watcher interface {
	// Scan indexes every supported file under root once.
	Scan(ctx context.Context, root string) (int, error)

	// Watch scans root and then indexes new or modified files until ctx is done.
	Watch(ctx context.Context, root string) error
}
