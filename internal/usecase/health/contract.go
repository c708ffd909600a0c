package health

import "context"

// StorePinger checks item store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// ContentProbe reports whether the search working set has been loaded.
type ContentProbe interface {
	Loaded() bool
	Size() int
}
