package domain

import "context"

// ItemCatalog is the host's item catalog. It resolves symbolic names to
// materials and tags and converts items to and from their opaque
// serialized form. Implementations can be a static table, a game server
// bridge, or a test fake.
type ItemCatalog interface {
	Material(name string) (Material, error)
	Tag(name string) (Tag, error)
	EncodeItem(item *Item) (string, error)
	DecodeItem(data string) (*Item, error)
}

// Tag is a named class of materials, e.g. "planks".
type Tag interface {
	Name() string
	Contains(m Material) bool
}

// Provider is an external source of items identified by name. Hosts
// register providers at startup and enable or disable them as the
// backing content source comes and goes.
type Provider interface {
	Name() string
	// Validate checks that data names an item the provider knows.
	Validate(data string) error
	// Matches reports whether item is the provider item named by data.
	Matches(data string, item *Item) bool
	// Resolve builds the provider item named by data. actor is nil for
	// non-interactive evaluations.
	Resolve(data string, actor *Actor) (*Item, error)
}

// ProviderSource looks up providers that are currently enabled.
type ProviderSource interface {
	Enabled(name string) (Provider, bool)
}

// Notifier delivers short status messages to the operator.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
