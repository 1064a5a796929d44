package cart

import (
	"context"

	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/catalog"
)

// Storage holds the serialized cart of a single visitor.
// Load returns (nil, nil) when nothing has been saved yet.
type Storage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Backend hands out the Storage of a session.
type Backend interface {
	Open(sessionID string) Storage
}

// Catalog is the product lookup the store needs to create lines.
type Catalog interface {
	Lookup(id int) (catalog.Product, bool)
}
