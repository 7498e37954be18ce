package content

import "context"

// Catalog joins the current index snapshot with the deployment strategy.
type Catalog struct {
	index    *IndexLoader
	strategy Strategy
}

// NewCatalog creates a catalog.
func NewCatalog(index *IndexLoader, strategy Strategy) *Catalog {
	return &Catalog{index: index, strategy: strategy}
}

// Strategy returns the active strategy.
func (c *Catalog) Strategy() Strategy { return c.strategy }

// List returns the visible items of kind in lang.
func (c *Catalog) List(ctx context.Context, kind Kind, lang string) ([]LocalizedItem, error) {
	snap, err := c.index.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.strategy.ResolveList(snap.Index.Items(kind), lang), nil
}

// Find resolves slug for the detail view, falling back to another language.
func (c *Catalog) Find(ctx context.Context, kind Kind, slug, lang string) (LocalizedItem, error) {
	snap, err := c.index.Load(ctx)
	if err != nil {
		return LocalizedItem{}, err
	}
	return c.strategy.ResolveContent(snap.Index.Items(kind), slug, lang)
}
