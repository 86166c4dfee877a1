package files

import (
	"time"
)

// DirContext is a directory path together with its most recently loaded listing.
type DirContext struct {
	path      string
	listing   *Listing
	timestamp time.Time
}

func NewDirContext(path string, listing *Listing) *DirContext {
	c := &DirContext{path: path}
	if listing != nil {
		c.SetListing(*listing)
	}
	return c
}

func (c *DirContext) Path() string {
	return c.path
}

func (c *DirContext) Name() string {
	return BaseName(c.path)
}

func (c *DirContext) SetListing(listing Listing) {
	c.listing = &listing
	c.timestamp = time.Now()
}

// Listing returns nil until a listing has been set.
func (c *DirContext) Listing() *Listing {
	return c.listing
}

// Timestamp is the moment the listing was set.
func (c *DirContext) Timestamp() time.Time {
	return c.timestamp
}

func (c *DirContext) String() string {
	return c.path
}
