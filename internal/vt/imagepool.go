package vt

import "github.com/google/uuid"

// ImageFragment is one decoded Sixel (or future pixel-graphics) bitmap
// attached to one or more grid cells (§4.4 "Sixel graphics").
type ImageFragment struct {
	ID     ImageFragmentID
	Handle string // stable external handle, for collaborators that persist images
	Width  int
	Height int
	RGBA   []byte // 4 bytes per pixel, row-major
}

// ImagePool is a generational arena of registered image fragments, bounded
// by MaxImageSize and MaxImageRegisterCount (§7 "Resource-limit").
//
// Grounded on framegrace-texelation's VTerm, which has no image model;
// designed from scratch per §4.4 "Sixel graphics", using google/uuid for
// the externally stable Handle the way HyperlinkRegistry does for links.
type ImagePool struct {
	maxSize      PageSize
	maxCount     int
	fragments    map[ImageFragmentID]*ImageFragment
	next         ImageFragmentID
}

// NewImagePool returns an empty pool enforcing the given bounds.
func NewImagePool(maxSize PageSize, maxCount int) *ImagePool {
	return &ImagePool{maxSize: maxSize, maxCount: maxCount, fragments: make(map[ImageFragmentID]*ImageFragment)}
}

// Register inserts a decoded bitmap, evicting the oldest fragment if the
// pool is at MaxImageRegisterCount, and returns a ResourceLimitError if the
// bitmap itself exceeds MaxImageSize.
func (p *ImagePool) Register(width, height int, rgba []byte) (*ImageFragment, error) {
	if width > p.maxSize.Columns || height > p.maxSize.Lines {
		return nil, &ResourceLimitError{
			Resource: "sixel image dimensions",
			Limit:    uint64(p.maxSize.Columns * p.maxSize.Lines),
			Wanted:   uint64(width * height),
		}
	}
	if len(p.fragments) >= p.maxCount {
		p.evictOldest()
	}
	p.next++
	frag := &ImageFragment{ID: p.next, Handle: uuid.NewString(), Width: width, Height: height, RGBA: rgba}
	p.fragments[frag.ID] = frag
	return frag, nil
}

func (p *ImagePool) evictOldest() {
	var oldest ImageFragmentID
	for id := range p.fragments {
		if oldest == 0 || id < oldest {
			oldest = id
		}
	}
	delete(p.fragments, oldest)
}

// Lookup returns a registered fragment by id.
func (p *ImagePool) Lookup(id ImageFragmentID) (*ImageFragment, bool) {
	f, ok := p.fragments[id]
	return f, ok
}

// Discard removes a fragment, e.g. once no cell references it any longer.
func (p *ImagePool) Discard(id ImageFragmentID) {
	delete(p.fragments, id)
}

// Count returns the number of currently registered fragments.
func (p *ImagePool) Count() int { return len(p.fragments) }
