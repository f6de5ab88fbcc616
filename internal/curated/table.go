// Package curated holds the embedded fallback photo catalog. It terminates
// the image resolution cascade: lookups always produce a URL, whatever the
// input.
package curated

import (
	"fmt"
	"time"

	"layoutgen/domain"
)

// DefaultURL answers when the catalog has no row for a room at all.
const DefaultURL = "https://images.pexels.com/photos/1571460/pexels-photo-1571460.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"

// Table maps canonical (room, style) pairs onto ordered photo URLs. Cells
// may hold several URLs; selection rotates over them by time.
type Table map[domain.Room]map[domain.Style][]string

// Options configures a Catalog. Now is the rotation seam; tests pin it to
// make cell selection deterministic.
type Options struct {
	Now func() time.Time
}

// Catalog is a read-only view over the embedded table.
type Catalog struct {
	table Table
	now   func() time.Time
}

func New(opts Options) *Catalog {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Catalog{table: defaultTable, now: now}
}

// Lookup resolves a photo URL for the canonical pair. Missing styles fall
// back to the room's modern cell, then to the first populated cell for the
// room in canonical style order, then to DefaultURL. It cannot fail.
func (c *Catalog) Lookup(room domain.Room, style domain.Style) string {
	cells, ok := c.table[room]
	if !ok || len(cells) == 0 {
		return DefaultURL
	}
	urls := cells[style]
	if len(urls) == 0 {
		urls = cells[domain.StyleModern]
	}
	if len(urls) == 0 {
		for _, fallback := range domain.Styles {
			if len(cells[fallback]) > 0 {
				urls = cells[fallback]
				break
			}
		}
	}
	if len(urls) == 0 {
		return DefaultURL
	}
	idx := int(c.now().Unix()) % len(urls)
	if idx < 0 {
		idx += len(urls)
	}
	return urls[idx]
}

func pexels(id int) string {
	return fmt.Sprintf("https://images.pexels.com/photos/%d/pexels-photo-%d.jpeg", id, id)
}

// defaultTable collapses the photo picks that used to be duplicated across
// app variants into one catalog. Multi-URL cells rotate; reuse of a photo
// across adjacent cells is intentional.
var defaultTable = Table{
	domain.RoomLiving: {
		domain.StyleModern:       {pexels(1571460), pexels(1643383)},
		domain.StyleTraditional:  {pexels(1648776)},
		domain.StyleScandinavian: {pexels(1571453)},
		domain.StyleIndustrial:   {pexels(1080721)},
		domain.StyleBohemian:     {pexels(1457842)},
	},
	domain.RoomBedroom: {
		domain.StyleModern:       {pexels(164595), pexels(271624)},
		domain.StyleTraditional:  {pexels(1743229)},
		domain.StyleScandinavian: {pexels(1454806)},
		domain.StyleIndustrial:   {pexels(1329711)},
		domain.StyleBohemian:     {pexels(1080696)},
	},
	domain.RoomKitchen: {
		domain.StyleModern:       {pexels(2724748), pexels(2062426)},
		domain.StyleTraditional:  {pexels(1599791)},
		domain.StyleScandinavian: {pexels(2062426)},
		domain.StyleIndustrial:   {pexels(2089698)},
		domain.StyleBohemian:     {pexels(1599791)},
	},
	domain.RoomBathroom: {
		domain.StyleModern:       {pexels(1358912)},
		domain.StyleTraditional:  {pexels(1454806)},
		domain.StyleScandinavian: {pexels(1080696)},
		domain.StyleIndustrial:   {pexels(1329711)},
		domain.StyleBohemian:     {pexels(1457842)},
	},
	domain.RoomOffice: {
		domain.StyleModern:       {pexels(667838), pexels(1181406)},
		domain.StyleTraditional:  {pexels(1181406)},
		domain.StyleScandinavian: {pexels(1080696)},
		domain.StyleIndustrial:   {pexels(1329711)},
		domain.StyleBohemian:     {pexels(1457842)},
	},
	domain.RoomDining: {
		domain.StyleModern:       {pexels(1395967)},
		domain.StyleTraditional:  {pexels(1648776)},
		domain.StyleScandinavian: {pexels(1571453)},
		domain.StyleIndustrial:   {pexels(1080721)},
		domain.StyleBohemian:     {pexels(1457842)},
	},
}
