// Package shopping models the per-visitor cart and wishlist kept in the
// cookie session. The types are plain values so the session layer can
// gob-encode them; nothing here touches the database.
package shopping

import (
	"encoding/gob"

	"github.com/anasouza/boutique/internal/domain"
)

func init() {
	gob.Register(Cart{})
	gob.Register(Wishlist{})
}

// Cart maps product id to desired purchase quantity. Quantities below 1
// are never stored; mutations that would produce one remove the entry.
type Cart map[int64]int

func NewCart() Cart {
	return make(Cart)
}

// Add increments the quantity for id, inserting at 1 when absent.
func (c Cart) Add(id int64) {
	c[id]++
}

// Remove deletes the entry for id. Absent ids are a no-op.
func (c Cart) Remove(id int64) {
	delete(c, id)
}

// SetQuantity overwrites the quantity for id, removing the entry when
// quantity drops below 1.
func (c Cart) SetQuantity(id int64, quantity int) {
	if quantity < 1 {
		delete(c, id)
		return
	}
	c[id] = quantity
}

// Quantity returns the stored quantity for id, zero when absent.
func (c Cart) Quantity(id int64) int {
	return c[id]
}

func (c Cart) Len() int {
	return len(c)
}

// ProductIDs returns the ids currently in the cart, in no particular
// order, for a single IN query.
func (c Cart) ProductIDs() []int64 {
	ids := make([]int64, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	return ids
}

// CartLine is one resolved cart entry.
type CartLine struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
	Subtotal float64        `json:"subtotal"`
}

// CartView is the rendered state of a cart against the current catalog.
type CartView struct {
	Lines []CartLine `json:"lines"`
	Total float64    `json:"total"`
}

// View resolves the cart against products. Entries whose product is not
// in the slice are skipped silently: the product was deleted after it
// went into the session and must not poison the page.
func (c Cart) View(products []domain.Product) CartView {
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	view := CartView{}
	for id, qty := range c {
		p, found := byID[id]
		if !found {
			continue
		}
		sub := p.Price * float64(qty)
		view.Lines = append(view.Lines, CartLine{Product: p, Quantity: qty, Subtotal: sub})
		view.Total += sub
	}
	return view
}
