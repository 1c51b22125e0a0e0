package shopping

import "github.com/anasouza/boutique/internal/domain"

// Wishlist is an ordered set of product ids the visitor marked for
// later. Order of insertion is preserved for display.
type Wishlist []int64

func NewWishlist() Wishlist {
	return Wishlist{}
}

func (w Wishlist) Contains(id int64) bool {
	for _, v := range w {
		if v == id {
			return true
		}
	}
	return false
}

// Add appends id unless already present.
func (w Wishlist) Add(id int64) Wishlist {
	if w.Contains(id) {
		return w
	}
	return append(w, id)
}

// Remove deletes id when present.
func (w Wishlist) Remove(id int64) Wishlist {
	for i, v := range w {
		if v == id {
			return append(w[:i:i], w[i+1:]...)
		}
	}
	return w
}

// Toggle removes id when present and appends it otherwise. Applying it
// twice restores the original membership.
func (w Wishlist) Toggle(id int64) Wishlist {
	if w.Contains(id) {
		return w.Remove(id)
	}
	return append(w, id)
}

// View resolves the stored ids to products, dropping ids whose product
// no longer exists.
func (w Wishlist) View(products []domain.Product) []domain.Product {
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	out := make([]domain.Product, 0, len(w))
	for _, id := range w {
		if p, found := byID[id]; found {
			out = append(out, p)
		}
	}
	return out
}
