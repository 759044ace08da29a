package model

// SnackCategory groups menu entries on the snack selection screen
// (popcorn, drinks, snacks, combos).
type SnackCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Snack is one entry of the concession menu.
//
// Fields:
//  ID          – snack identifier.
//  Name        – display name (default language).
//  NameRU      – Russian display name, may be empty.
//  Description – short menu description.
//  Price       – unit price in soms.
//  Image       – image reference for the menu card.
//  CategoryID  – owning SnackCategory.
//  Available   – whether the snack can currently be ordered.
type Snack struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	NameRU      string `json:"name_ru,omitempty"`
	Description string `json:"description,omitempty"`
	Price       int    `json:"price"`
	Image       string `json:"image,omitempty"`
	CategoryID  int    `json:"category_id"`
	Available   bool   `json:"available"`
}

// CartItem is one snack order line.  The cart holds at most one line
// per snack id; quantity accumulates instead of duplicating lines,
// and a line whose quantity would drop below 1 is removed entirely.
type CartItem struct {
	Snack    Snack `json:"snack"`
	Quantity int   `json:"quantity"`
}

// LineTotal returns quantity × unit price for this line.
func (i CartItem) LineTotal() int { return i.Quantity * i.Snack.Price }
