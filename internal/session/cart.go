package session

import "sort"

// Line is one cart entry. Name and Price are snapshotted when the item is added.
type Line struct {
	ItemID    uint    `json:"item_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Allergies string  `json:"allergies,omitempty"`
	Position  int     `json:"position"`
}

func (l Line) Total() float64 {
	return l.Price * float64(l.Quantity)
}

// Cart is keyed by menu item id; Position only orders lines for display.
type Cart struct {
	Lines map[uint]Line `json:"lines,omitempty"`
	Next  int           `json:"next,omitempty"`
}

// Add puts quantity of an item in the cart. An item already present keeps its
// position, gains the quantity, and takes the new allergy note if one is given.
func (c *Cart) Add(itemID uint, name string, price float64, quantity int, allergies string) {
	if quantity < 1 {
		quantity = 1
	}
	if c.Lines == nil {
		c.Lines = make(map[uint]Line)
	}
	line, ok := c.Lines[itemID]
	if !ok {
		line = Line{ItemID: itemID, Position: c.Next}
		c.Next++
	}
	line.Name = name
	line.Price = price
	line.Quantity += quantity
	if allergies != "" {
		line.Allergies = allergies
	}
	c.Lines[itemID] = line
}

// SetQuantity replaces an item's quantity; zero or less removes the line.
// It reports whether the item was in the cart.
func (c *Cart) SetQuantity(itemID uint, quantity int) bool {
	line, ok := c.Lines[itemID]
	if !ok {
		return false
	}
	if quantity <= 0 {
		delete(c.Lines, itemID)
		return true
	}
	line.Quantity = quantity
	c.Lines[itemID] = line
	return true
}

func (c *Cart) Remove(itemID uint) bool {
	if _, ok := c.Lines[itemID]; !ok {
		return false
	}
	delete(c.Lines, itemID)
	return true
}

// Items returns the lines in the order they were first added.
func (c *Cart) Items() []Line {
	items := make([]Line, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, line)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	return items
}

// Subtotal sums price x quantity over Items, in display order.
func (c *Cart) Subtotal() float64 {
	var subtotal float64
	for _, line := range c.Items() {
		subtotal += line.Total()
	}
	return subtotal
}

func (c *Cart) Count() int {
	n := 0
	for _, line := range c.Lines {
		n += line.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) Clear() {
	c.Lines = nil
	c.Next = 0
}
