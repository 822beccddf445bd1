package order

// Book holds open orders in arrival order.
type Book []Order

func (b *Book) Push(o Order) {
	*b = append(*b, o)
}

func (b Book) At(i int) (Order, bool) {
	if i < 0 || i >= len(b) {
		return Order{}, false
	}
	return b[i], true
}

func (b *Book) RemoveAt(i int) (Order, bool) {
	o, ok := b.At(i)
	if !ok {
		return Order{}, false
	}
	*b = append((*b)[:i], (*b)[i+1:]...)
	return o, true
}

// Age counts every deadline down by a day and returns the orders that ran out.
func (b *Book) Age() []Order {
	var expired []Order
	kept := (*b)[:0]
	for _, o := range *b {
		if o.DeadlineDays > 0 {
			o.DeadlineDays--
		}
		if o.DeadlineDays == 0 {
			expired = append(expired, o)
			continue
		}
		kept = append(kept, o)
	}
	*b = kept
	return expired
}

func (b Book) Clone() Book {
	out := make(Book, len(b))
	copy(out, b)
	return out
}
