package domain

// Holder stores a single float64. The zero value holds 0.
//
// Holder does no locking; callers sharing one across goroutines must
// synchronize access themselves.
type Holder struct {
	val float64
}

func NewDefaultHolder() Holder {
	return Holder{}
}

// NewHolder accepts any value, including NaN and infinities.
func NewHolder(v float64) Holder {
	return Holder{val: v}
}

func (h Holder) Value() float64 {
	return h.val
}

func (h *Holder) SetValue(v float64) {
	h.val = v
}
