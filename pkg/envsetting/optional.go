package envsetting

// optional distinguishes a declared default from the zero value of its type.
type optional[T any] struct {
	value T
	ok    bool
}

func some[T any](v T) optional[T] {
	return optional[T]{value: v, ok: true}
}

func (o optional[T]) get() (T, bool) {
	return o.value, o.ok
}
