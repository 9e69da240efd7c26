package result

// Of holds either a value or the error that prevented producing it.
type Of[T any] struct {
	v   *T
	err error
}

func (r Of[T]) Unwrap() *T {
	if nil != r.err {
		panic("cannot get value of error result")
	}

	return r.v
}

func (r Of[T]) Err() error {
	return r.err
}

func (r Of[T]) IsErr() bool {
	return nil != r.err
}

func Ok[T any](v *T) Of[T] {
	return Of[T]{v: v, err: nil}
}

func Err[T any](err error) Of[T] {
	return Of[T]{err: err, v: nil}
}

// Values returns the values of the successful results, in order.
func Values[T any](rs []Of[T]) []*T {
	out := make([]*T, 0, len(rs))
	for _, r := range rs {
		if !r.IsErr() {
			out = append(out, r.v)
		}
	}

	return out
}
