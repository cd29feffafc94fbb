package job

import "unsafe"

// Go methods can't introduce new type parameters, so the pool-scoped
// and default-pool variants are both free functions taking the pool
// (explicitly, or implicitly as defaultPool) as their first concern.

// CreateWithData allocates a new top-level job in the default pool
// and stores v in its inline payload. It returns [ErrPayloadTooLarge]
// if T doesn't fit in [PayloadSize] bytes, without allocating a job.
func CreateWithData[T any](fn Func, v T, opts ...Option) (Handle, error) {
	return CreateWithDataIn(defaultPool, fn, v, opts...)
}

// CreateChildWithData is [CreateWithData] for a job created as a
// child of parent.
func CreateChildWithData[T any](fn Func, parent Handle, v T, opts ...Option) (Handle, error) {
	return CreateChildWithDataIn(defaultPool, fn, parent, v, opts...)
}

// CreateWithDataIn is [CreateWithData] against an explicit pool
// instead of the default one.
func CreateWithDataIn[T any](p *Pool, fn Func, v T, opts ...Option) (Handle, error) {
	if err := checkPayloadFits[T](); err != nil {
		return Handle{}, err
	}
	h := p.Create(fn, opts...)
	SetData(h, v)
	return h, nil
}

// CreateChildWithDataIn is [CreateChildWithData] against an explicit
// pool instead of the default one.
func CreateChildWithDataIn[T any](p *Pool, fn Func, parent Handle, v T, opts ...Option) (Handle, error) {
	if err := checkPayloadFits[T](); err != nil {
		return Handle{}, err
	}
	h := p.CreateChild(fn, parent, opts...)
	SetData(h, v)
	return h, nil
}

func checkPayloadFits[T any]() error {
	var zero T
	if int(unsafe.Sizeof(zero)) > PayloadSize {
		return ErrPayloadTooLarge
	}
	return nil
}

// SetData writes v into h's inline payload. It is the caller's
// responsibility to use the same type T with [GetData]; this is the
// idiomatic-Go analogue of the original's reinterpret_cast onto a
// fixed-size byte buffer, and carries the same requirement that the
// writer and reader agree on the stored type. SetData is a no-op on
// the null handle or a handle whose slot has since been recycled.
func SetData[T any](h Handle, v T) {
	r := h.record()
	if r == nil {
		return
	}
	*(*T)(unsafe.Pointer(&r.payload[0])) = v
}

// GetData reads a value of type T previously written with [SetData]
// or [CreateWithData]. It returns the zero value of T for the null
// handle or a recycled slot.
func GetData[T any](h Handle) T {
	r := h.record()
	if r == nil {
		var zero T
		return zero
	}
	return *(*T)(unsafe.Pointer(&r.payload[0]))
}
