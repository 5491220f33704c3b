package observer

// Observer consumes a push-based stream of values: zero or more OnNext
// calls followed by at most one OnError or OnCompleted.
//
// An observer is just a bundle of three notification capabilities. The raw
// form makes no promises; the wrappers in this package layer the observer
// contract on top of it (see Safe, Checked, Synchronize, SynchronizeAsync).
type Observer[T any] interface {
	// OnNext delivers the next value in the stream.
	OnNext(value T)

	// OnError terminates the stream with an error.
	OnError(err error)

	// OnCompleted terminates the stream normally.
	OnCompleted()
}

// funcObserver adapts three callbacks to the Observer interface.
type funcObserver[T any] struct {
	onNext      func(T)
	onError     func(error)
	onCompleted func()
}

// Create builds an observer from up to three callbacks. Nil callbacks get
// defaults: OnNext drops the value, OnCompleted is a no-op, and OnError
// re-raises the error at the call site — appropriate only for leaf
// observers whose invoker can handle it.
func Create[T any](onNext func(T), onError func(error), onCompleted func()) Observer[T] {
	if onNext == nil {
		onNext = func(T) {}
	}
	if onError == nil {
		onError = func(err error) { panic(err) }
	}
	if onCompleted == nil {
		onCompleted = func() {}
	}
	return &funcObserver[T]{onNext: onNext, onError: onError, onCompleted: onCompleted}
}

// CreateNext builds an observer from an OnNext callback alone, with the
// default error and completion handlers.
func CreateNext[T any](onNext func(T)) Observer[T] {
	return Create[T](onNext, nil, nil)
}

func (o *funcObserver[T]) OnNext(value T) { o.onNext(value) }
func (o *funcObserver[T]) OnError(err error) {
	o.onError(err)
}
func (o *funcObserver[T]) OnCompleted() { o.onCompleted() }

// Nop returns an observer that ignores every notification, including errors.
func Nop[T any]() Observer[T] {
	return &funcObserver[T]{
		onNext:      func(T) {},
		onError:     func(error) {},
		onCompleted: func() {},
	}
}
