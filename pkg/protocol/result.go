package protocol

// ResultKind tags the outcome of a read adapter.
type ResultKind int

const (
	// ResultOk means the read succeeded and Data is meaningful (possibly a
	// legitimately empty collection was promoted to ResultEmpty instead).
	ResultOk ResultKind = iota
	// ResultEmpty means the read succeeded and the chain genuinely holds no
	// data for the query.
	ResultEmpty
	// ResultFailed means the read failed; Data is the zero value and Err
	// carries the cause. Callers must not render Data as real chain state.
	ResultFailed
)

// Result distinguishes "no data" from "fetch failed" on read paths. Collapsing
// both to an empty value hides outages from the caller, so reads return a
// tagged result instead.
type Result[T any] struct {
	Kind ResultKind
	Data T
	Err  error
}

// Ok wraps a successful read.
func Ok[T any](data T) Result[T] {
	return Result[T]{Kind: ResultOk, Data: data}
}

// EmptyResult marks a successful read that found no data.
func EmptyResult[T any]() Result[T] {
	return Result[T]{Kind: ResultEmpty}
}

// Failed marks a read that could not be served.
func Failed[T any](err error) Result[T] {
	return Result[T]{Kind: ResultFailed, Err: err}
}

// IsOk reports whether the read succeeded with data.
func (r Result[T]) IsOk() bool { return r.Kind == ResultOk }

// IsEmpty reports whether the read succeeded but found nothing.
func (r Result[T]) IsEmpty() bool { return r.Kind == ResultEmpty }

// IsFailed reports whether the read failed.
func (r Result[T]) IsFailed() bool { return r.Kind == ResultFailed }
