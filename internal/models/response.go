package models

// Response is the envelope returned by adapters and the aggregation manager.
// When Success is true Data is populated. Source names the tier that
// produced Data.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
	Source  string `json:"source"`
}

// ActivityResponse is the response type shared by every activity source
type ActivityResponse = Response[[]Activity]

// OK builds a successful response
func OK[T any](data T, source string) Response[T] {
	return Response[T]{Success: true, Data: data, Source: source}
}

// Fail builds a failed response carrying the zero value of T
func Fail[T any](err error, source string) Response[T] {
	r := Response[T]{Source: source}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// OrElse returns r when it succeeded and accept approves its data,
// otherwise it evaluates fallback.
func (r Response[T]) OrElse(accept func(T) bool, fallback func() Response[T]) Response[T] {
	if r.Success && (accept == nil || accept(r.Data)) {
		return r
	}
	return fallback()
}

// NonEmpty is an OrElse acceptor for activity lists
func NonEmpty(list []Activity) bool {
	return len(list) > 0
}
