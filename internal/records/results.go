// Package records holds the per-entity CRUD façades over the storage
// gateway. Every operation recovers storage errors at its boundary and
// returns the uniform result shape; underlying errors are logged, never
// propagated to the caller.
package records

// Result is the uniform outcome of a record operation.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok(data any) Result {
	return Result{Success: true, Data: data}
}

func failure(msg string) Result {
	return Result{Success: false, Error: msg}
}
