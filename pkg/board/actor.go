package board

import (
	"encoding/json"

	"github.com/raids-lab/taskflow/dao/model"
)

// Actor is the explicit identity every core operation receives. There is no
// ambient "current user" below the HTTP layer; handlers translate the JWT
// into an Actor and pass it down.
type Actor struct {
	ID   uint
	Name string
	Role model.Role
}

// Optional distinguishes "leave unchanged" from "explicitly clear" in
// partial update commands. A field absent from the request JSON leaves
// Set false; an explicit null sets Set with a nil Value.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
