package engine

import (
	"strings"

	"github.com/tetratelabs/wazero/api"
)

// Export names of the engine ABI.
const (
	ExportCreate        = "engine_create"
	ExportRender        = "engine_render"
	ExportUpdate        = "engine_update"
	ExportResize        = "engine_resize"
	ExportKeyEvent      = "engine_key_event"
	ExportScrollToLeft  = "engine_scroll_to_left"
	ExportScrollToRight = "engine_scroll_to_right"
	ExportLeave         = "engine_leave"
	ExportFree          = "engine_free"
)

// Signature is the core type of one ABI export.
type Signature struct {
	Params  []api.ValueType
	Results []api.ValueType
}

func (s Signature) String() string {
	return "(" + valueTypes(s.Params) + ") -> (" + valueTypes(s.Results) + ")"
}

// Matches reports whether params and results equal the signature.
func (s Signature) Matches(params, results []api.ValueType) bool {
	return sameTypes(s.Params, params) && sameTypes(s.Results, results)
}

var (
	i32 = api.ValueTypeI32
	f64 = api.ValueTypeF64
)

// ABI lists every required export in a stable order.
var ABI = []struct {
	Name string
	Sig  Signature
}{
	{ExportCreate, Signature{Params: []api.ValueType{i32, i32, i32}, Results: []api.ValueType{i32}}},
	{ExportRender, Signature{Params: []api.ValueType{i32}}},
	{ExportUpdate, Signature{Params: []api.ValueType{i32, f64}}},
	{ExportResize, Signature{Params: []api.ValueType{i32, i32, i32}}},
	{ExportKeyEvent, Signature{Params: []api.ValueType{i32, i32, i32, i32}}},
	{ExportScrollToLeft, Signature{Params: []api.ValueType{i32}}},
	{ExportScrollToRight, Signature{Params: []api.ValueType{i32}}},
	{ExportLeave, Signature{Params: []api.ValueType{i32}}},
	{ExportFree, Signature{Params: []api.ValueType{i32}}},
}

func sameTypes(a, b []api.ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func valueTypes(ts []api.ValueType) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = api.ValueTypeName(t)
	}
	return strings.Join(names, ", ")
}
