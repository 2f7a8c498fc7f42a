package service

import "encoding/json"

// HeaderConfiguration carries the JSON activation configuration on requests
// dexi sends to an app.
const HeaderConfiguration = "X-DexiIO-Configuration"

// Rows are the records exchanged with data source and storage apps.
type Rows []map[string]any

// RowsOf collects rows into Rows.
func RowsOf(rows ...map[string]any) Rows {
	out := make(Rows, 0, len(rows))
	return append(out, rows...)
}

// DynamicSchemaPayload is posted to a component to compute its schema.
type DynamicSchemaPayload[T any] struct {
	Options T                          `json:"options"`
	Inputs  map[string]json.RawMessage `json:"inputs,omitempty"`
}

// DataStoragePayload is posted to a data storage component with the rows to
// write.
type DataStoragePayload[T any] struct {
	DynamicSchemaPayload[json.RawMessage]

	Config T    `json:"config"`
	Rows   Rows `json:"rows"`
}

// DynamicSchemaConfig is the configuration part of a dynamic schema request.
// InputConnectionSchema is nil when dexi does not know the inputs.
type DynamicSchemaConfig[T any] struct {
	Options               T      `json:"options"`
	InputConnectionSchema Schema `json:"inputConnectionSchema,omitempty"`
}

// AssetReference points at a dexi asset such as a robot or a dataset.
type AssetReference struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	PathName string `json:"pathName,omitempty"`
	Name     string `json:"name,omitempty"`
}
