package gemini

// Structured-output type names follow the OpenAPI spelling the API expects.
const (
	TypeString  = "STRING"
	TypeNumber  = "NUMBER"
	TypeInteger = "INTEGER"
	TypeBoolean = "BOOLEAN"
	TypeArray   = "ARRAY"
	TypeObject  = "OBJECT"
)

// Schema is a declarative description of the shape a generative response is
// expected to conform to. It is serialized into the request's responseSchema
// constraint. Conformance is not guaranteed by the service, which is why the
// decoder still runs on every structured response.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty"`
	Maximum     *float64           `json:"maximum,omitempty"`
}

// Float returns a pointer for schema bound literals.
func Float(v float64) *float64 {
	return &v
}
