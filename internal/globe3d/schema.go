package globe3d

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
)

// Schema returns the indented JSON Schema of Config.
func Schema() ([]byte, error) {
	s := jsonschema.Reflect(&Config{})
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling config schema")
	}
	return out, nil
}
