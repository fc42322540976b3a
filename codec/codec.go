package codec

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// Encode marshals a component or snapshot value to JSON.
func Encode(value any) ([]byte, error) {
	bz, err := json.Marshal(value)
	if err != nil {
		return nil, eris.Wrap(err, "encode failed")
	}
	return bz, nil
}

// EncodeTo streams the encoded value to w with indentation, for
// human-readable state dumps.
func EncodeTo(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return eris.Wrap(err, "encode failed")
	}
	return nil
}

// Decode unmarshals JSON produced by Encode back into a T.
func Decode[T any](bz []byte) (T, error) {
	value := new(T)
	if err := json.Unmarshal(bz, value); err != nil {
		return *value, eris.Wrap(err, "decode failed")
	}
	return *value, nil
}
