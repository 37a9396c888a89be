// Package jsoncompat hides the JSON implementation behind a build tag. The
// default build uses sonic; building with -tags stdjson switches to
// encoding/json.
package jsoncompat

type Decoder interface {
	Decode(v any) error
}

type Encoder interface {
	Encode(v any) error
}
