package json

import (
	"variant.mleku.dev/codec"
	"variant.mleku.dev/printer"
	"variant.mleku.dev/value"
)

// Document carries a value through the codec interfaces.
//
// Create one with:
//
//	doc := &json.Document{}
//
// and Unmarshal into it, or set V and Marshal it.
type Document struct {
	V value.T
	// Opts apply to Unmarshal.
	Opts []Option
}

var (
	_ codec.JSON = (*Document)(nil)
	_ codec.Text = (*Document)(nil)
)

// Marshal appends the compact JSON form of the document value.
func (d *Document) Marshal(dst []byte) (b []byte, err error) { return Marshal(dst, d.V) }

// Unmarshal reads the first JSON value of b into the document and returns the rest.
func (d *Document) Unmarshal(b []byte) (r []byte, err error) {
	var v value.T
	if v, r, err = Unmarshal(b, d.Opts...); chk.T(err) {
		return
	}
	d.V = v
	return
}

// AppendText appends the textual rendering of the document value.
func (d *Document) AppendText(dst []byte) (b []byte) { return printer.Append(dst, d.V) }
