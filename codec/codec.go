// Package codec is the set of append style interfaces the value renderings implement.
package codec

// JSON is an append style version of json.Marshaler and json.Unmarshaler.
type JSON interface {
	// Marshal converts the data of the type into JSON, appending it to the provided
	// slice and returning the extended slice.
	Marshal(dst []byte) (b []byte, err error)
	// Unmarshal decodes a JSON form of a type back into the runtime form, and
	// returns whatever remains after the type has been decoded out.
	Unmarshal(b []byte) (r []byte, err error)
}

// Text is implemented by types with a human readable form that cannot fail.
type Text interface {
	// AppendText appends the textual form to dst.
	AppendText(dst []byte) (b []byte)
}
