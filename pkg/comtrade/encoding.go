package comtrade

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// ErrEncoding is returned when text sections cannot be converted from
// the caller-specified character set. It can be checked with errors.Is.
var ErrEncoding = errors.New("comtrade: text encoding error")

// decodeText converts raw bytes in the named IANA character set to
// UTF-8. An empty name passes the bytes through unchanged.
func decodeText(data []byte, name string) ([]byte, error) {
	if name == "" {
		return data, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: unsupported character set %q", ErrEncoding, name)
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("%w: converting from %s: %v", ErrEncoding, name, err)
	}
	return out, nil
}
