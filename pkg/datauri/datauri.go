// Package datauri parses and encodes RFC 2397 data URIs of the form
// data:<mediatype>[;param=value]*[;base64],<payload>.
package datauri

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Scheme is the prefix shared by every data URI.
const Scheme = "data:"

const defaultMediaType = "text/plain"

var (
	ErrMissingScheme = errors.New("data uri must begin with data:")
	ErrMalformed     = errors.New("malformed data uri")
	ErrDecode        = errors.New("data uri payload could not be decoded")
)

// URI is a decoded data URI.
type URI struct {
	MediaType string
	Params    map[string]string
	Base64    bool
	Data      []byte
}

// Parse decodes raw into a URI. A missing media type defaults to text/plain.
func Parse(raw string) (*URI, error) {
	if !strings.HasPrefix(raw, Scheme) {
		return nil, ErrMissingScheme
	}

	header, payload, ok := strings.Cut(raw[len(Scheme):], ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing payload separator", ErrMalformed)
	}

	u := &URI{Params: map[string]string{}}

	parts := strings.Split(header, ";")
	u.MediaType = strings.ToLower(strings.TrimSpace(parts[0]))
	if u.MediaType == "" {
		u.MediaType = defaultMediaType
	} else if !strings.Contains(u.MediaType, "/") {
		return nil, fmt.Errorf("%w: invalid media type %q", ErrMalformed, parts[0])
	}

	for i, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if p == "base64" && i == len(parts)-2 {
			u.Base64 = true
			continue
		}
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: invalid parameter %q", ErrMalformed, p)
		}
		u.Params[strings.ToLower(key)] = value
	}

	data, err := decode(payload, u.Base64)
	if err != nil {
		return nil, err
	}
	u.Data = data

	return u, nil
}

// Encode renders data as a base64 data URI with the given media type.
func Encode(mediaType string, data []byte) string {
	if mediaType == "" {
		mediaType = defaultMediaType
	}
	return Scheme + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// String re-encodes the URI in base64 form, preserving parameters.
func (u *URI) String() string {
	var b strings.Builder
	b.WriteString(Scheme)
	b.WriteString(u.MediaType)
	for k, v := range u.Params {
		b.WriteString(";" + k + "=" + v)
	}
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(u.Data))
	return b.String()
}

// EncodedData returns the payload as standard base64 text.
func (u *URI) EncodedData() string {
	return base64.StdEncoding.EncodeToString(u.Data)
}

func decode(payload string, isBase64 bool) ([]byte, error) {
	if !isBase64 {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return []byte(s), nil
	}

	payload = strings.TrimSpace(payload)
	if data, err := base64.StdEncoding.DecodeString(payload); err == nil {
		return data, nil
	}
	data, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return data, nil
}
