package soap

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// ErrNoResult reports that no LoginResult element was found in an
// otherwise well-formed response.
var ErrNoResult = errors.New("no LoginResult element in response")

// ParseLoginResult extracts the boolean login result from a raw
// response body. It prefers a LoginResult element in the login
// namespace and falls back to one in any namespace. The element text
// is trimmed, lower-cased and compared against "true".
//
// Malformed XML or a missing element yields (false, err); the parser
// never panics and never returns a partial result.
func ParseLoginResult(body string) (bool, error) {
	dec := xml.NewDecoder(strings.NewReader(body))

	fallback := ""
	haveFallback := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return false, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "LoginResult" {
			continue
		}
		var text string
		if err := dec.DecodeElement(&text, &se); err != nil {
			return false, err
		}
		if se.Name.Space == LoginNamespace {
			return isTrue(text), nil
		}
		if !haveFallback {
			fallback = text
			haveFallback = true
		}
	}
	if haveFallback {
		return isTrue(fallback), nil
	}
	return false, ErrNoResult
}

func isTrue(text string) bool {
	return strings.ToLower(strings.TrimSpace(text)) == "true"
}
