// Package soap builds and parses the XML envelopes exchanged with the
// legacy login backend.
package soap

import (
	"fmt"
	"strings"
)

const (
	// LoginNamespace is the XML namespace of the login service.
	LoginNamespace = "http://tempuri.org/"
	// ActionLogin is the SOAPAction URI for the Login call.
	ActionLogin = "http://tempuri.org/Login"
	// ContentType is the fixed request content type.
	ContentType = "text/xml; charset=utf-8"
)

const loginTemplate = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <Login xmlns="http://tempuri.org/">
      <userName>%s</userName>
      <password>%s</password>
    </Login>
  </soap:Body>
</soap:Envelope>`

// Escape makes s safe for inclusion in XML text content.
// The ampersand must be replaced first or the other escapes get
// double-escaped.
func Escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&#39;")
	return s
}

// BuildLoginRequest fills the login envelope template with the escaped
// credentials. It has no side effects.
func BuildLoginRequest(username, password string) string {
	return fmt.Sprintf(loginTemplate, Escape(username), Escape(password))
}
