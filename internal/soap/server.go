package soap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Credentials are the username and password carried by a login envelope.
type Credentials struct {
	Username string
	Password string
}

// ParseLoginRequest extracts the credentials from an incoming login
// envelope. Used by the development stub server.
func ParseLoginRequest(body string) (Credentials, error) {
	var creds Credentials
	dec := xml.NewDecoder(strings.NewReader(body))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Credentials{}, fmt.Errorf("malformed login request: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch strings.ToLower(se.Name.Local) {
		case "username":
			if err := dec.DecodeElement(&creds.Username, &se); err != nil {
				return Credentials{}, fmt.Errorf("malformed userName element: %w", err)
			}
		case "password":
			if err := dec.DecodeElement(&creds.Password, &se); err != nil {
				return Credentials{}, fmt.Errorf("malformed password element: %w", err)
			}
		}
	}
	return creds, nil
}

const loginResponseTemplate = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <LoginResponse xmlns="http://tempuri.org/">
      <LoginResult>%t</LoginResult>
    </LoginResponse>
  </soap:Body>
</soap:Envelope>`

// RenderLoginResponse renders the login response envelope for the
// given outcome.
func RenderLoginResponse(result bool) string {
	return fmt.Sprintf(loginResponseTemplate, result)
}
