package auth

import (
	"errors"
	"testing"

	"github.com/avolkov/PodKeeper/internal/models"
)

func TestTransportError_Retryable(t *testing.T) {
	cases := []struct {
		name string
		err  TransportError
		want bool
	}{
		{"no connection", TransportError{StatusCode: 0, Err: errors.New("refused")}, true},
		{"timeout", TransportError{Timeout: true}, true},
		{"500", TransportError{StatusCode: 500}, true},
		{"503", TransportError{StatusCode: 503}, true},
		{"400", TransportError{StatusCode: 400}, false},
		{"401", TransportError{StatusCode: 401}, false},
		{"404", TransportError{StatusCode: 404}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Retryable(); got != tc.want {
				t.Errorf("Retryable = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestTransportError_Kind(t *testing.T) {
	cases := []struct {
		name string
		err  TransportError
		want models.ErrorKind
	}{
		{"timeout wins over status", TransportError{Timeout: true, StatusCode: 500}, models.KindTimeout},
		{"no connection", TransportError{StatusCode: 0}, models.KindNetwork},
		{"server", TransportError{StatusCode: 502}, models.KindServer},
		{"client error", TransportError{StatusCode: 403}, models.KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Kind(); got != tc.want {
				t.Errorf("Kind = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestTransportError_Deterministic(t *testing.T) {
	e := TransportError{StatusCode: 500}
	if e.Retryable() != e.Retryable() || e.Kind() != e.Kind() {
		t.Error("classification must be deterministic for identical inputs")
	}
}
