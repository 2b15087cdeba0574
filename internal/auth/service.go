package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avolkov/PodKeeper/internal/errlist"
	"github.com/avolkov/PodKeeper/internal/models"
	"github.com/avolkov/PodKeeper/internal/soap"
)

// ErrLoginInFlight reports that a login attempt was rejected because
// another one is still running. At most one attempt runs at a time;
// a second caller is turned away, not queued.
var ErrLoginInFlight = errors.New("login already in flight")

// msgInvalidCredentials is the fixed user-facing message for a
// rejected username/password pair.
const msgInvalidCredentials = "invalid username or password"

// Doer abstracts the HTTP client so tests can stand in for the
// network.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Service orchestrates the login flow: it builds the SOAP envelope,
// posts it with bounded retries, parses the result, updates the
// session flag and converts every failure into exactly one typed
// error on the shared list.
type Service struct {
	client   Doer
	endpoint string
	// attempts is the total number of tries, including the first.
	attempts int
	delay    time.Duration
	session  *Session
	errors   *errlist.List
	log      *zap.Logger

	busy    atomic.Bool
	loading atomic.Bool
}

// NewService constructs a Service. attempts below one is clamped to
// one.
func NewService(client Doer, endpoint string, attempts int, delay time.Duration, session *Session, errs *errlist.List, log *zap.Logger) *Service {
	if attempts < 1 {
		attempts = 1
	}
	return &Service{
		client:   client,
		endpoint: endpoint,
		attempts: attempts,
		delay:    delay,
		session:  session,
		errors:   errs,
		log:      log,
	}
}

// IsLoading reports whether a login attempt is currently running.
func (s *Service) IsLoading() bool {
	return s.loading.Load()
}

// Login authenticates the given credentials against the backend.
// It returns (true, nil) on success, (false, *models.AppError) on any
// classified failure, and (false, ErrLoginInFlight) when another
// attempt is already running. Raw transport errors never escape.
func (s *Service) Login(ctx context.Context, username, password string) (bool, error) {
	if !s.busy.CompareAndSwap(false, true) {
		s.log.Warn("login rejected, another attempt in flight")
		return false, ErrLoginInFlight
	}
	defer s.busy.Store(false)

	s.loading.Store(true)
	defer s.loading.Store(false)

	s.errors.Clear()

	body := soap.BuildLoginRequest(username, password)

	var (
		respBody string
		last     *TransportError
	)
	for attempt := 1; attempt <= s.attempts; attempt++ {
		var terr *TransportError
		respBody, terr = s.send(ctx, body)
		if terr == nil {
			last = nil
			break
		}
		last = terr
		s.log.Warn("login transport failure",
			zap.Int("attempt", attempt),
			zap.Int("status", terr.StatusCode),
			zap.Bool("timeout", terr.Timeout),
			zap.Error(terr.Err),
		)
		if !terr.Retryable() || attempt == s.attempts {
			break
		}
		time.Sleep(s.delay)
	}
	if last != nil {
		return false, s.fail(transportAppError(last))
	}

	result, perr := soap.ParseLoginResult(respBody)
	if perr != nil {
		return false, s.fail(&models.AppError{
			Kind:    models.KindParsing,
			Message: "could not parse server response",
			Details: perr.Error(),
		})
	}
	if !result {
		return false, s.fail(&models.AppError{
			Kind:    models.KindAuthentication,
			Message: msgInvalidCredentials,
		})
	}

	if err := s.session.SetAuthenticated(true); err != nil {
		s.log.Error("failed to persist session after login", zap.Error(err))
	}
	s.log.Info("login succeeded", zap.String("user", username))
	return true, nil
}

// Logout is a pure local transition to the unauthenticated state. It
// has no network effect; the only possible failure is the storage
// write, which is passed through.
func (s *Service) Logout() error {
	s.log.Info("logout")
	return s.session.SetAuthenticated(false)
}

// fail forces the session to unauthenticated and records appErr as
// the single typed error for this attempt.
func (s *Service) fail(appErr *models.AppError) error {
	if err := s.session.SetAuthenticated(false); err != nil {
		s.log.Error("failed to persist session after failure", zap.Error(err))
	}
	s.errors.Add(appErr)
	s.log.Warn("login failed", zap.String("kind", string(appErr.Kind)), zap.String("message", appErr.Message))
	return appErr
}

// send performs one POST of the login envelope and reads the response
// body. Any failure is returned as a classified TransportError.
func (s *Service) send(ctx context.Context, body string) (string, *TransportError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(body))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", soap.ContentType)
	req.Header.Set("SOAPAction", soap.ActionLogin)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", classifySendError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifySendError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{StatusCode: resp.StatusCode}
	}
	return string(data), nil
}

// classifySendError turns a client error into a TransportError,
// separating timeouts from plain connection failures.
func classifySendError(err error) *TransportError {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &TransportError{Timeout: true, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TransportError{Timeout: true, Err: err}
	}
	return &TransportError{Err: err}
}

// transportAppError synthesizes the typed error for a terminal
// transport failure.
func transportAppError(te *TransportError) *models.AppError {
	appErr := &models.AppError{
		Kind:    te.Kind(),
		Details: te.Error(),
	}
	switch appErr.Kind {
	case models.KindTimeout:
		appErr.Message = "request timed out"
	case models.KindNetwork:
		appErr.Message = "no connection to the server"
	case models.KindServer:
		appErr.Message = "server error"
		appErr.StatusCode = te.StatusCode
	default:
		appErr.Message = fmt.Sprintf("unexpected response status %d", te.StatusCode)
	}
	return appErr
}
