package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avolkov/PodKeeper/internal/errlist"
	"github.com/avolkov/PodKeeper/internal/models"
	"github.com/avolkov/PodKeeper/internal/soap"
	"github.com/avolkov/PodKeeper/internal/storage"
)

type mockDoer struct {
	DoFunc func(req *http.Request) (*http.Response, error)
	calls  atomic.Int32
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	m.calls.Add(1)
	return m.DoFunc(req)
}

// timeoutError satisfies net.Error with Timeout() == true.
type timeoutError struct{}

func (timeoutError) Error() string   { return "deadline exceeded" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func xmlResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

type testEnv struct {
	service *Service
	session *Session
	errors  *errlist.List
}

func newTestEnv(t *testing.T, doer Doer, attempts int) *testEnv {
	t.Helper()
	st := storage.NewMemStore()
	log := zap.NewNop()
	session := NewSession(st, log)
	errs := errlist.New(st, log)
	return &testEnv{
		service: NewService(doer, "https://backend/login.asmx", attempts, 0, session, errs, log),
		session: session,
		errors:  errs,
	}
}

func TestLogin_Success(t *testing.T) {
	doer := &mockDoer{DoFunc: func(req *http.Request) (*http.Response, error) {
		return xmlResponse(200, soap.RenderLoginResponse(true)), nil
	}}
	env := newTestEnv(t, doer, 3)

	ok, err := env.service.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, env.session.IsAuthenticated())
	assert.Empty(t, env.errors.All())
	assert.Equal(t, int32(1), doer.calls.Load())
	assert.False(t, env.service.IsLoading())
}

func TestLogin_SetsRequestHeaders(t *testing.T) {
	var gotContentType, gotAction, gotRequestID string
	doer := &mockDoer{DoFunc: func(req *http.Request) (*http.Response, error) {
		gotContentType = req.Header.Get("Content-Type")
		gotAction = req.Header.Get("SOAPAction")
		gotRequestID = req.Header.Get("X-Request-ID")
		return xmlResponse(200, soap.RenderLoginResponse(true)), nil
	}}
	env := newTestEnv(t, doer, 1)

	_, err := env.service.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "text/xml; charset=utf-8", gotContentType)
	assert.Equal(t, "http://tempuri.org/Login", gotAction)
	assert.NotEmpty(t, gotRequestID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	doer := &mockDoer{DoFunc: func(req *http.Request) (*http.Response, error) {
		return xmlResponse(200, soap.RenderLoginResponse(false)), nil
	}}
	env := newTestEnv(t, doer, 3)

	ok, err := env.service.Login(context.Background(), "alice", "wrong")
	assert.False(t, ok)
	assert.False(t, env.session.IsAuthenticated())

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.KindAuthentication, appErr.Kind)
	assert.Equal(t, "invalid username or password", appErr.Message)

	all := env.errors.All()
	require.Len(t, all, 1)
	assert.Equal(t, models.KindAuthentication, all[0].Kind)
	// a credential rejection is terminal, not retried
	assert.Equal(t, int32(1), doer.calls.Load())
}

func TestLogin_MalformedResponse(t *testing.T) {
	doer := &mockDoer{DoFunc: func(req *http.Request) (*http.Response, error) {
		return xmlResponse(200, "<<< not xml"), nil
	}}
	env := newTestEnv(t, doer, 3)

	ok, err := env.service.Login(context.Background(), "alice", "pw")
	assert.False(t, ok)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.KindParsing, appErr.Kind)
	assert.False(t, env.session.IsAuthenticated())
}

func TestLogin_NoConnection_ExhaustsRetries(t *testing.T) {
	doer := &mockDoer{DoFunc: func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}}
	env := newTestEnv(t, doer, 3)

	ok, err := env.service.Login(context.Background(), "alice", "pw")
	assert.False(t, ok)
	assert.False(t, env.session.IsAuthenticated())
	assert.Equal(t, int32(3), doer.calls.Load())

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.KindNetwork, appErr.Kind)
	require.Len(t, env.errors.All(), 1)
}

func TestLogin_RetryThenSuccess(t *testing.T) {
	doer := &mockDoer{}
	doer.DoFunc = func(req *http.Request) (*http.Response, error) {
		if doer.calls.Load() == 1 {
			return nil, errors.New("connection refused")
		}
		return xmlResponse(200, soap.RenderLoginResponse(true)), nil
	}
	env := newTestEnv(t, doer, 3)

	ok, err := env.service.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, env.session.IsAuthenticated())
	assert.Equal(t, int32(2), doer.calls.Load())
	assert.Empty(t, env.errors.All())
}

func TestLogin_ServerError(t *testing.T) {
	doer := &mockDoer{DoFunc: func(req *http.Request) (*http.Response, error) {
		return xmlResponse(503, "upstream down"), nil
	}}
	env := newTestEnv(t, doer, 2)

	_, err := env.service.Login(context.Background(), "alice", "pw")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.KindServer, appErr.Kind)
	assert.Equal(t, 503, appErr.StatusCode)
	// 5xx is retryable
	assert.Equal(t, int32(2), doer.calls.Load())
}

func TestLogin_ClientErrorNotRetried(t *testing.T) {
	doer := &mockDoer{DoFunc: func(req *http.Request) (*http.Response, error) {
		return xmlResponse(404, "not here"), nil
	}}
	env := newTestEnv(t, doer, 3)

	_, err := env.service.Login(context.Background(), "alice", "pw")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.KindUnknown, appErr.Kind)
	assert.Equal(t, int32(1), doer.calls.Load())
}

func TestLogin_Timeout(t *testing.T) {
	doer := &mockDoer{DoFunc: func(req *http.Request) (*http.Response, error) {
		return nil, timeoutError{}
	}}
	env := newTestEnv(t, doer, 2)

	_, err := env.service.Login(context.Background(), "alice", "pw")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.KindTimeout, appErr.Kind)
	assert.Equal(t, int32(2), doer.calls.Load())
}

func TestLogin_ClearsPriorErrors(t *testing.T) {
	doer := &mockDoer{DoFunc: func(req *http.Request) (*http.Response, error) {
		return xmlResponse(200, soap.RenderLoginResponse(true)), nil
	}}
	env := newTestEnv(t, doer, 1)
	env.errors.Add(&models.AppError{Kind: models.KindNetwork, Message: "stale"})

	ok, err := env.service.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, env.errors.All())
}

func TestLogin_RejectsConcurrentAttempt(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	doer := &mockDoer{DoFunc: func(req *http.Request) (*http.Response, error) {
		close(entered)
		<-release
		return xmlResponse(200, soap.RenderLoginResponse(true)), nil
	}}
	env := newTestEnv(t, doer, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		ok, err := env.service.Login(context.Background(), "alice", "pw")
		assert.True(t, ok)
		assert.NoError(t, err)
	}()

	<-entered
	ok, err := env.service.Login(context.Background(), "alice", "pw")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrLoginInFlight)
	// the rejected attempt made no network request
	assert.Equal(t, int32(1), doer.calls.Load())

	close(release)
	<-done
	assert.Empty(t, env.errors.All())
	assert.True(t, env.session.IsAuthenticated())
}

func TestLogout(t *testing.T) {
	doer := &mockDoer{DoFunc: func(req *http.Request) (*http.Response, error) {
		return xmlResponse(200, soap.RenderLoginResponse(true)), nil
	}}
	env := newTestEnv(t, doer, 1)

	_, err := env.service.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	require.True(t, env.session.IsAuthenticated())

	require.NoError(t, env.service.Logout())
	assert.False(t, env.session.IsAuthenticated())
	// logout is local only
	assert.Equal(t, int32(1), doer.calls.Load())
	assert.Empty(t, env.errors.All())
}
