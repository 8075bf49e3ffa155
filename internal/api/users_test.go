package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mberrors "github.com/fanfou-go/client/internal/errors"
	"github.com/fanfou-go/client/internal/types"
)

func TestShowUser_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != ShowUserPath {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("id"); got != "12345" {
			t.Errorf("unexpected id: %q", got)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("missing Accept header")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"12345","name":"Alice"}`))
	}))
	defer srv.Close()

	u, err := ShowUser(context.Background(), srv.Client(), srv.URL, "12345")
	require.NoError(t, err)
	assert.Equal(t, types.ID("12345"), u.ID)
	assert.Equal(t, "Alice", u.Name)
}

func TestShowUser_EscapesID(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "~a b&c", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(`{"id":"~a b&c"}`))
	}))
	defer srv.Close()

	u, err := ShowUser(context.Background(), srv.Client(), srv.URL+"/", "~a b&c")
	require.NoError(t, err)
	assert.Equal(t, types.ID("~a b&c"), u.ID)
}

func TestShowUser_NotFound(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"request":"/users/show.json","error":"no such user"}`))
	}))
	defer srv.Close()

	u, err := ShowUser(context.Background(), srv.Client(), srv.URL, "ghost")
	require.Error(t, err)
	assert.Nil(t, u)

	mbe, ok := mberrors.As(err)
	require.True(t, ok)
	assert.Equal(t, mberrors.KindHTTPStatus, mbe.Kind)
	assert.Equal(t, http.StatusNotFound, mbe.StatusCode)
	assert.Equal(t, "no such user", mbe.Message)
	assert.Equal(t, ShowUserPath, mbe.Request)
}

func TestShowUser_DecodeFailures(t *testing.T) {
	t.Parallel()
	for name, body := range map[string]string{
		"malformed":  `{bad json`,
		"empty":      ``,
		"null":       `null`,
		"no id":      `{"name":"Alice"}`,
		"trailing":   `{"id":"1"} {"id":"2"}`,
		"wrong type": `["not","a","user"]`,
	} {
		body := body
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			u, err := ShowUser(context.Background(), srv.Client(), srv.URL, "1")
			require.Error(t, err)
			assert.Nil(t, u)
			mbe, ok := mberrors.As(err)
			require.True(t, ok)
			assert.Equal(t, mberrors.KindDecode, mbe.Kind)
		})
	}
}

func TestUsers_HTTPDoError(t *testing.T) {
	t.Parallel()
	hc := &http.Client{Transport: &errRT{}}
	calls := map[string]func() error{
		"show": func() error {
			_, err := ShowUser(context.Background(), hc, "http://example.com", "u")
			return err
		},
		"followers": func() error {
			_, err := UsersFollowers(context.Background(), hc, "http://example.com", "u", types.Paging{})
			return err
		},
		"friends": func() error {
			_, err := UsersFriends(context.Background(), hc, "http://example.com", "u", types.Paging{})
			return err
		},
	}
	for name, call := range calls {
		err := call()
		mbe, ok := mberrors.As(err)
		require.True(t, ok, name)
		assert.Equal(t, mberrors.KindNetwork, mbe.Kind, name)
		assert.Equal(t, mberrors.Recoverable, mbe.Category, name)
	}
}

func TestExecute_BodyReadError(t *testing.T) {
	t.Parallel()
	hc := &http.Client{Transport: bodyErrRT{}}
	var u types.User
	_, err := Execute(context.Background(), hc, "http://example.com", Request{Operation: "show_user", Path: ShowUserPath}, &u)
	mbe, ok := mberrors.As(err)
	require.True(t, ok)
	assert.Equal(t, mberrors.KindNetwork, mbe.Kind)
}

func TestExecute_OversizedBody(t *testing.T) {
	t.Parallel()
	hc := &http.Client{Transport: endlessRT{}}
	_, err := UsersFriends(context.Background(), hc, "http://example.com", "1", types.Paging{})
	mbe, ok := mberrors.As(err)
	require.True(t, ok)
	assert.Equal(t, mberrors.KindDecode, mbe.Kind)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestExecute_CtxCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ }))
	defer srv.Close()

	_, err := ShowUser(ctx, srv.Client(), srv.URL, "1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, hits)
}

func TestUsersFollowers_PageOfTwenty(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UsersFollowersPath, r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "12345", q.Get("id"))
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "20", q.Get("count"))
		assert.False(t, q.Has("since_id"))
		w.Header().Set("X-RateLimit-Limit", "150")
		w.Header().Set("X-RateLimit-Remaining", "12")
		w.Header().Set("X-RateLimit-Reset", "1700000000")
		_, _ = w.Write([]byte(usersJSON(20)))
	}))
	defer srv.Close()

	list, err := UsersFollowers(context.Background(), srv.Client(), srv.URL, "12345", types.Paging{Page: 1, Count: 20})
	require.NoError(t, err)
	require.Equal(t, 20, list.Len())
	for i, u := range list.Users {
		assert.Equal(t, types.ID(fmt.Sprintf("u%02d", i)), u.ID)
	}
	require.NotNil(t, list.RateLimit)
	assert.Equal(t, 12, list.RateLimit.Remaining)
}

func TestUsersFriends_NotFoundIsError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UsersFriendsPath, r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	list, err := UsersFriends(context.Background(), srv.Client(), srv.URL, "unknown", types.Paging{Page: 1, Count: 20})
	require.Error(t, err)
	assert.Nil(t, list)
	mbe, ok := mberrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, mbe.StatusCode)
	assert.True(t, mberrors.IsIrrecoverable(err))
}

func TestUsersFriends_ServerError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	}))
	defer srv.Close()

	_, err := UsersFriends(context.Background(), srv.Client(), srv.URL, "u", types.Paging{})
	require.Error(t, err)
	assert.False(t, mberrors.IsIrrecoverable(err))
	var mbe *mberrors.MicroBlogError
	require.True(t, errors.As(err, &mbe))
	assert.Equal(t, "maintenance", mbe.Body)
}

func TestUsersFriends_PartialListRejected(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"a"},{"screen_name":"missing id"}]`))
	}))
	defer srv.Close()

	list, err := UsersFriends(context.Background(), srv.Client(), srv.URL, "u", types.Paging{})
	require.Error(t, err)
	assert.Nil(t, list)
	mbe, _ := mberrors.As(err)
	require.NotNil(t, mbe)
	assert.Equal(t, mberrors.KindDecode, mbe.Kind)
}

func TestUsersFriends_ExtraPagingAndIDOverride(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, []string{"target"}, q["id"])
		assert.Equal(t, "lite", q.Get("mode"))
		assert.Equal(t, "x9", q.Get("max_id"))
		_, _ = w.Write([]byte(`{"users":[],"next_cursor":0}`))
	}))
	defer srv.Close()

	p := types.Paging{MaxID: "x9"}
	p.Extra = map[string][]string{"mode": {"lite"}, "id": {"ignored"}}
	list, err := UsersFriends(context.Background(), srv.Client(), srv.URL, "target", p)
	require.NoError(t, err)
	assert.Zero(t, list.Len())
	assert.Equal(t, "0", list.NextCursor)
	assert.Nil(t, list.RateLimit)
}
