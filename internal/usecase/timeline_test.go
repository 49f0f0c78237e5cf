package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
	"wrestlenews/internal/adapter/social"
	"wrestlenews/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryPosts struct {
	saved [][]domain.SocialPost
	err   error
}

func (m *memoryPosts) SavePosts(ctx context.Context, posts []domain.SocialPost) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, posts)
	return nil
}

func newTimeline(t *testing.T, token string, h http.HandlerFunc) (*TimelineUseCase, *memoryPosts, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	store := &memoryPosts{}
	client := social.NewClient(srv.URL, token, time.Second, discardLogger())
	uc := NewTimelineUseCase(client, store, TimelineOptions{
		Username:    "JesseRodPodcast",
		MaxResults:  5,
		PostURLBase: "https://x.com/",
	}, discardLogger())
	return uc, store, &hits
}

func TestTimeline_Pull_NoCredential(t *testing.T) {
	uc, _, hits := newTimeline(t, "", func(w http.ResponseWriter, r *http.Request) {})

	posts, err := uc.Pull(context.Background())

	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Nil(t, posts)
	assert.Zero(t, hits.Load())
}

func TestTimeline_Pull(t *testing.T) {
	uc, store, hits := newTimeline(t, "token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2/users/by/username/JesseRodPodcast/tweets", r.URL.Path)
		w.Write([]byte(`{"data":[{"id":"11","text":"Raw was wild","created_at":"2025-06-02T10:00:00.000Z"},{"text":"no id"}]}`))
	})

	posts, err := uc.Pull(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.SocialPost{
		{Text: "Raw was wild", URL: "https://x.com/JesseRodPodcast/status/11", CreatedAt: "2025-06-02T10:00:00.000Z"},
		{Text: "no id"},
	}, posts)
	assert.EqualValues(t, 1, hits.Load())
	assert.Empty(t, store.saved, "pull never writes files")
}

func TestTimeline_Pull_UpstreamError(t *testing.T) {
	uc, _, hits := newTimeline(t, "token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"title":"Too Many Requests"}`))
	})

	_, err := uc.Pull(context.Background())

	var upstream *social.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.EqualValues(t, 1, hits.Load(), "no retries")
}

func TestTimeline_Push(t *testing.T) {
	uc, store, hits := newTimeline(t, "token", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/2/users/by/username/JesseRodPodcast":
			w.Write([]byte(`{"data":{"id":"99"}}`))
		case "/2/users/99/tweets":
			assert.Equal(t, "created_at", r.URL.Query().Get("tweet.fields"))
			w.Write([]byte(`{"data":[{"id":"5","text":"SmackDown tonight","created_at":"2025-06-06T18:00:00.000Z"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	posts, err := uc.Push(context.Background())

	require.NoError(t, err)
	want := []domain.SocialPost{{Text: "SmackDown tonight", URL: "https://x.com/JesseRodPodcast/status/5", CreatedAt: "2025-06-06T18:00:00.000Z"}}
	assert.Equal(t, want, posts)
	require.Len(t, store.saved, 1)
	assert.Equal(t, want, store.saved[0])
	assert.EqualValues(t, 2, hits.Load())
}

func TestTimeline_Push_EmptyTimelineWritesEmptyArray(t *testing.T) {
	uc, store, _ := newTimeline(t, "token", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/2/users/by/username/JesseRodPodcast" {
			w.Write([]byte(`{"data":{"id":"99"}}`))
			return
		}
		w.Write([]byte(`{"meta":{"result_count":0}}`))
	})

	posts, err := uc.Push(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
	require.Len(t, store.saved, 1)
}

func TestTimeline_Push_UserLookupFails(t *testing.T) {
	uc, store, hits := newTimeline(t, "token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := uc.Push(context.Background())

	var upstream *social.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	assert.EqualValues(t, 1, hits.Load())
	assert.Empty(t, store.saved)
}

func TestTimeline_Push_NoCredential(t *testing.T) {
	uc, store, hits := newTimeline(t, "", func(w http.ResponseWriter, r *http.Request) {})

	_, err := uc.Push(context.Background())

	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Zero(t, hits.Load())
	assert.Empty(t, store.saved)
}

func TestTimeline_Push_SaveFails(t *testing.T) {
	uc, store, _ := newTimeline(t, "token", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/2/users/by/username/JesseRodPodcast" {
			w.Write([]byte(`{"data":{"id":"1"}}`))
			return
		}
		w.Write([]byte(`{"data":[]}`))
	})
	store.err = errors.New("read-only file system")

	_, err := uc.Push(context.Background())

	assert.ErrorContains(t, err, "read-only file system")
}
