package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pollbuilder/internal/model"
	"pollbuilder/internal/storage"
	storeMocks "pollbuilder/internal/storage/mocks"
)

func TestFetch_FromStore(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Get", ctx, "documents/abc.pdf").
			Return(io.NopCloser(strings.NewReader("%PDF-1.4")), storage.ObjectInfo{}, nil)

		b, err := New(mStore, nil, 0).Fetch(ctx, model.DocumentMetadata{StorageKey: "documents/abc.pdf", URL: "http://unused"})

		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4", string(b))
		mStore.AssertExpectations(t)
	})

	t.Run("store error", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Get", ctx, "k").Return(nil, storage.ObjectInfo{}, errors.New("gone"))

		_, err := New(mStore, nil, 0).Fetch(ctx, model.DocumentMetadata{StorageKey: "k"})

		assert.ErrorIs(t, err, ErrFetch)
		assert.Contains(t, err.Error(), "gone")
	})

	t.Run("too large", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Get", ctx, "k").
			Return(io.NopCloser(strings.NewReader("0123456789")), storage.ObjectInfo{}, nil)

		_, err := New(mStore, nil, 4).Fetch(ctx, model.DocumentMetadata{StorageKey: "k"})

		assert.ErrorIs(t, err, ErrTooLarge)
	})
}

func TestFetch_FromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("docx-bytes"))
	}))
	defer srv.Close()

	f := New(nil, srv.Client(), 1024)
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		b, err := f.Fetch(ctx, model.DocumentMetadata{URL: srv.URL + "/doc.docx"})
		require.NoError(t, err)
		assert.Equal(t, "docx-bytes", string(b))
	})

	t.Run("non-2xx", func(t *testing.T) {
		_, err := f.Fetch(ctx, model.DocumentMetadata{URL: srv.URL + "/missing"})
		assert.ErrorIs(t, err, ErrFetch)
		assert.Equal(t, "Failed to fetch document", err.Error())
	})

	t.Run("no location", func(t *testing.T) {
		_, err := f.Fetch(ctx, model.DocumentMetadata{})
		assert.ErrorIs(t, err, ErrFetch)
	})
}

func TestNewHTTPClient(t *testing.T) {
	c := NewHTTPClient(0)
	assert.NotNil(t, c.Transport)
}
