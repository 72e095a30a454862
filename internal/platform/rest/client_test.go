package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventadesk/ventadesk/internal/shared"
)

func TestGetDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/productos/disponibles", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"nombre":"Router"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	var out []struct {
		ID     int64  `json:"id"`
		Nombre string `json:"nombre"`
	}
	err := client.Get(context.Background(), "/productos/disponibles", &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Router", out[0].Nombre)
}

func TestPostSendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	var out struct {
		ID int64 `json:"id"`
	}
	err := client.Post(context.Background(), "/cotizaciones", map[string]any{"clienteId": 3}, &out)
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)
}

func TestPostWithoutResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	require.NoError(t, client.Post(context.Background(), "/cotizaciones/9/aceptacion", map[string]any{}, nil))
}

func TestStatusErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  error
		wantText string
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: shared.ErrNotFound},
		{name: "validation text body", status: http.StatusBadRequest, body: "nombre requerido", wantErr: shared.ErrRemote, wantText: "nombre requerido"},
		{name: "server failure", status: http.StatusInternalServerError, wantErr: shared.ErrRemote, wantText: "status 500"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, 5*time.Second)
			err := client.Get(context.Background(), "/x", &struct{}{})
			require.ErrorIs(t, err, tc.wantErr)
			if tc.wantText != "" {
				assert.Contains(t, err.Error(), tc.wantText)
			}
		})
	}
}

func TestNetworkFailureIsRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, time.Second)
	err := client.Get(context.Background(), "/x", &struct{}{})
	require.ErrorIs(t, err, shared.ErrRemote)
}

func TestGetBinary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	data, contentType, err := client.GetBinary(context.Background(), "/cotizaciones/1/pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}
