package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClient_PredictPest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict/pest", r.URL.Path)

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, []byte("image-bytes"), data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"label":"Aphid","confidence":0.92,"top_k":["Aphid","Mite"]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)

	result, err := client.PredictPest(context.Background(), []byte("image-bytes"))
	require.NoError(t, err)
	require.Equal(t, "Aphid", result.Label)
	require.InDelta(t, 0.92, result.Confidence, 1e-9)
	// Неизвестные поля сервера не теряются.
	require.Contains(t, result.Extra, "top_k")
	require.NotContains(t, result.Extra, "label")
}

func TestClient_PredictCropHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/predict/crop", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"is_healthy":false,"disease":"Leaf Rust","description":"Fungal disease","confidence":0.81}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)

	result, err := client.PredictCropHealth(context.Background(), []byte("image-bytes"))
	require.NoError(t, err)
	require.False(t, result.IsHealthy)
	require.Equal(t, "Leaf Rust", result.Disease)
	require.Equal(t, "Fungal disease", result.Description)
	require.InDelta(t, 0.81, result.Confidence, 1e-9)
	require.Nil(t, result.Extra)
}

func TestClient_Predict_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not loaded"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)

	_, err := client.PredictPest(context.Background(), []byte("image-bytes"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 500")
}

func TestClient_Predict_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)

	_, err := client.PredictCropHealth(context.Background(), []byte("image-bytes"))
	require.Error(t, err)
}
