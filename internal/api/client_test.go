package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avaliaccess/internal/domain"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestClient_SearchSendsOnlyNonBlankFilters(t *testing.T) {
	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/establishments/search", r.URL.Path)
		rawQuery = r.URL.RawQuery

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.EstablishmentPage{
			Content:       []domain.EstablishmentSummary{{ID: 42, Name: "Museu do Futebol", City: "sao-paulo", State: "SP"}},
			TotalElements: 1,
			TotalPages:    1,
			Size:          10,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, testLogger())
	page, err := client.Search(context.Background(), SearchParams{
		Name:  "  Museu ",
		State: "SP",
		City:  "",
		Type:  "   ",
		Size:  10,
	})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(42), page.Content[0].ID)

	assert.Equal(t, "name=Museu&state=SP&page=0&size=10", rawQuery)
	assert.NotContains(t, rawQuery, "city=")
	assert.NotContains(t, rawQuery, "type=")
	assert.NotContains(t, rawQuery, "minRating")
}

func TestClient_AttachesBearerTokenAndRequestID(t *testing.T) {
	token := "abc123"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Write([]byte(`{"id":7,"name":"Ana","email":"ana@example.com","roles":["USER"]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, TokenFunc(func() string { return token }), testLogger())
	me, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Name)
}

func TestClient_AnonymousRequestHasNoAuthorization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"content":[],"totalElements":0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, TokenFunc(func() string { return "" }), testLogger())
	page, err := client.Search(context.Background(), SearchParams{Name: "ab"})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
}

func TestClient_ErrorResponseIsParsed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Validation failed","timestamp":"2024-05-01T10:00:00","details":["email: must be a well-formed email address"]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, testLogger())
	_, err := client.Login(context.Background(), LoginRequest{Email: "x", Password: "y"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Validation failed", apiErr.Message)
	assert.Equal(t, []string{"email: must be a well-formed email address"}, apiErr.Details)
	assert.Equal(t, "Validation failed: email: must be a well-formed email address", UserMessage(err))
}

func TestClient_PlainTextErrorAndUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Unauthorized"))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, testLogger())
	_, err := client.Me(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, "Unauthorized", UserMessage(err))
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, nil, testLogger())
	_, err := client.Search(context.Background(), SearchParams{Name: "Centro"})
	require.Error(t, err)
	assert.Equal(t, 0, StatusCode(err))
}

func TestClient_CreateReviewValidatesRating(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil, testLogger())
	_, err := client.CreateReview(context.Background(), 1, domain.ReviewRequest{Rating: 6})
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestClient_CreateReviewPostsFlattenedFeatures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/reviews/establishment/9", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(4), body["rating"])
		assert.Equal(t, true, body["hasRamp"])
		assert.Equal(t, false, body["hasElevator"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":100,"establishmentId":9,"rating":4,"hasRamp":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, testLogger())
	req := domain.ReviewRequest{Rating: 4, Comment: "Good ramp"}
	req.HasRamp = true
	review, err := client.CreateReview(context.Background(), 9, req)
	require.NoError(t, err)
	assert.Equal(t, int64(100), review.ID)
	assert.True(t, review.HasRamp)
}

func TestClient_CreateEstablishmentMultipart(t *testing.T) {
	photo := filepath.Join(t.TempDir(), "front.jpg")
	require.NoError(t, os.WriteFile(photo, []byte("jpeg-bytes"), 0644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/establishments", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		estFile, _, err := r.FormFile("establishment")
		require.NoError(t, err)
		var est domain.EstablishmentRequest
		require.NoError(t, json.NewDecoder(estFile).Decode(&est))
		assert.Equal(t, "Cinema Art", est.Name)

		photoFile, hdr, err := r.FormFile("photo")
		require.NoError(t, err)
		assert.Equal(t, "front.jpg", hdr.Filename)
		data, _ := io.ReadAll(photoFile)
		assert.Equal(t, "jpeg-bytes", string(data))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":5,"name":"Cinema Art","photoUrl":"/api/establishments/photo/x.jpg"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, testLogger())
	created, err := client.CreateEstablishment(context.Background(), domain.EstablishmentRequest{
		Name: "Cinema Art", Address: "R. Frei Caneca, 569", City: "São Paulo", State: "SP", Type: "Cinema",
	}, photo)
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
	assert.Equal(t, server.URL+"/api/establishments/photo/x.jpg", client.PhotoURL(created.PhotoPath))
}

func TestClient_CreateEstablishmentRequiresFields(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil, testLogger())
	_, err := client.CreateEstablishment(context.Background(), domain.EstablishmentRequest{Name: "x"}, "")
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestClient_PhotoURL(t *testing.T) {
	client := NewClient("http://localhost:8083/", nil, testLogger())
	assert.Equal(t, "", client.PhotoURL(""))
	assert.Equal(t, "http://localhost:8083/uploads/a.png", client.PhotoURL("uploads/a.png"))
	assert.Equal(t, "http://localhost:8083/uploads/a.png", client.PhotoURL("/uploads/a.png"))
	assert.Equal(t, "https://cdn.example.com/a.png", client.PhotoURL("https://cdn.example.com/a.png"))
}
