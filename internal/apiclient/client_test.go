package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novaition/internal/model"
)

func TestCheckEmailPathsPerCollection(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		fmt.Fprint(w, `{"success":true,"exists":true}`)
	}))
	defer srv.Close()
	c := New(srv.URL)
	ctx := context.Background()

	exists, err := c.CheckEmail(ctx, "a@b.com", Users)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = c.CheckEmail(ctx, "a@b.com", Orders)
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/check-email1", "/api/check-email2"}, paths)
}

func TestCheckNICPathsPerCollection(t *testing.T) {
	var paths []string
	var bodies []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		bodies = append(bodies, body)
		fmt.Fprint(w, `{"success":true,"exists":false}`)
	}))
	defer srv.Close()
	c := New(srv.URL)
	ctx := context.Background()

	exists, err := c.CheckNIC(ctx, "123456789V", Users)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = c.CheckNIC(ctx, "123456789V", Orders)
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/check-id1", "/api/check-id2"}, paths)
	assert.Equal(t, "123456789V", bodies[0]["id"], "NIC travels in the id field")
}

func TestCheckerInterfaceRouting(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		fmt.Fprint(w, `{"success":true,"exists":false}`)
	}))
	defer srv.Close()
	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.EmailRegistered(ctx, "a@b.com")
	require.NoError(t, err)
	_, err = c.NICRegistered(ctx, "123456789V")
	require.NoError(t, err)

	// Email goes to the users collection, NIC to the orders one.
	assert.Equal(t, []string{"/api/check-email1", "/api/check-id2"}, paths)
}

func TestRegister(t *testing.T) {
	var got model.Attendee
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"success":true,"message":"Registration and Email sent!","userId":"doc-7"}`)
	}))
	defer srv.Close()

	id, err := New(srv.URL).Register(context.Background(), model.Attendee{
		Name: "Amara", Email: "a@b.com", University: "SLTC", NIC: "123456789V", Attend: "0",
	})
	require.NoError(t, err)
	assert.Equal(t, "doc-7", id)
	assert.Equal(t, "Amara", got.Name)
}

func TestRegisterServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"success":false,"message":"This email is already registered."}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Register(context.Background(), model.Attendee{Name: "A"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "This email is already registered.", apiErr.UserMessage())
}

func TestSubmitOrderErrorKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"success":false,"error":"Missing required fields"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).SubmitOrder(context.Background(), model.Order{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Missing required fields", apiErr.UserMessage(), "order failures use the error key")
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(10<<20))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "receipt.png", header.Filename)
		fmt.Fprint(w, `{"success":true,"url":"https://res.example.com/r.png","public_id":"orders/r"}`)
	}))
	defer srv.Close()

	url, publicID, err := New(srv.URL).Upload(context.Background(), "receipt.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://res.example.com/r.png", url)
	assert.Equal(t, "orders/r", publicID)
}

func TestDoFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream exploded")
	}))
	defer srv.Close()

	_, err := New(srv.URL).CheckEmail(context.Background(), "a@b.com", Users)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "request failed", apiErr.UserMessage())
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	c := New("http://localhost:8080/")
	assert.Equal(t, "http://localhost:8080", c.BaseURL)
}
