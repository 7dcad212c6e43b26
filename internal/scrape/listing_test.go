package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = `
<html><body>
  <h2 class="list_head"><a href="/vehicle/1001.html">2014 Audi A4</a></h2>
  <h2>Not a listing heading<a href="/nope.html">x</a></h2>
  <h2 class="list_head"><a href="/vehicle/1002.html">2016 Audi A4</a></h2>
  <h2 class="list_head">no anchor here</h2>
  <h2 class="list_head"><a href="/vehicle/1003.html">2011 Audi A4</a></h2>
</body></html>`

func TestListingLinks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(listingPage))
	}))
	defer server.Close()

	links, err := ListingLinks(context.Background(), server.Client(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/vehicle/1001.html",
		"/vehicle/1002.html",
		"/vehicle/1003.html",
	}, links)
}

func TestListingLinks_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>No vehicles found.</p></body></html>`))
	}))
	defer server.Close()

	links, err := ListingLinks(context.Background(), server.Client(), server.URL)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestListingLinks_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	server.Close() // refuse connections

	_, err := ListingLinks(context.Background(), &http.Client{}, server.URL)
	require.Error(t, err)
}
