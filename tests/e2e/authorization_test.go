//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_OwnershipIsEnforced(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.newUser(t)
	bob := ts.newUser(t)

	_, it := ts.do(t, http.MethodPost, "/api/v1/items", alice, map[string]string{"title": "Alice's item"})
	itemPath := "/api/v1/items/" + idOf(t, it)

	status, body := ts.do(t, http.MethodGet, itemPath, bob, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "forbidden", errorCode(t, body))

	status, _ = ts.do(t, http.MethodDelete, itemPath, bob, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Bob cannot route Alice's item, nor route his own into Alice's destination.
	_, dests := ts.do(t, http.MethodGet, "/api/v1/destinations", alice, nil)
	aliceDest := idOf(t, dests["destinations"].([]any)[0].(map[string]any))

	_, bobItem := ts.do(t, http.MethodPost, "/api/v1/items", bob, map[string]string{"title": "Bob's item"})
	status, _ = ts.do(t, http.MethodPost, "/api/v1/items/"+idOf(t, bobItem)+"/route", bob, map[string]string{"destination_id": aliceDest})
	assert.Equal(t, http.StatusForbidden, status)

	// Listings are scoped to the caller.
	_, list := ts.do(t, http.MethodGet, "/api/v1/items", bob, nil)
	items := list["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Bob's item", items[0].(map[string]any)["title"])
}
