package contexthelpers_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/myrjola/existyet/internal/contexthelpers"
	"github.com/stretchr/testify/require"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	require.Empty(t, contexthelpers.CurrentPath(ctx))
	require.Empty(t, contexthelpers.CSRFToken(ctx))
	require.Empty(t, contexthelpers.CSPNonce(ctx))
	require.False(t, contexthelpers.IsHTMXRequest(ctx))

	r := httptest.NewRequest("GET", "/investors", nil)
	r = contexthelpers.SetCurrentPath(r, r.URL.Path)
	r = contexthelpers.SetCSRFToken(r, "token")
	r = contexthelpers.SetCSPNonce(r, "nonce")
	r = contexthelpers.SetHTMXRequest(r, true)

	ctx = r.Context()
	require.Equal(t, "/investors", contexthelpers.CurrentPath(ctx))
	require.Equal(t, "token", contexthelpers.CSRFToken(ctx))
	require.Equal(t, "nonce", contexthelpers.CSPNonce(ctx))
	require.True(t, contexthelpers.IsHTMXRequest(ctx))
}
