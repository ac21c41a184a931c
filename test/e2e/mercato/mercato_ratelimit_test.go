package mercato_test

import (
	"net/http"
	"testing"

	"github.com/mercatohq/mercato/pkg/storesdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRateLimit runs against production default limits and verifies the
// strict profile kicks in on repeated login attempts for the same account.
func TestLoginRateLimit(t *testing.T) {
	baseURL, cleanup := setupMercatoContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := storesdk.NewClient(baseURL)

	limited := false
	for i := 0; i < 20; i++ {
		_, err := client.Login(t.Context(), "hammered-account", "wrong-password")
		require.Error(t, err)

		var apiErr *storesdk.APIError
		require.ErrorAs(t, err, &apiErr)
		if apiErr.StatusCode == http.StatusTooManyRequests {
			require.Equal(t, storesdk.ErrorCodeRateLimited, apiErr.Code)
			limited = true
			break
		}

		// Until the limiter trips we should only ever see auth failures.
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	}

	require.True(t, limited, "expected a 429 within 20 login attempts")
}
