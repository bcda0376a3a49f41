package metadomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorResponse_Classification(t *testing.T) {
	tests := []struct {
		name        string
		details     ErrorDetails
		expired     bool
		rateLimited bool
	}{
		{name: "invalid token", details: ErrorDetails{Code: 190}, expired: true},
		{name: "session subcode", details: ErrorDetails{Code: 102, Type: "OAuthException", ErrorSubcode: 463}, expired: true},
		{name: "app throttled", details: ErrorDetails{Code: 4}, rateLimited: true},
		{name: "ad account throttled", details: ErrorDetails{Code: 80000}, rateLimited: true},
		{name: "invalid parameter", details: ErrorDetails{Code: 100, Type: "OAuthException"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &ErrorResponse{Error: tt.details}
			assert.Equal(t, tt.expired, resp.IsTokenExpired())
			assert.Equal(t, tt.rateLimited, resp.IsRateLimited())
		})
	}
}
