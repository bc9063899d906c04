package rabbitmq

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallExpireAPI(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "success: 200", status: http.StatusOK},
		{name: "success: 404 is final", status: http.StatusNotFound},
		{name: "error: 500 is retried", status: http.StatusInternalServerError, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotAuth string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotAuth = r.Header.Get("Authorization")
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := CallExpireAPI(context.Background(), srv.Client(), srv.URL, "secret", 42)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, "/internal/v1/reservations/42/expire", gotPath)
			assert.Equal(t, "Bearer secret", gotAuth)
		})
	}
}
