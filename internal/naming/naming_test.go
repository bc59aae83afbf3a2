package naming

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPascal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"api", "API"},
		{"json", "JSON"},
		{"admin", "Admin"},
		{"public_api", "PublicAPI"},
		{"db", "DB"},
		{"", ""},
		{"v2_ui", "V2UI"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, Pascal(tt.in))
		})
	}
}

func TestCamelToSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Name", "name"},
		{"CreatedAt", "created_at"},
		{"UserID", "user_id"},
		{"HTTPStatus", "http_status"},
		{"Email", "email"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, CamelToSnake(tt.in))
		})
	}
}

func TestDefaultCollectionName(t *testing.T) {
	require.Equal(t, "Users", DefaultCollectionName("User"))
	require.Equal(t, "Mutexes", DefaultCollectionName("Mutex"))
	require.Equal(t, "Entries", DefaultCollectionName("Entry"))
}
