package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validServerAttrs() *ServerAttributes {
	return &ServerAttributes{
		Name:     "geoserv",
		Mode:     "read-only",
		Host:     "db.example.com",
		DBName:   "geo",
		Username: "u",
		Password: "p",
	}
}

func TestDecodeServerAttributes(t *testing.T) {
	t.Parallel()

	t.Run("accepts known fields", func(t *testing.T) {
		t.Parallel()
		attrs, err := DecodeServerAttributes([]byte(`{
			"federated_server_name": "geoserv",
			"mode": "read-only",
			"host": "db.example.com",
			"port": "5432",
			"dbname": "geo",
			"username": "u",
			"password": "p"
		}`), false)
		require.NoError(t, err)
		assert.Equal(t, "geoserv", attrs.Name)
		assert.Equal(t, "5432", attrs.Port)
	})

	t.Run("rejects unknown field", func(t *testing.T) {
		t.Parallel()
		_, err := DecodeServerAttributes([]byte(`{"mode": "read-only", "color": "red"}`), false)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Error(), `unknown field "color"`)
	})

	t.Run("rejects name on update", func(t *testing.T) {
		t.Parallel()
		_, err := DecodeServerAttributes([]byte(`{"federated_server_name": "x"}`), true)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		t.Parallel()
		_, err := DecodeServerAttributes([]byte(`{`), false)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestValidateServerRegistration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*ServerAttributes)
		wantErr string
	}{
		{name: "valid", mutate: func(*ServerAttributes) {}},
		{
			name:    "uppercase name rejected",
			mutate:  func(a *ServerAttributes) { a.Name = "MyServer" },
			wantErr: "must be lowercase",
		},
		{
			name:    "whitespace name rejected",
			mutate:  func(a *ServerAttributes) { a.Name = " geoserv" },
			wantErr: "must be lowercase",
		},
		{
			name:    "missing name",
			mutate:  func(a *ServerAttributes) { a.Name = "" },
			wantErr: "federated_server_name is required",
		},
		{
			name:   "mode compare is case-insensitive",
			mutate: func(a *ServerAttributes) { a.Mode = "Read-Only" },
		},
		{
			name:    "read-write rejected",
			mutate:  func(a *ServerAttributes) { a.Mode = "read-write" },
			wantErr: `mode must be "read-only"`,
		},
		{
			name:    "missing host",
			mutate:  func(a *ServerAttributes) { a.Host = "" },
			wantErr: "host is required",
		},
		{
			name:    "missing password",
			mutate:  func(a *ServerAttributes) { a.Password = "" },
			wantErr: "password is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			attrs := validServerAttrs()
			tt.mutate(attrs)

			err := ValidateServerRegistration(attrs)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Error(), tt.wantErr)
		})
	}
}

func TestValidateTableAttributes(t *testing.T) {
	t.Parallel()

	t.Run("registration requires table name", func(t *testing.T) {
		t.Parallel()
		err := ValidateTableRegistration(&TableAttributes{IDColumnName: "id"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Error(), "remote_table_name is required")
	})

	t.Run("registration requires id column", func(t *testing.T) {
		t.Parallel()
		err := ValidateTableRegistration(&TableAttributes{RemoteTableName: "parcels"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Error(), "id_column_name is required")
	})

	t.Run("update requires only id column", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, ValidateTableUpdate(&TableAttributes{IDColumnName: "id"}))
		assert.Error(t, ValidateTableUpdate(&TableAttributes{}))
	})

	t.Run("decode rejects unknown field", func(t *testing.T) {
		t.Parallel()
		_, err := DecodeTableAttributes([]byte(`{"id_column_name": "id", "nope": 1}`))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})
}
