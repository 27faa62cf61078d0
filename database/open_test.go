package database

import (
	"context"
	"testing"

	"github.com/IliyaMhz/PersonalBlog/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name    string
		cfg     map[string]string
		want    string
		wantErr func(error) bool
	}{
		{
			name: "postgres defaults",
			cfg:  map[string]string{"DB_USER": "blog", "DB_PASSWORD": "secret", "DB_NAME": "blogs"},
			want: "host=localhost user=blog password=secret dbname=blogs port=5432 sslmode=disable",
		},
		{
			name: "supabase always requires tls",
			cfg: map[string]string{
				"DB_TYPE":              "supa",
				"SUPABASE_DB_HOST":     "db.example.co",
				"SUPABASE_DB_USER":     "postgres",
				"SUPABASE_DB_PASSWORD": "pw",
				"SUPABASE_DB_NAME":     "postgres",
				"SUPABASE_DB_PORT":     "6543",
			},
			want: "host=db.example.co user=postgres password=pw dbname=postgres port=6543 sslmode=require",
		},
		{
			name:    "unsupported type",
			cfg:     map[string]string{"DB_TYPE": "oracle"},
			wantErr: errs.IsConfigInvalid,
		},
		{
			name:    "missing database name",
			cfg:     map[string]string{"DB_TYPE": "postgres", "DB_HOST": "db"},
			wantErr: errs.IsConfigMissing,
		},
		{
			name:    "missing supabase host",
			cfg:     map[string]string{"DB_TYPE": "supa", "SUPABASE_DB_NAME": "postgres"},
			wantErr: errs.IsConfigMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildDSN(tt.cfg)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err), err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplicaDSNs(t *testing.T) {
	cfg := map[string]string{
		"DB_HOST":          "primary",
		"DB_USER":          "blog",
		"DB_NAME":          "blogs",
		"DB_REPLICA_HOSTS": "replica-1, replica-2:6432",
	}

	dsns, err := ReplicaDSNs(cfg)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"host=replica-1 user=blog password= dbname=blogs port=5432 sslmode=disable",
		"host=replica-2 user=blog password= dbname=blogs port=6432 sslmode=disable",
	}, dsns)

	none, err := ReplicaDSNs(map[string]string{})
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestNewInMemory(t *testing.T) {
	db := NewInMemory()

	assert.NoError(t, db.Ping(context.Background()))
	assert.IsType(t, &MemoryBlogRepo{}, db.BlogRepo())
}
