package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/signupdesk/signupdesk/backend/internal/config"
	"github.com/signupdesk/signupdesk/backend/internal/submission/repository"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_File(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Backend: "file", DataFile: filepath.Join(t.TempDir(), "s.json")}}
	s, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer s.Close(context.Background())
	require.IsType(t, &repository.FileRepo{}, s.Repo)
	require.Nil(t, s.Dispatches())
}

func TestOpenStore_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Backend: "memory"}}
	s, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	require.IsType(t, &repository.MemoryRepo{}, s.Repo)
}

func TestOpenStore_MongoFallsBackToFile(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := &config.Config{
		Store:   config.StoreConfig{Backend: "mongo", DataFile: filepath.Join(t.TempDir(), "s.json")},
		MongoDB: config.MongoDBConfig{URI: "mongodb://127.0.0.1:1", Database: "x", Timeout: 1},
	}
	s, err := OpenStore(ctx, cfg)
	require.NoError(t, err)
	require.IsType(t, &repository.FileRepo{}, s.Repo)
}

func TestOpenRedis(t *testing.T) {
	require.Nil(t, OpenRedis(context.Background(), config.RedisConfig{}))

	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := OpenRedis(context.Background(), config.RedisConfig{Host: m.Host(), Port: m.Port()})
	require.NotNil(t, client)
	require.NoError(t, client.Close())
}
