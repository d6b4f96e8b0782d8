package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("test", nil)
	require.NoError(t, err)
	assert.Equal(t, ":50051", cfg.Server.Addr)
	assert.Equal(t, "kafka-go", cfg.Kafka.Driver)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 2*time.Second, cfg.Broadcaster.Interval)
	assert.Zero(t, cfg.Tree.NodeLimit)
}

func TestLoadFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heaptree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":6000"
tree:
  node_limit: 64
outbox:
  dir: /tmp/outbox
kafka:
  brokers: ["k1:9092", "k2:9092"]
  driver: sarama
broadcaster:
  interval: 500ms
`), 0o644))

	cfg, err := Load("test", []string{"-config", path, "-addr", ":7000", "-trace"})
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 64, cfg.Tree.NodeLimit)
	assert.True(t, cfg.Tree.Trace)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "sarama", cfg.Kafka.Driver)
	assert.Equal(t, "heaptree.sorted", cfg.Kafka.Topic)
	assert.Equal(t, 500*time.Millisecond, cfg.Broadcaster.Interval)
}

func TestValidate(t *testing.T) {
	_, err := Load("test", []string{"-brokers", "k:9092"})
	assert.ErrorContains(t, err, "outbox.dir")

	_, err = Load("test", []string{"-brokers", "k:9092", "-outbox", t.TempDir(), "-driver", "x"})
	assert.ErrorContains(t, err, "kafka.driver")

	_, err = Load("test", []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoadExtraFlags(t *testing.T) {
	var in string
	cfg, err := Load("test", []string{"-in", "keys.txt", "-node-limit", "8"}, func(fs *flag.FlagSet) {
		fs.StringVar(&in, "in", "", "input")
	})
	require.NoError(t, err)
	assert.Equal(t, "keys.txt", in)
	assert.Equal(t, 8, cfg.Tree.NodeLimit)
}
