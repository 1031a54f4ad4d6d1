package main

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/One-com/gone/counters"
	"github.com/One-com/gone/counters/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/net/nettest"
)

func TestRunWithoutCollector(t *testing.T) {
	assert.Equal(t, 0, run(zap.NewNop(), config.Default(), nil, 3, []string{"req.count"}))
}

func TestRunSends(t *testing.T) {
	collector, err := nettest.NewLocalPacketListener("udp")
	require.NoError(t, err)
	defer collector.Close()
	addr := collector.LocalAddr().(*net.UDPAddr)

	settings := config.Default()
	settings.Host = addr.IP.String()
	settings.Port = addr.Port
	settings.Label = "cli"

	code := run(zap.NewNop(), settings, counters.Tags{"method": "GET"}, 2, []string{"req.count"})
	require.Equal(t, 0, code)

	var lines []string
	buf := make([]byte, 1500)
	require.NoError(t, collector.SetReadDeadline(time.Now().Add(5*time.Second)))
	for len(lines) < 2 {
		n, _, err := collector.ReadFrom(buf)
		require.NoError(t, err)
		lines = append(lines, strings.Split(string(buf[:n]), "\n")...)
	}
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "cli.req.count:1|c|#"), l)
		assert.Contains(t, l, "method:GET")
		assert.Contains(t, l, "version:")
	}
}

func TestRunBadPeer(t *testing.T) {
	settings := config.Default()
	settings.Host = "127.0.0.1"
	settings.Port = 0
	assert.Equal(t, 1, run(zap.NewNop(), settings, nil, 1, []string{"x"}))
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	_, err = newLogger("chatty")
	assert.Error(t, err)
}
