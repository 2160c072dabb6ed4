package gelf

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageFromZapEntry(t *testing.T) {
	w := &Writer{hostname: "host-1", service: "sitesurvey"}
	now := time.Unix(1700000000, 0)

	msg := w.message([]byte(`{"level":"warn","ts":1700000001.5,"logger":"store","msg":"store unreadable","path":"results.xlsx"}`+"\n"), now)
	assert.Equal(t, "1.1", msg["version"])
	assert.Equal(t, "host-1", msg["host"])
	assert.Equal(t, "store unreadable", msg["short_message"])
	assert.Equal(t, 4, msg["level"])
	assert.Equal(t, 1700000001.5, msg["timestamp"])
	assert.Equal(t, "store", msg["_logger"])
	assert.Equal(t, "results.xlsx", msg["_path"])
	assert.Equal(t, "sitesurvey", msg["_service"])
}

func TestMessagePlainLine(t *testing.T) {
	w := &Writer{hostname: "h", service: "s"}
	msg := w.message([]byte("plain text\n"), time.Unix(10, 0))
	assert.Equal(t, "plain text", msg["short_message"])
	assert.Equal(t, 6, msg["level"])
	assert.Equal(t, 10.0, msg["timestamp"])
}

func TestSyslogLevel(t *testing.T) {
	assert.Equal(t, 7, syslogLevel("debug"))
	assert.Equal(t, 6, syslogLevel("info"))
	assert.Equal(t, 3, syslogLevel("error"))
	assert.Equal(t, 1, syslogLevel("fatal"))
}

func TestWriteSendsDatagram(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	w, err := New(pc.LocalAddr().String(), "sitesurvey")
	require.NoError(t, err)
	defer w.Close()

	line := []byte(`{"level":"info","msg":"hello"}` + "\n")
	n, err := w.Write(line)
	require.NoError(t, err)
	assert.Equal(t, len(line), n)

	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 8192)
	n, _, err = pc.ReadFrom(buf)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf[:n], &got))
	assert.Equal(t, "hello", got["short_message"])
	assert.Equal(t, float64(6), got["level"])
}
