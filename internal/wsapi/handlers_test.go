package wsapi

import (
	"bufio"
	"crypto/rand"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// rawClient performs a minimal RFC 6455 client handshake and exposes
// masked frame write / unmasked frame read, enough to drive the handlers
// under test without a third-party client library.
type rawClient struct {
	nc net.Conn
	rw *bufio.ReadWriter
}

func dialWebSocket(t *testing.T, addr, path string) *rawClient {
	t.Helper()
	nc, err := net.Dial("tcp", addr)
	require.NoError(t, err)

	req := "GET " + path + " HTTP/1.1\r\n" +
		"Host: " + addr + "\r\n" +
		"Upgrade: websocket\r\n" +
		"Connection: Upgrade\r\n" +
		"Sec-WebSocket-Key: dGhlIHNhbXBsZSBub25jZQ==\r\n" +
		"Sec-WebSocket-Version: 13\r\n\r\n"
	_, err = nc.Write([]byte(req))
	require.NoError(t, err)

	rw := bufio.NewReadWriter(bufio.NewReader(nc), bufio.NewWriter(nc))
	resp, err := http.ReadResponse(rw.Reader, nil)
	require.NoError(t, err)
	require.Equal(t, 101, resp.StatusCode)

	return &rawClient{nc: nc, rw: rw}
}

func (c *rawClient) writeText(payload []byte) error {
	var mask [4]byte
	_, _ = rand.Read(mask[:])
	masked := make([]byte, len(payload))
	for i, b := range payload {
		masked[i] = b ^ mask[i%4]
	}

	header := []byte{0x80 | opText, 0x80 | byte(len(payload))}
	if _, err := c.rw.Write(header); err != nil {
		return err
	}
	if _, err := c.rw.Write(mask[:]); err != nil {
		return err
	}
	if _, err := c.rw.Write(masked); err != nil {
		return err
	}
	return c.rw.Flush()
}

func (c *rawClient) readText(t *testing.T) string {
	t.Helper()
	header := make([]byte, 2)
	_, err := c.rw.Read(header)
	require.NoError(t, err)
	length := int(header[1] & 0x7f)
	payload := make([]byte, length)
	_, err = c.rw.Read(payload)
	require.NoError(t, err)
	return string(payload)
}

func TestPointsHandler_ForwardsTextFrames(t *testing.T) {
	points := make(chan []byte, 1)
	h := NewPointsHandler(points, nil)
	srv := httptest.NewServer(h)
	defer srv.Close()

	addr := strings.TrimPrefix(srv.URL, "http://")
	client := dialWebSocket(t, addr, "/ws/points")
	defer client.nc.Close()

	require.NoError(t, client.writeText([]byte(`[1,1]`)))

	select {
	case p := <-points:
		require.Equal(t, "[1,1]", string(p))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for forwarded point")
	}
}

func TestDispatcher_BroadcastsToSubscriber(t *testing.T) {
	d := NewDispatcher(nil)
	srv := httptest.NewServer(d)
	defer srv.Close()

	addr := strings.TrimPrefix(srv.URL, "http://")
	client := dialWebSocket(t, addr, "/ws/models")
	defer client.nc.Close()

	require.Eventually(t, func() bool {
		return d.SubscriberCount() == 1
	}, time.Second, 10*time.Millisecond)

	d.Broadcast([]byte(`[{"center":[1,1],"radius":1,"weight":1}]`))
	got := client.readText(t)
	require.Equal(t, `[{"center":[1,1],"radius":1,"weight":1}]`, got)
}
