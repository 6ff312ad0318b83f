package wikipedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"worldgdp/internal/gdp"
	"worldgdp/internal/telemetry"

	"github.com/stretchr/testify/require"
)

func TestClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page":
			require.NotEmpty(t, r.Header.Get("user-agent"))
			w.Header().Set("content-type", "text/html")
			w.Write([]byte("<html><body>hello</body></html>"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	mem := &telemetry.MemoryAPI{}
	client := NewClient(ClientOptions{}, mem)

	body, err := client.Fetch(context.Background(), server.URL+"/page")
	require.NoError(t, err)
	require.Equal(t, "<html><body>hello</body></html>", body)
	require.Empty(t, mem.Broken())

	_, err = client.Fetch(context.Background(), server.URL+"/missing")
	require.ErrorIs(t, err, gdp.ErrNetwork)
	require.NotEmpty(t, mem.Broken())
}

func TestClientFetchUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	link := server.URL
	server.Close()

	_, err := NewClient(ClientOptions{}, &telemetry.MemoryAPI{}).Fetch(context.Background(), link)
	require.ErrorIs(t, err, gdp.ErrNetwork)
}

type memoryOutput map[string]string

func (o memoryOutput) Write(id, contents string) {
	o[id] = contents
}

func TestClientDumpsExchanges(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<tbody></tbody>"))
	}))
	defer server.Close()

	output := memoryOutput{}
	client := NewClient(ClientOptions{Output: output}, &telemetry.MemoryAPI{})

	_, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, output, 1)
	require.Contains(t, output["0001.txt"], "<tbody></tbody>")
}
