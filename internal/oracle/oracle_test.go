package oracle

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestPropose_DecodesProposalsFromOKResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"section_id":"S1","action":"split","reason":"low enrollment"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, discardLogger())
	proposals, err := client.Propose(context.Background(), []Request{{SectionID: "S1"}})

	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "split", proposals[0].Action)
}

func TestPropose_NonFatalOnNon200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, discardLogger())
	proposals, err := client.Propose(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, proposals)
}

func TestPropose_NonFatalOnMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, discardLogger())
	proposals, err := client.Propose(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, proposals)
}

func TestPropose_NonFatalOnUnreachableEndpoint(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 50*time.Millisecond, discardLogger())
	proposals, err := client.Propose(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, proposals)
}
