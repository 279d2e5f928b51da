package discord

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// discordRecorder captures the requests a session sends to Discord
type discordRecorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

type recordedRequest struct {
	Method string
	Path   string
	Body   []byte
}

func (r *discordRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	r.mu.Lock()
	r.requests = append(r.requests, recordedRequest{Method: req.Method, Path: req.URL.Path, Body: body})
	r.mu.Unlock()

	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString("{}")),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

// edits returns the bodies of interaction response edits
func (r *discordRecorder) edits(t *testing.T) []discordgo.WebhookEdit {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []discordgo.WebhookEdit
	for _, req := range r.requests {
		if req.Method != http.MethodPatch {
			continue
		}
		var edit discordgo.WebhookEdit
		require.NoError(t, json.Unmarshal(req.Body, &edit))
		out = append(out, edit)
	}
	return out
}

// newTestContext wires a fake core API, a client pointing at it and a
// Discord session whose HTTP traffic is recorded instead of sent.
func newTestContext(t *testing.T, mux *http.ServeMux) (*APIClient, *discordgo.Session, *discordRecorder) {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewAPIClient(server.URL, "test-api-key")
	client.RetryDelay = 0

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)

	recorder := &discordRecorder{}
	session.Client = &http.Client{Transport: recorder}

	return client, session, recorder
}

// commandInteraction builds a slash command interaction with string options
func commandInteraction(name string, options map[string]string) *discordgo.InteractionCreate {
	var opts []*discordgo.ApplicationCommandInteractionDataOption
	for k, v := range options {
		opts = append(opts, &discordgo.ApplicationCommandInteractionDataOption{
			Name:  k,
			Type:  discordgo.ApplicationCommandOptionString,
			Value: v,
		})
	}

	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:    "interaction-1",
			AppID: "app-1",
			Token: "token-1",
			Type:  discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: opts,
			},
		},
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}
