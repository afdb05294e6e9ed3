package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notexe/remind-bot/internal/bot"
)

const testToken = "123:secret"

// fakeAPI is an in-process Bot API that records requests by method.
type fakeAPI struct {
	mu      sync.Mutex
	calls   map[string][]map[string]interface{}
	updates []Update
	fail    string
	server  *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{calls: map[string][]map[string]interface{}{}}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	prefix := "/bot" + testToken + "/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(apiResponse{OK: false, Description: "Not Found"})
		return
	}
	method := strings.TrimPrefix(r.URL.Path, prefix)

	var payload map[string]interface{}
	json.NewDecoder(r.Body).Decode(&payload)

	f.mu.Lock()
	f.calls[method] = append(f.calls[method], payload)
	fail := f.fail == method
	var result interface{} = true
	if method == "getUpdates" {
		result = f.updates
		f.updates = nil
	}
	f.mu.Unlock()

	if fail {
		json.NewEncoder(w).Encode(apiResponse{OK: false, Description: "Bad Request: chat not found"})
		return
	}

	raw, _ := json.Marshal(result)
	json.NewEncoder(w).Encode(apiResponse{OK: true, Result: raw})
}

func (f *fakeAPI) Calls(method string) []map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]interface{}(nil), f.calls[method]...)
}

func (f *fakeAPI) client() *Client {
	return NewClient(f.server.URL, testToken, 5*time.Second)
}

func TestClient_SendMessage(t *testing.T) {
	api := newFakeAPI(t)

	err := api.client().SendMessage(context.Background(), "42", "hello", NewReplyKeyboard([][]string{{"a", "b"}, {"c"}}))
	require.NoError(t, err)

	calls := api.Calls("sendMessage")
	require.Len(t, calls, 1)
	assert.Equal(t, "42", calls[0]["chat_id"])
	assert.Equal(t, "hello", calls[0]["text"])
	assert.NotContains(t, calls[0], "parse_mode")

	markup := calls[0]["reply_markup"].(map[string]interface{})
	assert.Equal(t, true, markup["resize_keyboard"])
	assert.Len(t, markup["keyboard"], 2)
}

func TestClient_SendMessageWithoutKeyboard(t *testing.T) {
	api := newFakeAPI(t)

	require.NoError(t, NewSender(api.client(), "42").Notify(context.Background(), "⏰ START"))

	calls := api.Calls("sendMessage")
	require.Len(t, calls, 1)
	assert.NotContains(t, calls[0], "reply_markup")
}

func TestClient_APIError(t *testing.T) {
	api := newFakeAPI(t)
	api.fail = "sendMessage"

	err := api.client().SendMessage(context.Background(), "42", "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestClient_GetUpdates(t *testing.T) {
	api := newFakeAPI(t)
	api.updates = []Update{
		{UpdateID: 7, Message: &Message{MessageID: 1, Chat: Chat{ID: 42}, Text: "/list"}},
	}

	updates, err := api.client().GetUpdates(context.Background(), 7, 0)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, "/list", updates[0].Message.Text)

	calls := api.Calls("getUpdates")
	require.Len(t, calls, 1)
	assert.EqualValues(t, 7, calls[0]["offset"])
}

func TestClient_RedactsToken(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", testToken, time.Second)

	err := c.SendMessage(context.Background(), "42", "x", nil)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret")
}

// echoHandler replies with the text it receives, prefixed.
type echoHandler struct{}

func (echoHandler) Handle(_ context.Context, text string) bot.Reply {
	if text == "/start" {
		return bot.Reply{Text: "hi", Keyboard: bot.MainKeyboard, RegisterMenu: true}
	}
	if text == "ignored" {
		return bot.Reply{}
	}
	return bot.Reply{Text: "got " + text}
}

func TestBot_HandleUpdate(t *testing.T) {
	api := newFakeAPI(t)
	b := NewBot(api.client(), echoHandler{}, "42", 0)
	ctx := context.Background()

	b.HandleUpdate(ctx, Update{UpdateID: 1, Message: &Message{Chat: Chat{ID: 99}, Text: "/list"}})
	b.HandleUpdate(ctx, Update{UpdateID: 2})
	b.HandleUpdate(ctx, Update{UpdateID: 3, Message: &Message{Chat: Chat{ID: 42}, Text: "ignored"}})
	assert.Empty(t, api.Calls("sendMessage"), "unauthorized, empty and ignored messages get no reply")

	b.HandleUpdate(ctx, Update{UpdateID: 4, Message: &Message{Chat: Chat{ID: 42}, Text: "/list"}})
	calls := api.Calls("sendMessage")
	require.Len(t, calls, 1)
	assert.Equal(t, "got /list", calls[0]["text"])
	assert.Empty(t, api.Calls("setMyCommands"))

	b.HandleUpdate(ctx, Update{UpdateID: 5, Message: &Message{Chat: Chat{ID: 42}, Text: "/start"}})
	registered := api.Calls("setMyCommands")
	require.Len(t, registered, 1)
	assert.Len(t, registered[0]["commands"], len(bot.Commands))
	assert.Contains(t, api.Calls("sendMessage")[1], "reply_markup")
}

func TestBot_RunProcessesUpdatesUntilCancelled(t *testing.T) {
	api := newFakeAPI(t)
	api.updates = []Update{
		{UpdateID: 10, Message: &Message{Chat: Chat{ID: 42}, Text: "one"}},
		{UpdateID: 11, Message: &Message{Chat: Chat{ID: 42}, Text: "two"}},
	}

	b := NewBot(api.client(), echoHandler{}, "42", 0)
	b.retryDelay = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	require.Eventually(t, func() bool {
		return len(api.Calls("sendMessage")) == 2 && len(api.Calls("getUpdates")) >= 2
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.EqualValues(t, 12, api.Calls("getUpdates")[1]["offset"])
}
