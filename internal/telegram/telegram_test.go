package telegram

import (
	"TeleCloud/internal/bot"
	"TeleCloud/internal/model"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAPI struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	updates  chan tgbotapi.Update
	stopped  bool
	sendErr  error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{updates: make(chan tgbotapi.Update, 8)}
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeAPI) GetFileDirectURL(fileID string) (string, error) {
	if fileID == "" {
		return "", errors.New("Bad Request: file_id is empty")
	}
	return "https://api.telegram.org/file/botTOKEN/" + fileID, nil
}

type recordingHandler struct {
	mu  sync.Mutex
	got []bot.Update
}

func (h *recordingHandler) Handle(_ context.Context, u bot.Update) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.got = append(h.got, u)
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.got)
}

func newTestClient() (*Client, *fakeAPI) {
	api := newFakeAPI()
	return NewClientWithAPI(api, zap.NewNop().Sugar()), api
}

func TestConvertUpdate_Command(t *testing.T) {
	u := tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 3,
		From:      &tgbotapi.User{ID: 7, UserName: "bob", FirstName: "Bob"},
		Chat:      &tgbotapi.Chat{ID: 70},
		Text:      "/newfolder Holidays 2024",
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 10}},
	}}
	got, ok := convertUpdate(u)
	require.True(t, ok)
	require.NotNil(t, got.Message)
	assert.Equal(t, "newfolder", got.Message.Command)
	assert.Equal(t, "Holidays 2024", got.Message.CommandArgs)
	assert.Equal(t, bot.User{ID: 7, Username: "bob", FirstName: "Bob"}, got.Message.From)
	assert.Equal(t, int64(70), got.Message.ChatID)
	assert.Nil(t, got.Message.Attachment)
}

func TestConvertUpdate_Callback(t *testing.T) {
	u := tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "q1",
		From:    &tgbotapi.User{ID: 7},
		Message: &tgbotapi.Message{MessageID: 12, Chat: &tgbotapi.Chat{ID: 70}},
		Data:    "vf:5",
	}}
	got, ok := convertUpdate(u)
	require.True(t, ok)
	assert.Equal(t, &bot.Callback{ID: "q1", From: bot.User{ID: 7}, ChatID: 70, MessageID: 12, Data: "vf:5"}, got.Callback)

	// inline-mode presses carry no message
	u.CallbackQuery.Message = nil
	_, ok = convertUpdate(u)
	assert.False(t, ok)
}

func TestConvertUpdate_SkipsOtherKinds(t *testing.T) {
	_, ok := convertUpdate(tgbotapi.Update{EditedMessage: &tgbotapi.Message{}})
	assert.False(t, ok)
	_, ok = convertUpdate(tgbotapi.Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}}})
	assert.False(t, ok, "channel posts have no sender")
}

func TestExtractAttachment(t *testing.T) {
	size := func(n int64) *int64 { return &n }

	cases := []struct {
		name string
		msg  *tgbotapi.Message
		want *model.FileDescriptor
	}{
		{
			name: "document keeps its name",
			msg:  &tgbotapi.Message{Document: &tgbotapi.Document{FileID: "d1", FileUniqueID: "u1", FileName: "report.pdf", FileSize: 500}},
			want: &model.FileDescriptor{FileRef: "d1", Name: "report.pdf", Type: model.FileTypeDocument, Size: size(500)},
		},
		{
			name: "photo uses the largest size",
			msg: &tgbotapi.Message{Photo: []tgbotapi.PhotoSize{
				{FileID: "small", FileUniqueID: "s", FileSize: 10},
				{FileID: "large", FileUniqueID: "L", FileSize: 9000},
			}},
			want: &model.FileDescriptor{FileRef: "large", Name: "photo_L.jpg", Type: model.FileTypePhoto, Size: size(9000)},
		},
		{
			name: "video without name",
			msg:  &tgbotapi.Message{Video: &tgbotapi.Video{FileID: "v1", FileUniqueID: "uv"}},
			want: &model.FileDescriptor{FileRef: "v1", Name: "video_uv.mp4", Type: model.FileTypeVideo},
		},
		{
			name: "audio without name",
			msg:  &tgbotapi.Message{Audio: &tgbotapi.Audio{FileID: "a1", FileUniqueID: "ua", FileSize: 42}},
			want: &model.FileDescriptor{FileRef: "a1", Name: "audio_ua.mp3", Type: model.FileTypeAudio, Size: size(42)},
		},
		{
			name: "plain text",
			msg:  &tgbotapi.Message{Text: "hi"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, extractAttachment(c.msg))
		})
	}
}

func TestInlineKeyboard(t *testing.T) {
	assert.Nil(t, inlineKeyboard(nil))
	assert.Nil(t, inlineKeyboard(&bot.Keyboard{}))

	m := inlineKeyboard(&bot.Keyboard{Rows: [][]bot.Button{
		{{Text: "A", Data: "vf:1"}, {Text: "Del", Data: "cdf:1"}},
		{{Text: "Open", URL: "https://example.com"}},
	}})
	require.NotNil(t, m)
	require.Len(t, m.InlineKeyboard, 2)
	require.NotNil(t, m.InlineKeyboard[0][1].CallbackData)
	assert.Equal(t, "cdf:1", *m.InlineKeyboard[0][1].CallbackData)
	require.NotNil(t, m.InlineKeyboard[1][0].URL)
	assert.Equal(t, "https://example.com", *m.InlineKeyboard[1][0].URL)
	assert.Nil(t, m.InlineKeyboard[1][0].CallbackData)
}

func TestClient_SendStoredFileUsesTypeMethod(t *testing.T) {
	c, api := newTestClient()
	ctx := context.Background()

	require.NoError(t, c.SendStoredFile(ctx, 1, model.File{FileRef: "p", Type: model.FileTypePhoto}, "cap", nil))
	require.NoError(t, c.SendStoredFile(ctx, 1, model.File{FileRef: "v", Type: model.FileTypeVideo}, "cap", nil))
	require.NoError(t, c.SendStoredFile(ctx, 1, model.File{FileRef: "a", Type: model.FileTypeAudio}, "cap", nil))
	require.NoError(t, c.SendStoredFile(ctx, 1, model.File{FileRef: "d", Type: model.FileTypeDocument}, "cap",
		&bot.Keyboard{Rows: [][]bot.Button{{{Text: "x", Data: "df:1"}}}}))

	require.Len(t, api.sent, 4)
	assert.IsType(t, tgbotapi.PhotoConfig{}, api.sent[0])
	assert.IsType(t, tgbotapi.VideoConfig{}, api.sent[1])
	assert.IsType(t, tgbotapi.AudioConfig{}, api.sent[2])
	doc, ok := api.sent[3].(tgbotapi.DocumentConfig)
	require.True(t, ok)
	assert.Equal(t, "cap", doc.Caption)
	assert.IsType(t, tgbotapi.InlineKeyboardMarkup{}, doc.ReplyMarkup)
}

func TestClient_SendErrorsAreWrapped(t *testing.T) {
	c, api := newTestClient()
	api.sendErr = errors.New("Forbidden: bot was blocked by the user")

	err := c.SendText(context.Background(), 1, "hi", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, api.sendErr)
	assert.Contains(t, err.Error(), "telegram send message")
}

func TestClient_RequestsUseHTMLAndAlerts(t *testing.T) {
	c, api := newTestClient()
	ctx := context.Background()

	require.NoError(t, c.EditText(ctx, 1, 2, "<b>x</b>", nil))
	require.NoError(t, c.EditCaption(ctx, 1, 2, "gone"))
	require.NoError(t, c.AnswerCallback(ctx, "q", "done", true))

	require.Len(t, api.requests, 3)
	edit := api.requests[0].(tgbotapi.EditMessageTextConfig)
	assert.Equal(t, tgbotapi.ModeHTML, edit.ParseMode)
	assert.Nil(t, edit.ReplyMarkup)
	assert.Equal(t, "gone", api.requests[1].(tgbotapi.EditMessageCaptionConfig).Caption)
	cb := api.requests[2].(tgbotapi.CallbackConfig)
	assert.True(t, cb.ShowAlert)
	assert.Equal(t, "done", cb.Text)
}

func TestClient_FileURL(t *testing.T) {
	c, _ := newTestClient()
	u, err := c.FileURL(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "https://api.telegram.org/file/botTOKEN/abc", u)

	_, err = c.FileURL(context.Background(), "")
	assert.Error(t, err)
}

func TestClient_RunDispatchesUntilCancelled(t *testing.T) {
	c, api := newTestClient()
	h := &recordingHandler{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, h) }()

	api.updates <- tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 1}, Chat: &tgbotapi.Chat{ID: 1}, Text: "hello",
	}}
	api.updates <- tgbotapi.Update{EditedMessage: &tgbotapi.Message{}}
	assert.Eventually(t, func() bool { return h.count() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
	api.mu.Lock()
	assert.True(t, api.stopped)
	api.mu.Unlock()
}
