package broadcast

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/cnbridge/leadbot/internal/domain"
)

type fakeSender struct {
	mu    sync.Mutex
	calls []string
	what  []any
	fail  map[string]error
}

func (f *fakeSender) Send(to tele.Recipient, what any, _ ...any) (*tele.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, to.Recipient())
	f.what = append(f.what, what)
	if err := f.fail[to.Recipient()]; err != nil {
		return nil, err
	}
	return &tele.Message{}, nil
}

type statStore struct {
	saved []domain.BroadcastStat
	err   error
}

func (s *statStore) SaveBroadcastStat(_ context.Context, st domain.BroadcastStat) error {
	s.saved = append(s.saved, st)
	return s.err
}

func fastOperator(s Sender, stats StatStore) *Operator {
	return New(s, stats, Options{Delay: time.Millisecond})
}

func TestRunSkipsBlockedRecipient(t *testing.T) {
	s := &fakeSender{fail: map[string]error{"2": tele.ErrBlockedByUser}}
	stats := &statStore{}

	res := fastOperator(s, stats).Run(context.Background(), []int64{1, 2, 3}, Message{Kind: KindText, Text: "hello"})

	assert.Equal(t, Result{Total: 3, Sent: 2, Unreachable: 1}, res)
	assert.Equal(t, []string{"1", "2", "3"}, s.calls)
	assert.Equal(t, "hello", s.what[0])

	require.Len(t, stats.saved, 1)
	st := stats.saved[0]
	assert.Equal(t, "text", st.Kind)
	assert.Equal(t, 2, st.Sent)
	assert.Equal(t, 1, st.Unreachable)
	assert.NotEqual(t, [16]byte{}, [16]byte(st.ID))
	assert.False(t, st.FinishedAt.Before(st.StartedAt))
}

func TestRunBlockedRecipientOrderDoesNotMatter(t *testing.T) {
	for _, ids := range [][]int64{{2, 1, 3}, {1, 3, 2}} {
		s := &fakeSender{fail: map[string]error{"2": tele.ErrBlockedByUser}}
		res := fastOperator(s, nil).Run(context.Background(), ids, Message{Kind: KindText, Text: "x"})
		assert.Equal(t, 2, res.Sent)
	}
}

func TestRunContinuesAfterOtherErrors(t *testing.T) {
	s := &fakeSender{fail: map[string]error{
		"1": errors.New("connection reset"),
		"2": tele.ErrChatNotFound,
	}}
	res := fastOperator(s, nil).Run(context.Background(), []int64{1, 2, 3}, Message{Kind: KindPhoto, FileID: "AgAD", Caption: "c"})

	assert.Equal(t, Result{Total: 3, Sent: 1, Unreachable: 1, Failed: 1}, res)
	require.Len(t, s.what, 3)
	photo, ok := s.what[2].(*tele.Photo)
	require.True(t, ok)
	assert.Equal(t, "AgAD", photo.FileID)
	assert.Equal(t, "c", photo.Caption)
}

func TestRunEmptyRecipients(t *testing.T) {
	s := &fakeSender{}
	res := fastOperator(s, nil).Run(context.Background(), nil, Message{Kind: KindText, Text: "x"})
	assert.Equal(t, Result{}, res)
	assert.Empty(t, s.calls)
}

func TestRunUnsupportedKind(t *testing.T) {
	s := &fakeSender{}
	stats := &statStore{}
	res := fastOperator(s, stats).Run(context.Background(), []int64{1, 2}, Message{Kind: KindUnsupported})

	assert.Equal(t, 0, res.Sent)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, 2, res.Skipped)
	assert.Empty(t, s.calls)
	require.Len(t, stats.saved, 1)
}

func TestRunIgnoresCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &fakeSender{}
	res := fastOperator(s, nil).Run(ctx, []int64{1, 2}, Message{Kind: KindText, Text: "x"})
	assert.Equal(t, 2, res.Sent)
}

func TestRunPacesDeliveries(t *testing.T) {
	s := &fakeSender{}
	start := time.Now()
	New(s, nil, Options{Delay: 20 * time.Millisecond}).Run(context.Background(), []int64{1, 2, 3}, Message{Kind: KindText, Text: "x"})
	assert.GreaterOrEqual(t, time.Since(start), 35*time.Millisecond)
}

func TestRunStatSaveFailureIsNotFatal(t *testing.T) {
	stats := &statStore{err: errors.New("disk full")}
	res := fastOperator(&fakeSender{}, stats).Run(context.Background(), []int64{1}, Message{Kind: KindText, Text: "x"})
	assert.Equal(t, 1, res.Sent)
}

func TestFromTelegram(t *testing.T) {
	cases := []struct {
		msg  *tele.Message
		want Message
	}{
		{&tele.Message{Text: "hi"}, Message{Kind: KindText, Text: "hi"}},
		{&tele.Message{Photo: &tele.Photo{File: tele.File{FileID: "p"}}, Caption: "cap"}, Message{Kind: KindPhoto, FileID: "p", Caption: "cap"}},
		{&tele.Message{Video: &tele.Video{File: tele.File{FileID: "v"}}}, Message{Kind: KindVideo, FileID: "v"}},
		{&tele.Message{Animation: &tele.Animation{File: tele.File{FileID: "a"}}, Document: &tele.Document{File: tele.File{FileID: "a"}}}, Message{Kind: KindAnimation, FileID: "a"}},
		{&tele.Message{Document: &tele.Document{File: tele.File{FileID: "d"}}}, Message{Kind: KindDocument, FileID: "d"}},
		{&tele.Message{Voice: &tele.Voice{File: tele.File{FileID: "o"}}}, Message{Kind: KindVoice, FileID: "o"}},
		{&tele.Message{VideoNote: &tele.VideoNote{File: tele.File{FileID: "n"}}}, Message{Kind: KindVideoNote, FileID: "n"}},
		{&tele.Message{Sticker: &tele.Sticker{File: tele.File{FileID: "s"}}}, Message{Kind: KindSticker, FileID: "s"}},
		{&tele.Message{Contact: &tele.Contact{PhoneNumber: "+7"}}, Message{Kind: KindUnsupported}},
		{nil, Message{Kind: KindUnsupported}},
	}
	for _, tc := range cases {
		got := FromTelegram(tc.msg)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, tc.want.Kind != KindUnsupported, got.Supported(), string(got.Kind))
	}
}
