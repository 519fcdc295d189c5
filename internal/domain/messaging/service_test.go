package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"
)

type fakeStore struct {
	hr       []string
	failFor  map[string]bool
	messages []Message
	nextID   int
}

func (f *fakeStore) ListHRRecipients(_ context.Context) ([]string, error) {
	return f.hr, nil
}

func (f *fakeStore) CreateMessage(_ context.Context, senderID, recipientID, subject, body string, replyTo *string) (string, error) {
	if f.failFor[recipientID] {
		return "", errors.New("insert failed")
	}
	f.nextID++
	id := fmt.Sprintf("msg-%d", f.nextID)
	f.messages = append(f.messages, Message{
		ID: id, SenderID: senderID, RecipientID: recipientID,
		Subject: subject, Body: body, ReplyTo: replyTo, CreatedAt: time.Now(),
	})
	return id, nil
}

func (f *fakeStore) Get(_ context.Context, messageID string) (*Message, error) {
	for i := range f.messages {
		if f.messages[i].ID == messageID {
			msg := f.messages[i]
			return &msg, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) Inbox(_ context.Context, recipientID string) ([]Message, error) {
	var out []Message
	for _, msg := range f.messages {
		if msg.RecipientID == recipientID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkRead(_ context.Context, messageID string) error {
	for i := range f.messages {
		if f.messages[i].ID == messageID {
			f.messages[i].Read = true
		}
	}
	return nil
}

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) Notify(_ context.Context, accountID, _ string) error {
	f.sent = append(f.sent, accountID)
	return nil
}

func newTestService(store *fakeStore, notifier *fakeNotifier) *Service {
	return NewService(store, notifier, slog.New(slog.DiscardHandler))
}

func TestSendToHRNoManagers(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	svc := newTestService(store, notifier)

	_, err := svc.SendToHR(context.Background(), "emp-1", "jdoe", SendInput{Subject: "help", Body: "please"})
	if !errors.Is(err, ErrNoHRManagers) {
		t.Fatalf("expected ErrNoHRManagers, got %v", err)
	}
	if len(store.messages) != 0 || len(notifier.sent) != 0 {
		t.Fatalf("nothing should be delivered: %d messages, %d notifications",
			len(store.messages), len(notifier.sent))
	}
}

func TestSendToHRFanOut(t *testing.T) {
	store := &fakeStore{hr: []string{"hr-1", "hr-2", "hr-3"}}
	notifier := &fakeNotifier{}
	svc := newTestService(store, notifier)

	delivered, err := svc.SendToHR(context.Background(), "emp-1", "jdoe", SendInput{Subject: "help", Body: "please"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if delivered != 3 {
		t.Fatalf("expected 3 deliveries, got %d", delivered)
	}
	if len(store.messages) != 3 {
		t.Fatalf("expected one message per manager, got %d", len(store.messages))
	}
	if len(notifier.sent) != 3 {
		t.Fatalf("expected one notification per manager, got %d", len(notifier.sent))
	}
	for _, msg := range store.messages {
		if msg.SenderID != "emp-1" || msg.Subject != "help" {
			t.Fatalf("unexpected message: %+v", msg)
		}
	}
}

func TestSendToHRContinuesPastFailure(t *testing.T) {
	store := &fakeStore{
		hr:      []string{"hr-1", "hr-2", "hr-3"},
		failFor: map[string]bool{"hr-2": true},
	}
	notifier := &fakeNotifier{}
	svc := newTestService(store, notifier)

	delivered, err := svc.SendToHR(context.Background(), "emp-1", "jdoe", SendInput{Subject: "help", Body: "please"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if delivered != 2 {
		t.Fatalf("expected 2 deliveries past the failure, got %d", delivered)
	}
	if len(notifier.sent) != 2 {
		t.Fatalf("failed recipient must not be notified, got %d notifications", len(notifier.sent))
	}
}

func TestSendToHRRejectsEmptyFields(t *testing.T) {
	svc := newTestService(&fakeStore{hr: []string{"hr-1"}}, &fakeNotifier{})

	if _, err := svc.SendToHR(context.Background(), "emp-1", "jdoe", SendInput{Subject: " ", Body: "x"}); !errors.Is(err, ErrEmptySubject) {
		t.Fatalf("expected ErrEmptySubject, got %v", err)
	}
	if _, err := svc.SendToHR(context.Background(), "emp-1", "jdoe", SendInput{Subject: "x", Body: ""}); !errors.Is(err, ErrEmptyBody) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
}

func TestReplyGoesToOriginalSender(t *testing.T) {
	store := &fakeStore{hr: []string{"hr-1"}}
	notifier := &fakeNotifier{}
	svc := newTestService(store, notifier)

	if _, err := svc.SendToHR(context.Background(), "emp-1", "jdoe", SendInput{Subject: "help", Body: "please"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	parentID := store.messages[0].ID

	reply, err := svc.Reply(context.Background(), parentID, "hr-1", "hboss", ReplyInput{Body: "on it"})
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if reply.Subject != "Re: help" {
		t.Fatalf("expected Re: prefix, got %q", reply.Subject)
	}
	if reply.RecipientID != "emp-1" {
		t.Fatalf("reply should target the original sender, got %q", reply.RecipientID)
	}
	if reply.ReplyTo == nil || *reply.ReplyTo != parentID {
		t.Fatal("reply should reference the parent message")
	}
	if notifier.sent[len(notifier.sent)-1] != "emp-1" {
		t.Fatal("original sender should be notified of the reply")
	}

	// Replying to a reply keeps a single prefix.
	again, err := svc.Reply(context.Background(), reply.ID, "emp-1", "jdoe", ReplyInput{Body: "thanks"})
	if err != nil {
		t.Fatalf("second reply: %v", err)
	}
	if again.Subject != "Re: help" {
		t.Fatalf("prefix should not stack, got %q", again.Subject)
	}
}

func TestReplyOnlyByRecipient(t *testing.T) {
	store := &fakeStore{hr: []string{"hr-1"}}
	svc := newTestService(store, &fakeNotifier{})

	if _, err := svc.SendToHR(context.Background(), "emp-1", "jdoe", SendInput{Subject: "help", Body: "please"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	_, err := svc.Reply(context.Background(), store.messages[0].ID, "emp-2", "mallory", ReplyInput{Body: "hi"})
	if !errors.Is(err, ErrNotRecipient) {
		t.Fatalf("expected ErrNotRecipient, got %v", err)
	}
}

func TestOpenMarksReadOnce(t *testing.T) {
	store := &fakeStore{hr: []string{"hr-1"}}
	svc := newTestService(store, &fakeNotifier{})

	if _, err := svc.SendToHR(context.Background(), "emp-1", "jdoe", SendInput{Subject: "help", Body: "please"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	id := store.messages[0].ID

	msg, err := svc.Open(context.Background(), id, "hr-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !msg.Read {
		t.Fatal("opening should mark the message read")
	}

	// Second open is a no-op, not an error.
	if _, err := svc.Open(context.Background(), id, "hr-1"); err != nil {
		t.Fatalf("reopen: %v", err)
	}

	if _, err := svc.Open(context.Background(), id, "emp-2"); !errors.Is(err, ErrNotRecipient) {
		t.Fatalf("expected ErrNotRecipient for a stranger, got %v", err)
	}
}
