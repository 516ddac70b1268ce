package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
	"github.com/indocrm/inquiry-desk/internal/core/ports"
)

// recordingService captures delivered notifications per user.
type recordingService struct {
	ports.NotificationService

	mu   sync.Mutex
	got  map[string][]string
	done chan struct{}
	want int
	n    int
}

func newRecordingService(want int) *recordingService {
	return &recordingService{got: map[string][]string{}, done: make(chan struct{}), want: want}
}

func (s *recordingService) Deliver(_ context.Context, in ports.NotificationInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got[in.UserID] = append(s.got[in.UserID], in.Title)
	s.n++
	if s.n == s.want {
		close(s.done)
	}
	return nil
}

func TestDispatcher_PreservesPerUserOrder(t *testing.T) {
	const users, perUser = 5, 20
	svc := newRecordingService(users * perUser)
	d := NewDispatcher(3, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < perUser; i++ {
		for u := 0; u < users; u++ {
			d.Notify(ports.NotificationInput{
				UserID: fmt.Sprintf("u-%d", u),
				Kind:   domain.NotifyFollowUpDue,
				Title:  fmt.Sprintf("%03d", i),
			})
		}
	}

	select {
	case <-svc.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for deliveries")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	for user, titles := range svc.got {
		if len(titles) != perUser {
			t.Fatalf("%s: got %d notifications, want %d", user, len(titles), perUser)
		}
		for i, title := range titles {
			if want := fmt.Sprintf("%03d", i); title != want {
				t.Fatalf("%s: position %d = %s, want %s", user, i, title, want)
			}
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("workers = %d, want default %d", len(d.workers), defaultWorkers)
	}
	first := d.shardIndex("u-42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("u-42"); got != first {
			t.Fatalf("shardIndex changed: %d then %d", first, got)
		}
	}
}

func TestDispatcher_DropsWhenShardFull(t *testing.T) {
	d := NewDispatcher(1, nil, zerolog.Nop())
	// Workers are not started, so the single buffer fills up.
	for i := 0; i < channelBuffer+5; i++ {
		d.Notify(ports.NotificationInput{UserID: "u-1"})
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("queued = %d, want %d", got, channelBuffer)
	}
}

type countingFollowUps struct {
	ports.FollowUpService

	mu    sync.Mutex
	calls int
	lead  time.Duration
}

func (c *countingFollowUps) SendDueReminders(_ context.Context, _ time.Time, lead time.Duration) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.lead = lead
	return 1, nil
}

func TestReminderLoop_SweepsUntilCancelled(t *testing.T) {
	svc := &countingFollowUps{}
	loop := &ReminderLoop{Service: svc, Interval: 10 * time.Millisecond, Lead: time.Hour, Log: zerolog.Nop()}

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	finished := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.calls < 2 {
		t.Fatalf("calls = %d, want at least 2", svc.calls)
	}
	if svc.lead != time.Hour {
		t.Fatalf("lead = %v, want 1h", svc.lead)
	}
}
