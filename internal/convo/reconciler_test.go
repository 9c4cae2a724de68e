package convo

import (
	"testing"

	"github.com/matheus3301/zapdesk/internal/bus"
)

func snapshotRow(userID, text, isoTime string, status Status) Conversation {
	return Conversation{
		UserID:            userID,
		LastMessage:       text,
		LastMessageType:   "text",
		LastMessageTime:   FlexTime(NormalizeMillis(isoTime)),
		LastMessageStatus: status,
		LastMessageFromMe: true,
	}
}

func TestStatusRaisedOnEqualTimestamp(t *testing.T) {
	r := NewReconciler(nil, nil)
	r.ApplySnapshot([]Conversation{
		snapshotRow("1", "hi", "2024-01-01T10:00:00Z", StatusSent),
	})

	r.Apply(Update{
		UserID:    "1",
		Status:    StatusDelivered,
		Timestamp: NormalizeMillis("2024-01-01T10:00:00Z"),
	})

	c := r.Get("1")
	if c.LastMessageStatus != StatusDelivered {
		t.Errorf("status = %q, want delivered", c.LastMessageStatus)
	}
	if c.LastMessage != "hi" {
		t.Errorf("content changed on equal timestamp: %q", c.LastMessage)
	}
}

func TestStatusNeverDowngraded(t *testing.T) {
	r := NewReconciler(nil, nil)
	ts := NormalizeMillis("2024-01-01T10:00:00Z")
	r.Apply(Update{UserID: "1", LastMessage: "hi", LastMessageType: "text", FromMe: true, Status: StatusRead, Timestamp: ts})

	// A concurrently arriving older tick must not regress "read".
	r.Apply(Update{UserID: "1", LastMessage: "hi", LastMessageType: "text", FromMe: true, Status: StatusSent, Timestamp: ts})

	if got := r.Get("1").LastMessageStatus; got != StatusRead {
		t.Errorf("status = %q, want read (never downgraded)", got)
	}
}

func TestEqualTimestampRankIsMax(t *testing.T) {
	pairs := []struct {
		a, b, want Status
	}{
		{StatusSent, StatusDelivered, StatusDelivered},
		{StatusDelivered, StatusSent, StatusDelivered},
		{StatusRead, StatusFailed, StatusFailed},
		{StatusSending, StatusSending, StatusSending},
	}
	for _, p := range pairs {
		r := NewReconciler(nil, nil)
		r.Apply(Update{UserID: "1", LastMessage: "x", LastMessageType: "text", FromMe: true, Status: p.a, Timestamp: 1000})
		r.Apply(Update{UserID: "1", LastMessage: "x", LastMessageType: "text", FromMe: true, Status: p.b, Timestamp: 1000})
		if got := r.Get("1").LastMessageStatus; got != p.want {
			t.Errorf("merge(%s, %s) = %s, want %s", p.a, p.b, got, p.want)
		}
	}
}

func TestStaleUpdateIgnoredForContent(t *testing.T) {
	r := NewReconciler(nil, nil)
	r.Apply(Update{UserID: "1", LastMessage: "newer", LastMessageType: "text", Timestamp: 2000})

	// Stale push with different text: content and timestamp untouched.
	r.Apply(Update{UserID: "1", LastMessage: "older", LastMessageType: "text", Timestamp: 1000})

	c := r.Get("1")
	if c.LastMessage != "newer" {
		t.Errorf("content = %q, want newer (stale update must not clobber)", c.LastMessage)
	}
	if int64(c.LastMessageTime) != 2000 {
		t.Errorf("timestamp = %d, want 2000", int64(c.LastMessageTime))
	}
}

func TestStaleStatusRaisedForSameLogicalMessage(t *testing.T) {
	r := NewReconciler(nil, nil)
	r.Apply(Update{UserID: "1", LastMessage: "hi", LastMessageType: "text", FromMe: true, Status: StatusSent, Timestamp: 2000})

	// Older event about the same message may still raise the tick.
	r.Apply(Update{UserID: "1", LastMessage: "hi", LastMessageType: "text", FromMe: true, Status: StatusDelivered, Timestamp: 1000})

	c := r.Get("1")
	if c.LastMessageStatus != StatusDelivered {
		t.Errorf("status = %q, want delivered", c.LastMessageStatus)
	}
	if int64(c.LastMessageTime) != 2000 {
		t.Errorf("timestamp = %d, want 2000", int64(c.LastMessageTime))
	}
}

func TestStaleStatusIgnoredForDifferentMessage(t *testing.T) {
	r := NewReconciler(nil, nil)
	r.Apply(Update{UserID: "1", LastMessage: "hi", LastMessageType: "text", FromMe: true, Status: StatusSent, Timestamp: 2000})

	r.Apply(Update{UserID: "1", LastMessage: "other", LastMessageType: "text", FromMe: true, Status: StatusRead, Timestamp: 1000})

	if got := r.Get("1").LastMessageStatus; got != StatusSent {
		t.Errorf("status = %q, want sent (different logical message)", got)
	}
}

func TestNewerUpdateWinsContent(t *testing.T) {
	r := NewReconciler(nil, nil)
	r.Apply(Update{UserID: "1", LastMessage: "old", LastMessageType: "text", Status: StatusRead, Timestamp: 1000})
	r.Apply(Update{UserID: "1", LastMessage: "new", LastMessageType: "image", FromMe: true, Status: StatusSending, Timestamp: 2000})

	c := r.Get("1")
	if c.LastMessage != "new" || c.LastMessageType != "image" || !c.LastMessageFromMe {
		t.Errorf("content not overwritten by newer update: %+v", c)
	}
	if c.LastMessageStatus != StatusSending {
		t.Errorf("status = %q, want sending (newer message resets the tick)", c.LastMessageStatus)
	}
}

func TestSnapshotThenPushScenario(t *testing.T) {
	// Snapshot lands sent@10:00, then a push delivers the same message
	// at the same timestamp; the tick must advance to delivered.
	r := NewReconciler(nil, nil)
	r.ApplySnapshot([]Conversation{
		snapshotRow("1", "hi", "2024-01-01T10:00:00Z", StatusSent),
	})
	r.Apply(Update{
		UserID:      "1",
		LastMessage: "hi", LastMessageType: "text", FromMe: true,
		Status:    StatusDelivered,
		Timestamp: NormalizeMillis("2024-01-01T10:00:00Z"),
	})
	if got := r.Get("1").LastMessageStatus; got != StatusDelivered {
		t.Errorf("status = %q, want delivered", got)
	}
}

func TestPushCreatesUnknownConversation(t *testing.T) {
	r := NewReconciler(nil, nil)
	r.Apply(Update{UserID: "9", LastMessage: "oi", LastMessageType: "text", Timestamp: 1000, CountUnread: true})

	c := r.Get("9")
	if c == nil {
		t.Fatal("conversation not created")
	}
	if c.UnreadCount != 1 {
		t.Errorf("unread = %d, want 1", c.UnreadCount)
	}
}

func TestPushForActiveConversationStaysRead(t *testing.T) {
	r := NewReconciler(nil, nil)
	r.SetActive("9")
	r.Apply(Update{UserID: "9", LastMessage: "oi", LastMessageType: "text", Timestamp: 1000, CountUnread: true})

	if got := r.Get("9").UnreadCount; got != 0 {
		t.Errorf("unread = %d, want 0 for active conversation", got)
	}
}

func TestSetActiveZeroesUnread(t *testing.T) {
	r := NewReconciler(nil, nil)
	r.Apply(Update{UserID: "1", LastMessage: "a", LastMessageType: "text", Timestamp: 1000, CountUnread: true})
	r.Apply(Update{UserID: "1", LastMessage: "b", LastMessageType: "text", Timestamp: 2000, CountUnread: true})
	if got := r.Get("1").UnreadCount; got != 2 {
		t.Fatalf("unread = %d, want 2", got)
	}

	r.SetActive("1")
	if got := r.Get("1").UnreadCount; got != 0 {
		t.Errorf("unread = %d, want 0 immediately after selection", got)
	}

	// Snapshot refetch must not resurrect the counter while active.
	row := snapshotRow("1", "b", "2024-01-01T10:00:00Z", "")
	row.UnreadCount = 2
	r.ApplySnapshot([]Conversation{row})
	if got := r.Get("1").UnreadCount; got != 0 {
		t.Errorf("unread = %d after snapshot, want 0 while active", got)
	}
}

func TestListSortedDescending(t *testing.T) {
	r := NewReconciler(nil, nil)
	r.Apply(Update{UserID: "a", LastMessage: "1", LastMessageType: "text", Timestamp: 1000})
	r.Apply(Update{UserID: "b", LastMessage: "2", LastMessageType: "text", Timestamp: 3000})
	r.Apply(Update{UserID: "c", LastMessage: "3", LastMessageType: "text", Timestamp: 2000})

	list := r.List()
	for i := 1; i < len(list); i++ {
		if list[i-1].LastMessageTime < list[i].LastMessageTime {
			t.Fatalf("list not sorted descending at %d: %v", i, list)
		}
	}
	if list[0].UserID != "b" {
		t.Errorf("head = %q, want b", list[0].UserID)
	}

	// A newer message moves its conversation to the head.
	r.Apply(Update{UserID: "a", LastMessage: "4", LastMessageType: "text", Timestamp: 4000})
	if got := r.List()[0].UserID; got != "a" {
		t.Errorf("head after update = %q, want a", got)
	}
}

func TestStaleUpdateKeepsListOrder(t *testing.T) {
	r := NewReconciler(nil, nil)
	r.Apply(Update{UserID: "a", LastMessage: "x", LastMessageType: "text", Timestamp: 3000})
	r.Apply(Update{UserID: "b", LastMessage: "y", LastMessageType: "text", Timestamp: 2000})

	// Stale push for "a": ignored for content, order unaffected.
	r.Apply(Update{UserID: "a", LastMessage: "stale", LastMessageType: "text", Timestamp: 1000})

	list := r.List()
	if list[0].UserID != "a" || list[0].LastMessage != "x" {
		t.Errorf("list head = %+v, want a with original content", list[0])
	}
}

func TestSnapshotDefinesVisibility(t *testing.T) {
	r := NewReconciler(nil, nil)
	r.ApplySnapshot([]Conversation{
		snapshotRow("1", "a", "2024-01-01T10:00:00Z", ""),
		snapshotRow("2", "b", "2024-01-01T11:00:00Z", ""),
	})
	// Narrower filter drops "1" from view but keeps it known.
	r.ApplySnapshot([]Conversation{
		snapshotRow("2", "b", "2024-01-01T11:00:00Z", ""),
	})

	list := r.List()
	if len(list) != 1 || list[0].UserID != "2" {
		t.Errorf("list = %v, want only user 2", list)
	}
	if r.Get("1") == nil {
		t.Error("conversation 1 should remain known after filter change")
	}
}

func TestListChangedPublished(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe("convo.", 10)
	defer unsub()

	r := NewReconciler(b, nil)
	r.Apply(Update{UserID: "1", LastMessage: "hi", LastMessageType: "text", Timestamp: 1000})

	select {
	case evt := <-ch:
		if evt.Kind != bus.KindListChanged {
			t.Errorf("kind = %q, want %q", evt.Kind, bus.KindListChanged)
		}
	default:
		t.Fatal("no list_changed event published")
	}
}

func TestAssignmentAndTags(t *testing.T) {
	r := NewReconciler(nil, nil)
	r.Apply(Update{UserID: "1", LastMessage: "hi", LastMessageType: "text", Timestamp: 1000})

	r.SetAssignment("1", "maria")
	r.SetTags("1", []string{"vip", TagDone})

	c := r.Get("1")
	if c.AssignedAgent != "maria" {
		t.Errorf("assigned = %q, want maria", c.AssignedAgent)
	}
	if !c.Archived() {
		t.Error("conversation with done tag should report archived")
	}
}
