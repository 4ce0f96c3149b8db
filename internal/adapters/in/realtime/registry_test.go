package realtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"craftorders/internal/core/domain/model/conversation"
	"craftorders/internal/core/ports"
)

type fakeConn struct {
	mu      sync.Mutex
	written []OutboundEnvelope
	closed  bool
}

func (f *fakeConn) ReadJSON(any) error {
	return assert.AnError
}

func (f *fakeConn) WriteJSON(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = append(f.written, v.(OutboundEnvelope))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func newTestClient(id string, role conversation.Sender) (*Client, *fakeConn) {
	conn := &fakeConn{}
	client := NewClient(ports.Identity{ID: id, DisplayName: id, Role: role}, conn)
	return client, conn
}

func memberIDs(members []*Client) []string {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID())
	}
	return ids
}

func Test_Registry_JoinAndLeave(t *testing.T) {
	registry := NewRegistry()
	staff, _ := newTestClient("staff-1", conversation.SenderStaff)
	customer, _ := newTestClient("customer-1", conversation.SenderCustomer)
	registry.Register(staff)
	registry.Register(customer)

	registry.Join("order-1", staff)
	registry.Join("order-1", customer)

	assert.ElementsMatch(t, []string{"staff-1", "customer-1"}, memberIDs(registry.RoomMembers("order-1")))
	assert.True(t, registry.InRoom("order-1", staff))

	registry.Leave("order-1", staff)

	assert.ElementsMatch(t, []string{"customer-1"}, memberIDs(registry.RoomMembers("order-1")))
	assert.False(t, registry.InRoom("order-1", staff))
}

func Test_Registry_JoinIsIdempotent(t *testing.T) {
	registry := NewRegistry()
	staff, _ := newTestClient("staff-1", conversation.SenderStaff)
	registry.Register(staff)

	registry.Join("order-1", staff)
	registry.Join("order-1", staff)

	assert.Len(t, registry.RoomMembers("order-1"), 1)
}

func Test_Registry_LeaveUnknownRoomIsNoop(t *testing.T) {
	registry := NewRegistry()
	staff, _ := newTestClient("staff-1", conversation.SenderStaff)
	registry.Register(staff)

	registry.Leave("order-1", staff)

	assert.Empty(t, registry.RoomMembers("order-1"))
}

func Test_Registry_UnregisterReturnsJoinedRooms(t *testing.T) {
	registry := NewRegistry()
	staff, _ := newTestClient("staff-1", conversation.SenderStaff)
	registry.Register(staff)
	registry.Join("order-1", staff)
	registry.Join("order-2", staff)

	left := registry.Unregister(staff)

	assert.ElementsMatch(t, []string{"order-1", "order-2"}, left)
	assert.Empty(t, registry.RoomMembers("order-1"))
	assert.Empty(t, registry.RoomMembers("order-2"))
	assert.Zero(t, registry.ConnectionCount())
}

func Test_Registry_ReconnectReplacesConnectionAndKeepsRooms(t *testing.T) {
	registry := NewRegistry()
	first, firstConn := newTestClient("staff-1", conversation.SenderStaff)
	registry.Register(first)
	registry.Join("order-1", first)

	second, _ := newTestClient("staff-1", conversation.SenderStaff)
	registry.Register(second)

	assert.True(t, firstConn.isClosed())
	assert.Equal(t, 1, registry.ConnectionCount())

	members := registry.RoomMembers("order-1")
	assert.Len(t, members, 1)
	assert.Same(t, second, members[0])
}

func Test_Registry_UnregisterStaleConnectionIsIgnored(t *testing.T) {
	registry := NewRegistry()
	first, _ := newTestClient("staff-1", conversation.SenderStaff)
	registry.Register(first)
	registry.Join("order-1", first)

	second, _ := newTestClient("staff-1", conversation.SenderStaff)
	registry.Register(second)

	left := registry.Unregister(first)

	assert.Empty(t, left)
	assert.Equal(t, 1, registry.ConnectionCount())
	assert.Len(t, registry.RoomMembers("order-1"), 1)
}

func Test_Registry_ConcurrentJoinLeave(t *testing.T) {
	registry := NewRegistry()
	const workers = 16

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		client, _ := newTestClient(fmt.Sprintf("user-%d", i), conversation.SenderCustomer)
		registry.Register(client)

		wg.Add(1)
		go func(c *Client) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				registry.Join("order-1", c)
				registry.RoomMembers("order-1")
				registry.Leave("order-1", c)
			}
			registry.Join("order-1", c)
		}(client)
	}
	wg.Wait()

	assert.Len(t, registry.RoomMembers("order-1"), workers)
	assert.Equal(t, workers, registry.ConnectionCount())
}

func Test_Registry_RoomMembersIsASnapshot(t *testing.T) {
	registry := NewRegistry()
	staff, _ := newTestClient("staff-1", conversation.SenderStaff)
	customer, _ := newTestClient("customer-1", conversation.SenderCustomer)
	registry.Register(staff)
	registry.Register(customer)
	registry.Join("order-1", staff)
	registry.Join("order-1", customer)

	members := registry.RoomMembers("order-1")
	registry.Leave("order-1", customer)

	assert.Len(t, members, 2)
	assert.Len(t, registry.RoomMembers("order-1"), 1)
}
