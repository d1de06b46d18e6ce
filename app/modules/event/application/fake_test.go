package eventservice

import (
	"context"
	"sort"
	"sync"
	"time"

	clubdb "github.com/Black-And-White-Club/campus-clubs/app/modules/club/infrastructure/repositories"
	eventdb "github.com/Black-And-White-Club/campus-clubs/app/modules/event/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/campus-clubs/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Event Repository
// ------------------------

type memberKey struct{ userID, eventID int64 }

type FakeEventRepository struct {
	mu      sync.Mutex
	nextID  int64
	events  map[int64]*eventdb.Event
	members map[memberKey]*eventdb.EventMember
	updates []*eventdb.EventUpdate
	clubs   *FakeClubRepository
	users   *FakeUserRepository

	CreateEventFunc func(ctx context.Context, db bun.IDB, event *eventdb.Event) error
}

func NewFakeEventRepository(clubs *FakeClubRepository, users *FakeUserRepository) *FakeEventRepository {
	return &FakeEventRepository{
		events:  map[int64]*eventdb.Event{},
		members: map[memberKey]*eventdb.EventMember{},
		clubs:   clubs,
		users:   users,
	}
}

func (f *FakeEventRepository) Seed(name string, clubID int64, st status.Status, start time.Time) *eventdb.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e := &eventdb.Event{ID: f.nextID, Name: name, ClubID: clubID, Status: st, StartAt: start, EndAt: start.Add(2 * time.Hour)}
	f.events[e.ID] = e
	return e
}

func (f *FakeEventRepository) SeedMember(userID, eventID int64, st status.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[memberKey{userID, eventID}] = &eventdb.EventMember{UserID: userID, EventID: eventID, Status: st, RequestedAt: time.Now()}
}

func (f *FakeEventRepository) Event(id int64) (*eventdb.Event, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	return e, ok
}

func (f *FakeEventRepository) Member(userID, eventID int64) (*eventdb.EventMember, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[memberKey{userID, eventID}]
	return m, ok
}

func (f *FakeEventRepository) Updates() []*eventdb.EventUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*eventdb.EventUpdate(nil), f.updates...)
}

func (f *FakeEventRepository) withClub(e *eventdb.Event) *eventdb.Event {
	cp := *e
	if f.clubs != nil {
		cp.Club = f.clubs.club(e.ClubID)
	}
	return &cp
}

func (f *FakeEventRepository) CreateEvent(ctx context.Context, db bun.IDB, event *eventdb.Event) error {
	if f.CreateEventFunc != nil {
		return f.CreateEventFunc(ctx, db, event)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e.Name == event.Name {
			return eventdb.ErrDuplicateEventName
		}
	}
	f.nextID++
	event.ID = f.nextID
	event.CreatedAt = time.Now()
	cp := *event
	cp.Club = nil
	f.events[event.ID] = &cp
	return nil
}

func (f *FakeEventRepository) GetEventByID(ctx context.Context, db bun.IDB, id int64) (*eventdb.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, eventdb.ErrNotFound
	}
	return f.withClub(e), nil
}

func (f *FakeEventRepository) ListEvents(ctx context.Context, db bun.IDB, filter eventdb.ListFilter) ([]*eventdb.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*eventdb.Event
	for _, e := range f.sorted() {
		ev := f.withClub(e)
		switch {
		case filter.ClubID != 0:
			if e.Status == status.Accepted && e.ClubID == filter.ClubID {
				out = append(out, ev)
			}
		case filter.LeaderID != 0:
			ownPending := e.Status == status.Pending && ev.Club != nil && ev.Club.LeaderID == filter.LeaderID
			if e.Status == status.Accepted || ownPending {
				out = append(out, ev)
			}
		default:
			if e.Status == status.Accepted {
				out = append(out, ev)
			}
		}
	}
	return out, nil
}

func (f *FakeEventRepository) ListEventsByStatus(ctx context.Context, db bun.IDB, st status.Status) ([]*eventdb.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*eventdb.Event
	for _, e := range f.sorted() {
		if e.Status == st {
			out = append(out, f.withClub(e))
		}
	}
	return out, nil
}

func (f *FakeEventRepository) UpdateEventDetails(ctx context.Context, db bun.IDB, event *eventdb.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.events[event.ID]
	if !ok {
		return eventdb.ErrNoRowsAffected
	}
	for _, e := range f.events {
		if e.ID != event.ID && e.Name == event.Name {
			return eventdb.ErrDuplicateEventName
		}
	}
	existing.Name = event.Name
	existing.Description = event.Description
	existing.StartAt = event.StartAt
	existing.EndAt = event.EndAt
	return nil
}

func (f *FakeEventRepository) UpdateEventStatus(ctx context.Context, db bun.IDB, id int64, from, to status.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok || e.Status != from {
		return eventdb.ErrNoRowsAffected
	}
	e.Status = to
	return nil
}

func (f *FakeEventRepository) DeleteEvent(ctx context.Context, db bun.IDB, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return eventdb.ErrNoRowsAffected
	}
	delete(f.events, id)
	return nil
}

func (f *FakeEventRepository) InsertEventUpdate(ctx context.Context, db bun.IDB, update *eventdb.EventUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	update.ID = int64(len(f.updates) + 1)
	f.updates = append(f.updates, update)
	return nil
}

func (f *FakeEventRepository) DeleteEventUpdates(ctx context.Context, db bun.IDB, eventID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.updates[:0]
	for _, u := range f.updates {
		if u.EventID != eventID {
			kept = append(kept, u)
		}
	}
	f.updates = kept
	return nil
}

func (f *FakeEventRepository) CreateMembership(ctx context.Context, db bun.IDB, member *eventdb.EventMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := memberKey{member.UserID, member.EventID}
	if _, ok := f.members[key]; ok {
		return eventdb.ErrDuplicateMembership
	}
	member.RequestedAt = time.Now()
	cp := *member
	f.members[key] = &cp
	return nil
}

func (f *FakeEventRepository) GetMembership(ctx context.Context, db bun.IDB, userID, eventID int64) (*eventdb.EventMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[memberKey{userID, eventID}]
	if !ok {
		return nil, eventdb.ErrNotFound
	}
	cp := *m
	if e, ok := f.events[eventID]; ok {
		cp.Event = f.withClub(e)
	}
	return &cp, nil
}

func (f *FakeEventRepository) ListPendingMembershipsByLeader(ctx context.Context, db bun.IDB, leaderID int64) ([]*eventdb.EventMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*eventdb.EventMember
	for _, e := range f.sorted() {
		ev := f.withClub(e)
		if ev.Club == nil || ev.Club.LeaderID != leaderID {
			continue
		}
		for k, m := range f.members {
			if k.eventID != e.ID || m.Status != status.Pending {
				continue
			}
			cp := *m
			cp.Event = ev
			if f.users != nil {
				cp.User = f.users.user(m.UserID)
			}
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].EventID != out[j].EventID {
			return out[i].EventID < out[j].EventID
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (f *FakeEventRepository) UpdateMembershipStatus(ctx context.Context, db bun.IDB, userID, eventID int64, from, to status.Status, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[memberKey{userID, eventID}]
	if !ok || m.Status != from {
		return eventdb.ErrNoRowsAffected
	}
	m.Status = to
	m.DecidedAt = &at
	return nil
}

func (f *FakeEventRepository) DeleteMembership(ctx context.Context, db bun.IDB, userID, eventID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := memberKey{userID, eventID}
	if _, ok := f.members[key]; !ok {
		return eventdb.ErrNoRowsAffected
	}
	delete(f.members, key)
	return nil
}

func (f *FakeEventRepository) DeleteMembershipsByEvent(ctx context.Context, db bun.IDB, eventID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.members {
		if k.eventID == eventID {
			delete(f.members, k)
			n++
		}
	}
	return n, nil
}

func (f *FakeEventRepository) DeleteUserMembershipsInClub(ctx context.Context, db bun.IDB, userID, clubID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.members {
		if e, ok := f.events[k.eventID]; ok && k.userID == userID && e.ClubID == clubID {
			delete(f.members, k)
			n++
		}
	}
	return n, nil
}

func (f *FakeEventRepository) DeleteEventsByClub(ctx context.Context, db bun.IDB, clubID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, e := range f.events {
		if e.ClubID != clubID {
			continue
		}
		for k := range f.members {
			if k.eventID == id {
				delete(f.members, k)
			}
		}
		delete(f.events, id)
	}
	return nil
}

func (f *FakeEventRepository) sorted() []*eventdb.Event {
	out := make([]*eventdb.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var _ eventdb.Repository = (*FakeEventRepository)(nil)

// ------------------------
// Fake Club / User Repositories
// ------------------------

// FakeClubRepository answers club lookups only. Calling any other method
// panics on the nil embedded interface.
type FakeClubRepository struct {
	clubdb.Repository
	mu    sync.Mutex
	clubs map[int64]*clubdb.Club
}

func NewFakeClubRepository() *FakeClubRepository {
	return &FakeClubRepository{clubs: map[int64]*clubdb.Club{}}
}

func (f *FakeClubRepository) Add(id, leaderID int64, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clubs[id] = &clubdb.Club{ID: id, Name: name, LeaderID: leaderID, Status: status.Accepted}
}

func (f *FakeClubRepository) SetStatus(id int64, st status.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clubs[id].Status = st
}

func (f *FakeClubRepository) club(id int64) *clubdb.Club {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.clubs[id]; ok {
		cp := *c
		return &cp
	}
	return nil
}

func (f *FakeClubRepository) GetClubByID(ctx context.Context, db bun.IDB, id int64) (*clubdb.Club, error) {
	if c := f.club(id); c != nil {
		return c, nil
	}
	return nil, clubdb.ErrNotFound
}

// FakeUserRepository answers user lookups only.
type FakeUserRepository struct {
	userdb.Repository
	mu    sync.Mutex
	users map[int64]*userdb.User
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{users: map[int64]*userdb.User{}}
}

func (f *FakeUserRepository) Add(id int64, name, role string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id] = &userdb.User{ID: id, UserName: name, Role: &userdb.Role{Name: role}}
}

func (f *FakeUserRepository) user(id int64) *userdb.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id]
}

func (f *FakeUserRepository) GetUserByID(ctx context.Context, db bun.IDB, id int64) (*userdb.User, error) {
	if u := f.user(id); u != nil {
		return u, nil
	}
	return nil, userdb.ErrNotFound
}

// ------------------------
// Fake Publisher
// ------------------------

type published struct {
	Topic   string
	Payload any
}

type FakePublisher struct {
	mu       sync.Mutex
	Messages []published
}

func (f *FakePublisher) Publish(ctx context.Context, topic string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Messages = append(f.Messages, published{Topic: topic, Payload: payload})
	return nil
}
