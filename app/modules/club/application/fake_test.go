package clubservice

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Black-And-White-Club/campus-clubs/app/eventbus"
	clubdb "github.com/Black-And-White-Club/campus-clubs/app/modules/club/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/campus-clubs/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Club Repository
// ------------------------

type memberKey struct{ userID, clubID int64 }

// FakeClubRepository keeps clubs and memberships in memory and enforces the
// same unique constraints the schema does.
type FakeClubRepository struct {
	mu      sync.Mutex
	trace   []string
	nextID  int64
	clubs   map[int64]*clubdb.Club
	members map[memberKey]*clubdb.ClubMember
	updates []*clubdb.ClubUpdate
	users   *FakeUserRepository

	CreateClubFunc func(ctx context.Context, db bun.IDB, club *clubdb.Club) error
}

func NewFakeClubRepository(users *FakeUserRepository) *FakeClubRepository {
	return &FakeClubRepository{
		clubs:   map[int64]*clubdb.Club{},
		members: map[memberKey]*clubdb.ClubMember{},
		users:   users,
	}
}

func (f *FakeClubRepository) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeClubRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.trace...)
}

// Seed stores a club directly and returns it.
func (f *FakeClubRepository) Seed(name string, leaderID int64, st status.Status) *clubdb.Club {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c := &clubdb.Club{ID: f.nextID, Name: name, LeaderID: leaderID, Status: st, CreatedAt: time.Now()}
	f.clubs[c.ID] = c
	return c
}

func (f *FakeClubRepository) SeedMember(userID, clubID int64, st status.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[memberKey{userID, clubID}] = &clubdb.ClubMember{UserID: userID, ClubID: clubID, Status: st, RequestedAt: time.Now()}
}

func (f *FakeClubRepository) Member(userID, clubID int64) (*clubdb.ClubMember, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[memberKey{userID, clubID}]
	return m, ok
}

func (f *FakeClubRepository) Club(id int64) (*clubdb.Club, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clubs[id]
	return c, ok
}

func (f *FakeClubRepository) Updates() []*clubdb.ClubUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*clubdb.ClubUpdate(nil), f.updates...)
}

func (f *FakeClubRepository) withLeader(c *clubdb.Club) *clubdb.Club {
	cp := *c
	if f.users != nil {
		cp.Leader = f.users.user(c.LeaderID)
	}
	return &cp
}

func (f *FakeClubRepository) CreateClub(ctx context.Context, db bun.IDB, club *clubdb.Club) error {
	if f.CreateClubFunc != nil {
		return f.CreateClubFunc(ctx, db, club)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateClub")
	for _, c := range f.clubs {
		if c.Name == club.Name {
			return clubdb.ErrDuplicateClubName
		}
		if c.LeaderID == club.LeaderID {
			return clubdb.ErrLeaderHasClub
		}
	}
	f.nextID++
	club.ID = f.nextID
	club.CreatedAt = time.Now()
	cp := *club
	f.clubs[club.ID] = &cp
	return nil
}

func (f *FakeClubRepository) GetClubByID(ctx context.Context, db bun.IDB, id int64) (*clubdb.Club, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetClubByID")
	c, ok := f.clubs[id]
	if !ok {
		return nil, clubdb.ErrNotFound
	}
	return f.withLeader(c), nil
}

func (f *FakeClubRepository) GetClubByLeader(ctx context.Context, db bun.IDB, leaderID int64) (*clubdb.Club, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetClubByLeader")
	for _, c := range f.clubs {
		if c.LeaderID == leaderID {
			return f.withLeader(c), nil
		}
	}
	return nil, clubdb.ErrNotFound
}

func (f *FakeClubRepository) GetClubWithMembers(ctx context.Context, db bun.IDB, leaderID int64, st status.Status) (*clubdb.Club, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetClubWithMembers")
	for _, c := range f.clubs {
		if c.LeaderID != leaderID || c.Status != st {
			continue
		}
		out := f.withLeader(c)
		for _, m := range f.sortedMembers(c.ID) {
			cp := *m
			if f.users != nil {
				cp.User = f.users.user(m.UserID)
			}
			out.Members = append(out.Members, &cp)
		}
		return out, nil
	}
	return nil, clubdb.ErrNotFound
}

func (f *FakeClubRepository) ListClubsByStatus(ctx context.Context, db bun.IDB, st status.Status) ([]*clubdb.Club, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListClubsByStatus")
	var out []*clubdb.Club
	for _, c := range f.clubs {
		if c.Status == st {
			out = append(out, f.withLeader(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *FakeClubRepository) UpdateClubDetails(ctx context.Context, db bun.IDB, club *clubdb.Club) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateClubDetails")
	existing, ok := f.clubs[club.ID]
	if !ok {
		return clubdb.ErrNoRowsAffected
	}
	for _, c := range f.clubs {
		if c.ID != club.ID && c.Name == club.Name {
			return clubdb.ErrDuplicateClubName
		}
	}
	existing.Name = club.Name
	existing.Description = club.Description
	return nil
}

func (f *FakeClubRepository) UpdateClubStatus(ctx context.Context, db bun.IDB, id int64, from, to status.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateClubStatus")
	c, ok := f.clubs[id]
	if !ok || c.Status != from {
		return clubdb.ErrNoRowsAffected
	}
	c.Status = to
	return nil
}

func (f *FakeClubRepository) DeleteClub(ctx context.Context, db bun.IDB, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteClub")
	if _, ok := f.clubs[id]; !ok {
		return clubdb.ErrNoRowsAffected
	}
	delete(f.clubs, id)
	return nil
}

func (f *FakeClubRepository) InsertClubUpdate(ctx context.Context, db bun.IDB, update *clubdb.ClubUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("InsertClubUpdate")
	update.ID = int64(len(f.updates) + 1)
	f.updates = append(f.updates, update)
	return nil
}

func (f *FakeClubRepository) DeleteClubUpdates(ctx context.Context, db bun.IDB, clubID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteClubUpdates")
	kept := f.updates[:0]
	for _, u := range f.updates {
		if u.ClubID != clubID {
			kept = append(kept, u)
		}
	}
	f.updates = kept
	return nil
}

func (f *FakeClubRepository) CreateMembership(ctx context.Context, db bun.IDB, member *clubdb.ClubMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateMembership")
	key := memberKey{member.UserID, member.ClubID}
	if _, ok := f.members[key]; ok {
		return clubdb.ErrDuplicateMembership
	}
	member.RequestedAt = time.Now()
	cp := *member
	f.members[key] = &cp
	return nil
}

func (f *FakeClubRepository) GetMembership(ctx context.Context, db bun.IDB, userID, clubID int64) (*clubdb.ClubMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetMembership")
	m, ok := f.members[memberKey{userID, clubID}]
	if !ok {
		return nil, clubdb.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *FakeClubRepository) ListMembershipsByStatus(ctx context.Context, db bun.IDB, clubID int64, st status.Status) ([]*clubdb.ClubMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListMembershipsByStatus")
	var out []*clubdb.ClubMember
	for _, m := range f.sortedMembers(clubID) {
		if m.Status != st {
			continue
		}
		cp := *m
		if f.users != nil {
			cp.User = f.users.user(m.UserID)
		}
		out = append(out, &cp)
	}
	return out, nil
}

func (f *FakeClubRepository) UpdateMembershipStatus(ctx context.Context, db bun.IDB, userID, clubID int64, from, to status.Status, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateMembershipStatus")
	m, ok := f.members[memberKey{userID, clubID}]
	if !ok || m.Status != from {
		return clubdb.ErrNoRowsAffected
	}
	m.Status = to
	m.DecidedAt = &at
	return nil
}

func (f *FakeClubRepository) DeleteMembership(ctx context.Context, db bun.IDB, userID, clubID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteMembership")
	key := memberKey{userID, clubID}
	if _, ok := f.members[key]; !ok {
		return clubdb.ErrNoRowsAffected
	}
	delete(f.members, key)
	return nil
}

func (f *FakeClubRepository) DeleteMembershipsByClub(ctx context.Context, db bun.IDB, clubID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteMembershipsByClub")
	var n int64
	for k := range f.members {
		if k.clubID == clubID {
			delete(f.members, k)
			n++
		}
	}
	return n, nil
}

func (f *FakeClubRepository) sortedMembers(clubID int64) []*clubdb.ClubMember {
	var out []*clubdb.ClubMember
	for k, m := range f.members {
		if k.clubID == clubID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

var _ clubdb.Repository = (*FakeClubRepository)(nil)

// ------------------------
// Fake User Repository
// ------------------------

// FakeUserRepository only answers user lookups; the session methods are
// never reached from the club service.
type FakeUserRepository struct {
	mu    sync.Mutex
	users map[int64]*userdb.User
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{users: map[int64]*userdb.User{}}
}

func (f *FakeUserRepository) Add(id int64, name, role string) *userdb.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &userdb.User{ID: id, UserName: name, Email: name + "@uni.edu", Role: &userdb.Role{Name: role}}
	f.users[id] = u
	return u
}

func (f *FakeUserRepository) user(id int64) *userdb.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id]
}

func (f *FakeUserRepository) GetRoleByName(ctx context.Context, db bun.IDB, name string) (*userdb.Role, error) {
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepository) CreateUser(ctx context.Context, db bun.IDB, user *userdb.User) error {
	return nil
}

func (f *FakeUserRepository) GetUserByID(ctx context.Context, db bun.IDB, id int64) (*userdb.User, error) {
	if u := f.user(id); u != nil {
		return u, nil
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepository) GetUserByEmail(ctx context.Context, db bun.IDB, email string) (*userdb.User, error) {
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepository) SaveRefreshToken(ctx context.Context, db bun.IDB, token *userdb.RefreshToken) error {
	return nil
}

func (f *FakeUserRepository) GetRefreshToken(ctx context.Context, db bun.IDB, hash string) (*userdb.RefreshToken, error) {
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepository) RevokeRefreshToken(ctx context.Context, db bun.IDB, hash string, at time.Time) error {
	return nil
}

func (f *FakeUserRepository) RevokeTokenFamily(ctx context.Context, db bun.IDB, family string, at time.Time) error {
	return nil
}

func (f *FakeUserRepository) TouchRefreshToken(ctx context.Context, db bun.IDB, hash string, at time.Time) error {
	return nil
}

var _ userdb.Repository = (*FakeUserRepository)(nil)

// ------------------------
// Fake Event Cleaner
// ------------------------

type FakeEventCleaner struct {
	Removed      int64
	KickedUsers  []int64
	ClearedClubs []int64
}

func (f *FakeEventCleaner) DeleteUserMembershipsInClub(ctx context.Context, db bun.IDB, userID, clubID int64) (int64, error) {
	f.KickedUsers = append(f.KickedUsers, userID)
	return f.Removed, nil
}

func (f *FakeEventCleaner) DeleteEventsByClub(ctx context.Context, db bun.IDB, clubID int64) error {
	f.ClearedClubs = append(f.ClearedClubs, clubID)
	return nil
}

var _ EventCleaner = (*FakeEventCleaner)(nil)

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
	Err      error
}

func (f *FakePublisher) Publish(ctx context.Context, topic string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Messages = append(f.Messages, published{Topic: topic, Payload: payload})
	return nil
}

var _ eventbus.Publisher = (*FakePublisher)(nil)
