package hub

import (
	"context"
	"errors"
	"pairing-hub/internal/broadcast"
	"pairing-hub/internal/config"
	"pairing-hub/internal/identity"
	"pairing-hub/internal/presence"
	"pairing-hub/internal/repository"
	"pairing-hub/internal/repository/model"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

var errStoreDown = errors.New("store down")

// memRepo is an in-memory repository.Repository.
type memRepo struct {
	mu sync.Mutex

	users      map[string]*model.User
	pairs      map[string]*model.ClientPair
	perms      map[string]*model.PairPermissions
	access     map[string]*model.PairAccess
	globals    map[string]*model.GlobalPermissions
	states     map[string]*model.ActiveState
	profiles   map[string]*model.Profile
	reputation map[string]*model.Reputation

	failGets bool
}

func newMemRepo(uids ...string) *memRepo {
	r := &memRepo{
		users:      map[string]*model.User{},
		pairs:      map[string]*model.ClientPair{},
		perms:      map[string]*model.PairPermissions{},
		access:     map[string]*model.PairAccess{},
		globals:    map[string]*model.GlobalPermissions{},
		states:     map[string]*model.ActiveState{},
		profiles:   map[string]*model.Profile{},
		reputation: map[string]*model.Reputation{},
	}
	for _, uid := range uids {
		r.users[uid] = &model.User{UID: uid, CreatedAt: testNow}
	}
	return r
}

func (r *memRepo) GetUser(_ context.Context, uid string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGets {
		return nil, errStoreDown
	}
	return r.users[uid], nil
}

func (r *memRepo) GetUserByUIDOrAlias(_ context.Context, uidOrAlias string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[uidOrAlias]; ok {
		return u, nil
	}
	for _, u := range r.users {
		if u.Alias == uidOrAlias {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memRepo) UpdateLastLogin(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[uid]; ok {
		u.LastLogin = testNow
		return nil
	}
	r.users[uid] = &model.User{UID: uid, CreatedAt: testNow, LastLogin: testNow}
	return nil
}

func (r *memRepo) GetPair(_ context.Context, userUID string, otherUID string) (*model.ClientPair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGets {
		return nil, errStoreDown
	}
	return r.pairs[model.PairId(userUID, otherUID)], nil
}

func (r *memRepo) ListPairs(_ context.Context, uid string) ([]*model.ClientPair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.ClientPair
	for _, p := range r.pairs {
		if p.UserUID == uid {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

func (r *memRepo) ListPairedBy(_ context.Context, uid string) ([]*model.ClientPair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.ClientPair
	for _, p := range r.pairs {
		if p.OtherUserUID == uid {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memRepo) CreatePair(_ context.Context, pair *model.ClientPair, perms *model.PairPermissions, access *model.PairAccess) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pairs[pair.Id]; ok {
		return repository.ErrPairExists
	}
	r.pairs[pair.Id] = pair
	r.perms[perms.Id] = perms
	r.access[access.Id] = access
	return nil
}

func (r *memRepo) DeletePair(_ context.Context, userUID string, otherUID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := model.PairId(userUID, otherUID)
	if _, ok := r.pairs[id]; !ok {
		return repository.ErrPairNotFound
	}
	delete(r.pairs, id)
	delete(r.perms, id)
	delete(r.access, id)
	return nil
}

func (r *memRepo) GetPairPermissions(_ context.Context, userUID string, otherUID string) (*model.PairPermissions, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.perms[model.PairId(userUID, otherUID)]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *memRepo) SavePairPermissions(_ context.Context, perms *model.PairPermissions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *perms
	r.perms[perms.Id] = &c
	return nil
}

func (r *memRepo) ListPermissionsToward(_ context.Context, other string, uids []string) (map[string]*model.PairPermissions, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]*model.PairPermissions{}
	for _, uid := range uids {
		if p, ok := r.perms[model.PairId(uid, other)]; ok {
			out[uid] = p
		}
	}
	return out, nil
}

func (r *memRepo) GetPairAccess(_ context.Context, userUID string, otherUID string) (*model.PairAccess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.access[model.PairId(userUID, otherUID)]
	if !ok {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (r *memRepo) SavePairAccess(_ context.Context, access *model.PairAccess) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *access
	r.access[access.Id] = &c
	return nil
}

func (r *memRepo) GetGlobalPermissions(_ context.Context, uid string) (*model.GlobalPermissions, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.globals[uid]
	if !ok {
		return nil, nil
	}
	c := *g
	return &c, nil
}

func (r *memRepo) SaveGlobalPermissions(_ context.Context, global *model.GlobalPermissions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *global
	r.globals[global.UserUID] = &c
	return nil
}

func (r *memRepo) GetActiveState(_ context.Context, uid string) (*model.ActiveState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.states[uid]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r *memRepo) SaveActiveState(_ context.Context, state *model.ActiveState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *state
	r.states[state.UserUID] = &c
	return nil
}

func (r *memRepo) GetProfile(_ context.Context, uid string) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[uid]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *memRepo) SaveProfile(_ context.Context, profile *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *profile
	r.profiles[profile.UserUID] = &c
	return nil
}

func (r *memRepo) GetReputation(_ context.Context, uid string) (*model.Reputation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reputation[uid], nil
}

// pair stores an edge with default rows, as CreatePair would.
func (r *memRepo) pair(userUID, otherUID string) {
	_ = r.CreatePair(context.Background(), model.NewClientPair(userUID, otherUID, testNow),
		model.DefaultPairPermissions(userUID, otherUID), model.DefaultPairAccess(userUID, otherUID))
}

// memDir is an in-memory presence.Directory.
type memDir struct {
	mu      sync.Mutex
	entries map[string]presence.Entry
}

func newMemDir() *memDir {
	return &memDir{entries: map[string]presence.Entry{}}
}

func (d *memDir) SetOnline(_ context.Context, uid string, entry presence.Entry) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[uid] = entry
	return nil
}

func (d *memDir) ClearOnline(_ context.Context, uid string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.entries, uid)
	return nil
}

func (d *memDir) ClearSession(_ context.Context, uid string, entry presence.Entry) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if current, ok := d.entries[uid]; !ok || current != entry {
		return false, nil
	}
	delete(d.entries, uid)
	return true, nil
}

func (d *memDir) Lookup(_ context.Context, uid string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.entries[uid].Session, nil
}

func (d *memDir) LookupMany(ctx context.Context, uids []string) (map[string]string, error) {
	entries, _ := d.LookupEntries(ctx, uids)
	out := map[string]string{}
	for uid, e := range entries {
		out[uid] = e.Session
	}
	return out, nil
}

func (d *memDir) LookupEntries(_ context.Context, uids []string) (map[string]presence.Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := map[string]presence.Entry{}
	for _, uid := range uids {
		if e, ok := d.entries[uid]; ok {
			out[uid] = e
		}
	}
	return out, nil
}

func (d *memDir) CountOnline(_ context.Context, prefix string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for uid := range d.entries {
		if strings.HasPrefix(uid, prefix) {
			n++
		}
	}
	return n, nil
}

type sent struct {
	To      string
	Event   string
	Payload any
}

// recorder is a push.Pusher that keeps everything it was asked to send.
type recorder struct {
	mu     sync.Mutex
	pushes []sent
}

func (r *recorder) SendToUser(_ context.Context, uid string, name string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushes = append(r.pushes, sent{To: uid, Event: name, Payload: payload})
}

func (r *recorder) SendToUsers(ctx context.Context, uids []string, name string, payload any) {
	for _, uid := range uids {
		r.SendToUser(ctx, uid, name, payload)
	}
}

func (r *recorder) to(uid string) []sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []sent
	for _, p := range r.pushes {
		if p.To == uid {
			out = append(out, p)
		}
	}
	return out
}

func (r *recorder) events(uid string) []string {
	var out []string
	for _, p := range r.to(uid) {
		out = append(out, p.Event)
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushes = nil
}

type fixture struct {
	hub    *Hub
	repo   *memRepo
	dir    *memDir
	pushes *recorder
}

func newFixture(t *testing.T, uids ...string) *fixture {
	t.Helper()

	logger := zap.NewNop().Sugar()
	repo := newMemRepo(uids...)
	dir := newMemDir()
	pushes := &recorder{}
	router := broadcast.NewRouter(logger, dir, repo, pushes)

	h := New(logger, config.HubConfig{ReannounceOnPoll: true, ProfileMaxBytes: 4096, ProfileMaxDimension: 16},
		repo, dir, pushes, router)
	h.now = func() time.Time { return testNow }

	return &fixture{hub: h, repo: repo, dir: dir, pushes: pushes}
}

// online marks uid connected and returns its identity.
func (f *fixture) online(uid string) identity.Identity {
	id := identity.Identity{UID: uid, Session: "session-" + uid}
	_ = f.dir.SetOnline(context.Background(), uid, presence.Entry{Session: id.Session, ConnID: "conn-" + uid})
	return id
}
