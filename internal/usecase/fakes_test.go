package usecase

import (
	"context"
	"encoding/json"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"hiretop/internal/database"
	"hiretop/internal/domain/application"
	"hiretop/internal/domain/candidate"
	"hiretop/internal/domain/chat"
	"hiretop/internal/domain/enterprise"
	"hiretop/internal/domain/job"
	"hiretop/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// store is an in-memory stand-in for the Postgres repositories. One store
// backs all fakes so joins (names, titles, participant user ids) resolve.
type store struct {
	mu           sync.Mutex
	clock        time.Time
	candidates   map[uuid.UUID]candidate.Profile
	enterprises  map[uuid.UUID]enterprise.Profile
	offers       map[uuid.UUID]job.Offer
	applications map[uuid.UUID]application.Application
	chats        map[uuid.UUID]chat.Chat
	messages     []chat.Message
	failTouch    bool
}

func newStore() *store {
	return &store{
		clock:        time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		candidates:   map[uuid.UUID]candidate.Profile{},
		enterprises:  map[uuid.UUID]enterprise.Profile{},
		offers:       map[uuid.UUID]job.Offer{},
		applications: map[uuid.UUID]application.Application{},
		chats:        map[uuid.UUID]chat.Chat{},
	}
}

func (s *store) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *store) addCandidate(skills ...string) candidate.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := candidate.Profile{ID: uuid.New(), UserID: uuid.New(), FullName: "Ana Lima", Email: "ana@mail.com", Skills: skills, CreatedAt: s.tick()}
	s.candidates[p.ID] = p
	return p
}

func (s *store) addEnterprise() enterprise.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := enterprise.Profile{ID: uuid.New(), UserID: uuid.New(), Name: "Acme", Email: "jobs@acme.io", CreatedAt: s.tick()}
	s.enterprises[p.ID] = p
	return p
}

func (s *store) addOffer(ent enterprise.Profile, status job.Status, skills ...string) job.Offer {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := job.Offer{
		ID: uuid.New(), EnterpriseID: ent.ID, Title: "Go Developer", Description: "d", Location: "Lisbon",
		ContractType: job.ContractFullTime, Skills: skills, Status: status, CreatedAt: s.tick(), EnterpriseName: ent.Name,
	}
	s.offers[o.ID] = o
	return o
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// candidates

type fakeCandidates struct{ s *store }

func (f fakeCandidates) Create(_ context.Context, p candidate.Profile) (candidate.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.candidates {
		if c.UserID == p.UserID {
			return candidate.Profile{}, uniqueViolation("candidate_profiles_user_id_key")
		}
	}
	p.CreatedAt = f.s.tick()
	p.UpdatedAt = p.CreatedAt
	f.s.candidates[p.ID] = p
	return p, nil
}

func (f fakeCandidates) GetByID(_ context.Context, id uuid.UUID) (candidate.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.candidates[id]
	if !ok {
		return candidate.Profile{}, candidate.ErrNotFound
	}
	return p, nil
}

func (f fakeCandidates) GetByUserID(_ context.Context, userID uuid.UUID) (candidate.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, p := range f.s.candidates {
		if p.UserID == userID {
			return p, nil
		}
	}
	return candidate.Profile{}, candidate.ErrNotFound
}

func (f fakeCandidates) Update(_ context.Context, p candidate.Profile) (candidate.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.candidates[p.ID]; !ok {
		return candidate.Profile{}, candidate.ErrNotFound
	}
	p.UpdatedAt = f.s.tick()
	f.s.candidates[p.ID] = p
	return p, nil
}

func (f fakeCandidates) setURL(userID uuid.UUID, set func(*candidate.Profile)) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for id, p := range f.s.candidates {
		if p.UserID == userID {
			set(&p)
			f.s.candidates[id] = p
			return nil
		}
	}
	return candidate.ErrNotFound
}

func (f fakeCandidates) SetPhotoURL(_ context.Context, userID uuid.UUID, url string) error {
	return f.setURL(userID, func(p *candidate.Profile) { p.PhotoURL = url })
}

func (f fakeCandidates) SetCVURL(_ context.Context, userID uuid.UUID, url string) error {
	return f.setURL(userID, func(p *candidate.Profile) { p.CVURL = url })
}

func (f fakeCandidates) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for id, p := range f.s.candidates {
		if p.UserID == userID {
			delete(f.s.candidates, id)
			return nil
		}
	}
	return candidate.ErrNotFound
}

// enterprises

type fakeEnterprises struct{ s *store }

func (f fakeEnterprises) Create(_ context.Context, p enterprise.Profile) (enterprise.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p.CreatedAt = f.s.tick()
	f.s.enterprises[p.ID] = p
	return p, nil
}

func (f fakeEnterprises) GetByID(_ context.Context, id uuid.UUID) (enterprise.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.enterprises[id]
	if !ok {
		return enterprise.Profile{}, enterprise.ErrNotFound
	}
	return p, nil
}

func (f fakeEnterprises) GetByUserID(_ context.Context, userID uuid.UUID) (enterprise.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, p := range f.s.enterprises {
		if p.UserID == userID {
			return p, nil
		}
	}
	return enterprise.Profile{}, enterprise.ErrNotFound
}

func (f fakeEnterprises) Update(_ context.Context, p enterprise.Profile) (enterprise.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.enterprises[p.ID]; !ok {
		return enterprise.Profile{}, enterprise.ErrNotFound
	}
	f.s.enterprises[p.ID] = p
	return p, nil
}

func (f fakeEnterprises) SetLogoURL(_ context.Context, userID uuid.UUID, url string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for id, p := range f.s.enterprises {
		if p.UserID == userID {
			p.LogoURL = url
			f.s.enterprises[id] = p
			return nil
		}
	}
	return enterprise.ErrNotFound
}

func (f fakeEnterprises) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for id, p := range f.s.enterprises {
		if p.UserID == userID {
			delete(f.s.enterprises, id)
			return nil
		}
	}
	return enterprise.ErrNotFound
}

// offers

type fakeOffers struct {
	s     *store
	gets  *int
	lists *[]job.Filter
}

func newFakeOffers(s *store) fakeOffers {
	return fakeOffers{s: s, gets: new(int), lists: &[]job.Filter{}}
}

func (f fakeOffers) Create(_ context.Context, o job.Offer) (job.Offer, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	o.CreatedAt = f.s.tick()
	f.s.offers[o.ID] = o
	return o, nil
}

func (f fakeOffers) GetByID(_ context.Context, id uuid.UUID) (job.Offer, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	*f.gets++
	o, ok := f.s.offers[id]
	if !ok {
		return job.Offer{}, job.ErrNotFound
	}
	return o, nil
}

func (f fakeOffers) List(_ context.Context, flt job.Filter) ([]job.Offer, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	*f.lists = append(*f.lists, flt)
	out := []job.Offer{}
	for _, o := range f.s.offers {
		if flt.EnterpriseID != uuid.Nil && o.EnterpriseID != flt.EnterpriseID {
			continue
		}
		if flt.Status != "" && o.Status != flt.Status {
			continue
		}
		out = append(out, o)
	}
	sortOffers(out)
	if flt.Offset >= len(out) {
		return []job.Offer{}, nil
	}
	out = out[flt.Offset:]
	if flt.Limit > 0 && len(out) > flt.Limit {
		out = out[:flt.Limit]
	}
	return out, nil
}

func (f fakeOffers) Update(_ context.Context, o job.Offer) (job.Offer, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cur, ok := f.s.offers[o.ID]
	if !ok || cur.EnterpriseID != o.EnterpriseID {
		return job.Offer{}, job.ErrNotFound
	}
	f.s.offers[o.ID] = o
	return o, nil
}

func (f fakeOffers) Delete(_ context.Context, id, enterpriseID uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cur, ok := f.s.offers[id]
	if !ok || cur.EnterpriseID != enterpriseID {
		return job.ErrNotFound
	}
	delete(f.s.offers, id)
	return nil
}

func (f fakeOffers) ListBySkills(_ context.Context, skills []string, excludeCandidateID uuid.UUID, limit int) ([]job.Offer, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	want := map[string]bool{}
	for _, sk := range skills {
		want[strings.ToLower(sk)] = true
	}
	applied := map[uuid.UUID]bool{}
	for _, a := range f.s.applications {
		if a.CandidateID == excludeCandidateID {
			applied[a.JobOfferID] = true
		}
	}
	out := []job.Offer{}
	for _, o := range f.s.offers {
		if o.Status != job.StatusOpen || applied[o.ID] {
			continue
		}
		for _, sk := range o.Skills {
			if want[strings.ToLower(sk)] {
				out = append(out, o)
				break
			}
		}
	}
	sortOffers(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f fakeOffers) CountByStatus(_ context.Context, enterpriseID uuid.UUID) (map[job.Status]int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := map[job.Status]int{job.StatusOpen: 0, job.StatusClosed: 0}
	for _, o := range f.s.offers {
		if o.EnterpriseID == enterpriseID {
			out[o.Status]++
		}
	}
	return out, nil
}

func sortOffers(items []job.Offer) {
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
}

// applications

type fakeApplications struct{ s *store }

func (f fakeApplications) Create(_ context.Context, a application.Application) (application.Application, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.offers[a.JobOfferID]; !ok {
		return application.Application{}, &pgconn.PgError{Code: "23503", ConstraintName: "job_applications_job_offer_id_fkey"}
	}
	for _, cur := range f.s.applications {
		if cur.JobOfferID == a.JobOfferID && cur.CandidateID == a.CandidateID {
			return application.Application{}, uniqueViolation(repository.ConstraintApplicationUnique)
		}
	}
	a.CreatedAt = f.s.tick()
	a.UpdatedAt = a.CreatedAt
	f.s.applications[a.ID] = a
	return f.joined(a), nil
}

func (f fakeApplications) joined(a application.Application) application.Application {
	a.JobTitle = f.s.offers[a.JobOfferID].Title
	a.EnterpriseName = f.s.enterprises[a.EnterpriseID].Name
	c := f.s.candidates[a.CandidateID]
	a.CandidateName = c.FullName
	a.CandidateUser = c.UserID
	return a
}

func (f fakeApplications) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.applications[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return f.joined(a), nil
}

func (f fakeApplications) filter(keep func(application.Application) bool) []application.Application {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []application.Application{}
	for _, a := range f.s.applications {
		if keep(a) {
			out = append(out, f.joined(a))
		}
	}
	return out
}

func (f fakeApplications) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]application.Application, error) {
	return f.filter(func(a application.Application) bool { return a.CandidateID == candidateID }), nil
}

func (f fakeApplications) ListByOffer(_ context.Context, offerID uuid.UUID) ([]application.Application, error) {
	return f.filter(func(a application.Application) bool { return a.JobOfferID == offerID }), nil
}

func (f fakeApplications) ListByEnterprise(_ context.Context, enterpriseID uuid.UUID, status application.Status) ([]application.Application, error) {
	return f.filter(func(a application.Application) bool {
		return a.EnterpriseID == enterpriseID && (status == "" || a.Status == status)
	}), nil
}

func (f fakeApplications) UpdateStatus(_ context.Context, id uuid.UUID, from, to application.Status) (application.Application, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.applications[id]
	if !ok || a.Status != from {
		return application.Application{}, application.ErrNotFound
	}
	a.Status = to
	a.UpdatedAt = f.s.tick()
	f.s.applications[id] = a
	return f.joined(a), nil
}

func (f fakeApplications) CountByStatus(_ context.Context, flt repository.ApplicationCountFilter) (map[application.Status]int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := map[application.Status]int{}
	for _, st := range application.AllStatuses {
		out[st] = 0
	}
	for _, a := range f.s.applications {
		if (flt.EnterpriseID != uuid.Nil && a.EnterpriseID == flt.EnterpriseID) ||
			(flt.EnterpriseID == uuid.Nil && a.CandidateID == flt.CandidateID) {
			out[a.Status]++
		}
	}
	return out, nil
}

// chats and messages

type fakeChats struct{ s *store }

func (f fakeChats) withUsers(c chat.Chat) chat.Chat {
	c.CandidateUserID = f.s.candidates[c.CandidateID].UserID
	c.EnterpriseUserID = f.s.enterprises[c.EnterpriseID].UserID
	return c
}

func (f fakeChats) CreateForApplication(_ context.Context, c chat.Chat) (chat.Chat, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, cur := range f.s.chats {
		if cur.ApplicationID == c.ApplicationID {
			return f.withUsers(cur), nil
		}
	}
	c.CreatedAt = f.s.tick()
	f.s.chats[c.ID] = c
	return f.withUsers(c), nil
}

func (f fakeChats) GetByID(_ context.Context, id uuid.UUID) (chat.Chat, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.chats[id]
	if !ok {
		return chat.Chat{}, chat.ErrNotFound
	}
	return f.withUsers(c), nil
}

func (f fakeChats) ListForUser(_ context.Context, userID uuid.UUID) ([]chat.Item, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []chat.Item{}
	for _, c := range f.s.chats {
		c = f.withUsers(c)
		if !c.HasParticipant(userID) {
			continue
		}
		it := chat.Item{Chat: c}
		for _, m := range f.s.messages {
			if m.ChatID == c.ID && m.ReceiverID == userID && !m.IsRead {
				it.UnreadCount++
			}
		}
		out = append(out, it)
	}
	return out, nil
}

func (f fakeChats) TouchLastMessage(_ context.Context, id uuid.UUID, preview string, at time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failTouch {
		return context.DeadlineExceeded
	}
	c, ok := f.s.chats[id]
	if !ok {
		return chat.ErrNotFound
	}
	c.LastMessage = preview
	c.LastMessageAt = &at
	f.s.chats[id] = c
	return nil
}

func (f fakeChats) WithTx(database.Tx) repository.ChatRepository { return f }

type fakeMessages struct{ s *store }

func (f fakeMessages) Create(_ context.Context, m chat.Message) (chat.Message, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m.CreatedAt = f.s.tick()
	f.s.messages = append(f.s.messages, m)
	return m, nil
}

func (f fakeMessages) ListByChat(_ context.Context, chatID uuid.UUID, before *time.Time, limit int) ([]chat.Message, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []chat.Message{}
	for _, m := range f.s.messages {
		if m.ChatID == chatID && (before == nil || m.CreatedAt.Before(*before)) {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (f fakeMessages) MarkRead(_ context.Context, chatID, receiverID uuid.UUID) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for i := range f.s.messages {
		m := &f.s.messages[i]
		if m.ChatID == chatID && m.ReceiverID == receiverID && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

func (f fakeMessages) CountUnread(_ context.Context, receiverID uuid.UUID) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	n := 0
	for _, m := range f.s.messages {
		if m.ReceiverID == receiverID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (f fakeMessages) WithTx(database.Tx) repository.MessageRepository { return f }

// fakeTx snapshots the message log and chats so a failing unit of work
// leaves no partial writes behind.
type fakeTx struct{ s *store }

func (t fakeTx) WithinTx(_ context.Context, fn func(tx database.Tx) error) error {
	t.s.mu.Lock()
	msgs := append([]chat.Message(nil), t.s.messages...)
	chats := make(map[uuid.UUID]chat.Chat, len(t.s.chats))
	for k, v := range t.s.chats {
		chats[k] = v
	}
	t.s.mu.Unlock()

	if err := fn(nil); err != nil {
		t.s.mu.Lock()
		t.s.messages = msgs
		t.s.chats = chats
		t.s.mu.Unlock()
		return err
	}
	return nil
}

// cache, notifier, events

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.data, k)
			c.deleted = append(c.deleted, k)
		}
	}
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type sentEvent struct {
	UserID  uuid.UUID
	Type    string
	Payload interface{}
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentEvent
}

func (n *recordingNotifier) Notify(userID uuid.UUID, eventType string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentEvent{UserID: userID, Type: eventType, Payload: payload})
}

type countingEvents struct {
	mu     sync.Mutex
	counts map[string]int
}

func newCountingEvents() *countingEvents { return &countingEvents{counts: map[string]int{}} }

func (e *countingEvents) Event(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.counts[name]++
}
