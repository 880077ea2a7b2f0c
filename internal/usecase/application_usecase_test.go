package usecase

import (
	"context"
	"testing"

	"hiretop/internal/domain/application"
	"hiretop/internal/domain/job"
	"hiretop/internal/repository"
	"hiretop/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type applicationFixture struct {
	s        *store
	cache    *memCache
	notifier *recordingNotifier
	uc       *JobApplication
}

func newApplicationFixture() applicationFixture {
	s := newStore()
	f := applicationFixture{s: s, cache: newMemCache(), notifier: &recordingNotifier{}}
	f.uc = NewJobApplicationUsecase(JobApplicationDeps{
		Applications: fakeApplications{s},
		Offers:       newFakeOffers(s),
		Candidates:   fakeCandidates{s},
		Enterprises:  fakeEnterprises{s},
		Cache:        f.cache,
		Notifier:     f.notifier,
	})
	return f
}

func TestApply_RequiresCandidateProfile(t *testing.T) {
	f := newApplicationFixture()
	o := f.s.addOffer(f.s.addEnterprise(), job.StatusOpen)

	_, err := f.uc.Apply(context.Background(), uuid.New(), o.ID, "")
	assert.ErrorIs(t, err, ErrProfileRequired)
}

func TestApply_OfferMustBeOpen(t *testing.T) {
	f := newApplicationFixture()
	c := f.s.addCandidate("Go")
	closed := f.s.addOffer(f.s.addEnterprise(), job.StatusClosed)

	_, err := f.uc.Apply(context.Background(), c.UserID, closed.ID, "")
	assert.ErrorIs(t, err, ErrJobOfferClosed)

	_, err = f.uc.Apply(context.Background(), c.UserID, uuid.New(), "")
	assert.ErrorIs(t, err, ErrJobOfferNotFound)
}

func TestApply_OncePerOffer(t *testing.T) {
	f := newApplicationFixture()
	c := f.s.addCandidate("Go")
	ent := f.s.addEnterprise()
	o := f.s.addOffer(ent, job.StatusOpen)
	require.NoError(t, f.cache.SetJSON(context.Background(), recommendationsKey(c.UserID), []job.Offer{o}, 0))

	a, err := f.uc.Apply(context.Background(), c.UserID, o.ID, "  Hello  ")
	require.NoError(t, err)
	assert.Equal(t, application.StatusPending, a.Status)
	assert.Equal(t, ent.ID, a.EnterpriseID)
	assert.Equal(t, "Hello", a.CoverLetter)
	assert.False(t, f.cache.has(recommendationsKey(c.UserID)))

	_, err = f.uc.Apply(context.Background(), c.UserID, o.ID, "")
	assert.ErrorIs(t, err, ErrAlreadyApplied)
}

// vanishingOffers serves an offer read that no longer exists in the store.
type vanishingOffers struct {
	repository.JobOfferRepository
	offer job.Offer
}

func (v vanishingOffers) GetByID(context.Context, uuid.UUID) (job.Offer, error) { return v.offer, nil }

func TestApply_OfferDeletedMidwayIsNotFound(t *testing.T) {
	s := newStore()
	c := s.addCandidate("Go")
	ent := s.addEnterprise()
	gone := job.Offer{ID: uuid.New(), EnterpriseID: ent.ID, Status: job.StatusOpen}

	uc := NewJobApplicationUsecase(JobApplicationDeps{
		Applications: fakeApplications{s},
		Offers:       vanishingOffers{offer: gone},
		Candidates:   fakeCandidates{s},
		Enterprises:  fakeEnterprises{s},
	})

	_, err := uc.Apply(context.Background(), c.UserID, gone.ID, "")
	assert.ErrorIs(t, err, ErrJobOfferNotFound)
	assert.Empty(t, s.applications)
}

func TestUpdateStatus_ForwardOnlyAndNotifiesCandidate(t *testing.T) {
	f := newApplicationFixture()
	c := f.s.addCandidate("Go")
	ent := f.s.addEnterprise()
	o := f.s.addOffer(ent, job.StatusOpen)
	a, err := f.uc.Apply(context.Background(), c.UserID, o.ID, "")
	require.NoError(t, err)

	updated, err := f.uc.UpdateStatus(context.Background(), ent.UserID, a.ID, application.StatusInterview)
	require.NoError(t, err)
	assert.Equal(t, application.StatusInterview, updated.Status)

	require.Len(t, f.notifier.sent, 1)
	evt := f.notifier.sent[0]
	assert.Equal(t, c.UserID, evt.UserID)
	assert.Equal(t, ws.EventApplicationStatus, evt.Type)
	payload := evt.Payload.(ApplicationStatusEvent)
	assert.Equal(t, "pending", payload.PreviousStatus)
	assert.Equal(t, "interview", payload.Status)

	_, err = f.uc.UpdateStatus(context.Background(), ent.UserID, a.ID, application.StatusReviewed)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	_, err = f.uc.UpdateStatus(context.Background(), ent.UserID, a.ID, application.StatusAccepted)
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(context.Background(), ent.UserID, a.ID, application.StatusRejected)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdateStatus_OwnerOnly(t *testing.T) {
	f := newApplicationFixture()
	c := f.s.addCandidate()
	o := f.s.addOffer(f.s.addEnterprise(), job.StatusOpen)
	a, err := f.uc.Apply(context.Background(), c.UserID, o.ID, "")
	require.NoError(t, err)

	other := f.s.addEnterprise()
	_, err = f.uc.UpdateStatus(context.Background(), other.UserID, a.ID, application.StatusReviewed)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.uc.UpdateStatus(context.Background(), other.UserID, a.ID, "hired")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWithdraw(t *testing.T) {
	f := newApplicationFixture()
	c := f.s.addCandidate()
	ent := f.s.addEnterprise()
	o := f.s.addOffer(ent, job.StatusOpen)
	a, err := f.uc.Apply(context.Background(), c.UserID, o.ID, "")
	require.NoError(t, err)

	stranger := f.s.addCandidate()
	_, err = f.uc.Withdraw(context.Background(), stranger.UserID, a.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	w, err := f.uc.Withdraw(context.Background(), c.UserID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, application.StatusWithdrawn, w.Status)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, ent.UserID, f.notifier.sent[0].UserID)

	_, err = f.uc.Withdraw(context.Background(), c.UserID, a.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	_, err = f.uc.UpdateStatus(context.Background(), ent.UserID, a.ID, application.StatusReviewed)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestListings(t *testing.T) {
	f := newApplicationFixture()
	c := f.s.addCandidate()
	ent := f.s.addEnterprise()
	o1 := f.s.addOffer(ent, job.StatusOpen)
	o2 := f.s.addOffer(ent, job.StatusOpen)
	a1, err := f.uc.Apply(context.Background(), c.UserID, o1.ID, "")
	require.NoError(t, err)
	_, err = f.uc.Apply(context.Background(), c.UserID, o2.ID, "")
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(context.Background(), ent.UserID, a1.ID, application.StatusReviewed)
	require.NoError(t, err)

	mine, err := f.uc.ListMine(context.Background(), c.UserID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	assert.Equal(t, "Acme", mine[0].EnterpriseName)

	forOffer, err := f.uc.ListForOffer(context.Background(), ent.UserID, o1.ID)
	require.NoError(t, err)
	assert.Len(t, forOffer, 1)

	_, err = f.uc.ListForOffer(context.Background(), f.s.addEnterprise().UserID, o1.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	reviewed, err := f.uc.ListForEnterprise(context.Background(), ent.UserID, application.StatusReviewed)
	require.NoError(t, err)
	require.Len(t, reviewed, 1)
	assert.Equal(t, a1.ID, reviewed[0].ID)

	_, err = f.uc.ListForEnterprise(context.Background(), ent.UserID, "bogus")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
