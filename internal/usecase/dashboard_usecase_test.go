package usecase

import (
	"context"
	"testing"

	"hiretop/internal/domain/application"
	"hiretop/internal/domain/chat"
	"hiretop/internal/domain/job"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboards(t *testing.T) {
	s := newStore()
	c := s.addCandidate("Go")
	ent := s.addEnterprise()
	o1 := s.addOffer(ent, job.StatusOpen, "Go")
	s.addOffer(ent, job.StatusOpen, "Go")
	s.addOffer(ent, job.StatusClosed, "Go")

	a := application.Application{ID: uuid.New(), JobOfferID: o1.ID, CandidateID: c.ID, EnterpriseID: ent.ID, Status: application.StatusInterview}
	s.applications[a.ID] = a
	s.messages = append(s.messages,
		chat.Message{ID: uuid.New(), SenderID: ent.UserID, ReceiverID: c.UserID},
		chat.Message{ID: uuid.New(), SenderID: c.UserID, ReceiverID: ent.UserID, IsRead: true},
	)

	offers := newFakeOffers(s)
	uc := NewDashboardUsecase(DashboardDeps{
		Candidates:      fakeCandidates{s},
		Enterprises:     fakeEnterprises{s},
		Offers:          offers,
		Applications:    fakeApplications{s},
		Messages:        fakeMessages{s},
		Recommendations: NewJobRecommendationUsecase(offers, fakeCandidates{s}, nil, nil, nil),
	})

	cd, err := uc.CandidateDashboard(context.Background(), c.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, cd.Applications[application.StatusInterview])
	assert.Equal(t, 0, cd.Applications[application.StatusPending])
	assert.Equal(t, 1, cd.UnreadMessages)
	assert.Equal(t, 1, cd.Recommendations)

	ed, err := uc.EnterpriseDashboard(context.Background(), ent.UserID)
	require.NoError(t, err)
	assert.Equal(t, 2, ed.OpenOffers)
	assert.Equal(t, 1, ed.ClosedOffers)
	assert.Equal(t, 1, ed.Applications[application.StatusInterview])
	assert.Equal(t, 0, ed.UnreadMessages)

	_, err = uc.EnterpriseDashboard(context.Background(), c.UserID)
	assert.ErrorIs(t, err, ErrProfileRequired)
}

func TestCandidateDashboard_EmptySkillsIsNotAnError(t *testing.T) {
	s := newStore()
	c := s.addCandidate()
	offers := newFakeOffers(s)
	uc := NewDashboardUsecase(DashboardDeps{
		Candidates:      fakeCandidates{s},
		Enterprises:     fakeEnterprises{s},
		Offers:          offers,
		Applications:    fakeApplications{s},
		Messages:        fakeMessages{s},
		Recommendations: NewJobRecommendationUsecase(offers, fakeCandidates{s}, nil, nil, nil),
	})

	cd, err := uc.CandidateDashboard(context.Background(), c.UserID)
	require.NoError(t, err)
	assert.Zero(t, cd.Recommendations)
}
