package friendship

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fitnest/fitnest-api/internal/domain/user"
)

// fakeRepo is an in-memory Repository
type fakeRepo struct {
	records []*Friendship
}

func (f *fakeRepo) GetByPair(_ context.Context, userA, userB uuid.UUID) (*Friendship, error) {
	for _, rec := range f.records {
		if (rec.RequesterID == userA && rec.RecipientID == userB) ||
			(rec.RequesterID == userB && rec.RecipientID == userA) {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) Create(_ context.Context, record *Friendship) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeRepo) SetStatusIfPending(_ context.Context, id uuid.UUID, status Status) (bool, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			if rec.Status != StatusPending {
				return false, nil
			}
			rec.Status = status
			rec.UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) DeleteByPair(_ context.Context, userA, userB uuid.UUID) error {
	kept := f.records[:0]
	for _, rec := range f.records {
		match := (rec.RequesterID == userA && rec.RecipientID == userB) ||
			(rec.RequesterID == userB && rec.RecipientID == userA)
		if !match {
			kept = append(kept, rec)
		}
	}
	f.records = kept
	return nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*Friendship, error) {
	var out []*Friendship
	for _, rec := range f.records {
		if rec.RequesterID == userID || rec.RecipientID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// fakeUserRepo is an in-memory user.Repository
type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo(ids ...uuid.UUID) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
	for i, id := range ids {
		f.users[id] = &user.User{ID: id, Username: "user" + string(rune('a'+i))}
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateAvatarKey(_ context.Context, id uuid.UUID, _ string) error {
	return nil
}

func (f *fakeUserRepo) SearchByUsername(_ context.Context, _ string, _ uuid.UUID, _ int) ([]*user.User, error) {
	return nil, nil
}

func newTestService(userIDs ...uuid.UUID) (*Service, *fakeRepo) {
	repo := &fakeRepo{}
	return NewService(repo, newFakeUserRepo(userIDs...)), repo
}

func TestResolveStatusNeutral(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	svc, _ := newTestService(alice, bob)

	status, record, err := svc.ResolveStatus(context.Background(), alice, bob)
	if err != nil {
		t.Fatalf("ResolveStatus: %v", err)
	}
	if status != RelationNeutral {
		t.Fatalf("expected neutral, got %q", status)
	}
	if record != nil {
		t.Fatalf("expected nil record for neutral pair")
	}
}

func TestResolveStatusSelf(t *testing.T) {
	alice := uuid.New()
	svc, _ := newTestService(alice)

	_, _, err := svc.ResolveStatus(context.Background(), alice, alice)
	if !errors.Is(err, ErrSelfRelationship) {
		t.Fatalf("expected ErrSelfRelationship, got %v", err)
	}
}

func TestResolveStatusPendingBothPerspectives(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	svc, _ := newTestService(alice, bob)

	if _, _, err := svc.AddFriend(context.Background(), alice, bob); err != nil {
		t.Fatalf("AddFriend: %v", err)
	}

	status, _, err := svc.ResolveStatus(context.Background(), alice, bob)
	if err != nil {
		t.Fatalf("ResolveStatus(alice): %v", err)
	}
	if status != RelationPendingSent {
		t.Fatalf("requester should see pending-sent-request, got %q", status)
	}

	status, _, err = svc.ResolveStatus(context.Background(), bob, alice)
	if err != nil {
		t.Fatalf("ResolveStatus(bob): %v", err)
	}
	if status != RelationPendingToApprove {
		t.Fatalf("recipient should see pending-to-approve, got %q", status)
	}
}

func TestResolveStatusUnexpectedState(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	svc, repo := newTestService(alice, bob)

	repo.records = append(repo.records, &Friendship{
		ID:          uuid.New(),
		RequesterID: alice,
		RecipientID: bob,
		Status:      Status("blocked"),
	})

	_, _, err := svc.ResolveStatus(context.Background(), alice, bob)
	if !errors.Is(err, ErrUnexpectedState) {
		t.Fatalf("expected ErrUnexpectedState, got %v", err)
	}
}

func TestAddFriendRequest(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	svc, _ := newTestService(alice, bob)

	outcome, record, err := svc.AddFriend(context.Background(), alice, bob)
	if err != nil {
		t.Fatalf("AddFriend: %v", err)
	}
	if outcome != OutcomeRequested {
		t.Fatalf("expected requested, got %q", outcome)
	}
	if record.RequesterID != alice || record.RecipientID != bob {
		t.Fatalf("request direction wrong: %+v", record)
	}
	if record.Status != StatusPending {
		t.Fatalf("new record should be pending, got %q", record.Status)
	}
}

func TestAddFriendApprove(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	svc, _ := newTestService(alice, bob)

	if _, _, err := svc.AddFriend(context.Background(), alice, bob); err != nil {
		t.Fatalf("send: %v", err)
	}

	outcome, record, err := svc.AddFriend(context.Background(), bob, alice)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if outcome != OutcomeApproved {
		t.Fatalf("expected approved, got %q", outcome)
	}
	if record.Status != StatusFriend {
		t.Fatalf("expected friend status after approve, got %q", record.Status)
	}

	for _, viewer := range []uuid.UUID{alice, bob} {
		other := bob
		if viewer == bob {
			other = alice
		}
		status, _, err := svc.ResolveStatus(context.Background(), viewer, other)
		if err != nil {
			t.Fatalf("ResolveStatus: %v", err)
		}
		if status != RelationFriend {
			t.Fatalf("both sides should see friend, got %q", status)
		}
	}
}

func TestAddFriendRequesterReApproveIsNoOp(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	svc, _ := newTestService(alice, bob)

	if _, _, err := svc.AddFriend(context.Background(), alice, bob); err != nil {
		t.Fatalf("send: %v", err)
	}

	outcome, record, err := svc.AddFriend(context.Background(), alice, bob)
	if err != nil {
		t.Fatalf("re-add by requester: %v", err)
	}
	if outcome != OutcomeAlreadySent {
		t.Fatalf("expected already_sent, got %q", outcome)
	}
	if record.Status != StatusPending {
		t.Fatalf("requester re-add must not flip state, got %q", record.Status)
	}
}

func TestAddFriendAlreadyFriends(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	svc, _ := newTestService(alice, bob)

	if _, _, err := svc.AddFriend(context.Background(), alice, bob); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, _, err := svc.AddFriend(context.Background(), bob, alice); err != nil {
		t.Fatalf("approve: %v", err)
	}

	outcome, _, err := svc.AddFriend(context.Background(), alice, bob)
	if err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if outcome != OutcomeAlreadyFriends {
		t.Fatalf("expected already_friends, got %q", outcome)
	}
}

func TestAddFriendUnknownTarget(t *testing.T) {
	alice := uuid.New()
	svc, _ := newTestService(alice)

	_, _, err := svc.AddFriend(context.Background(), alice, uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAddFriendSelf(t *testing.T) {
	alice := uuid.New()
	svc, _ := newTestService(alice)

	_, _, err := svc.AddFriend(context.Background(), alice, alice)
	if !errors.Is(err, ErrSelfRelationship) {
		t.Fatalf("expected ErrSelfRelationship, got %v", err)
	}
}

func TestRemoveFriendEitherSide(t *testing.T) {
	for _, removeByRequester := range []bool{true, false} {
		alice, bob := uuid.New(), uuid.New()
		svc, _ := newTestService(alice, bob)

		if _, _, err := svc.AddFriend(context.Background(), alice, bob); err != nil {
			t.Fatalf("send: %v", err)
		}
		if _, _, err := svc.AddFriend(context.Background(), bob, alice); err != nil {
			t.Fatalf("approve: %v", err)
		}

		actor, target := alice, bob
		if !removeByRequester {
			actor, target = bob, alice
		}

		prior, err := svc.RemoveFriend(context.Background(), actor, target)
		if err != nil {
			t.Fatalf("RemoveFriend: %v", err)
		}
		if prior != RelationFriend {
			t.Fatalf("prior status should be friend, got %q", prior)
		}

		status, _, err := svc.ResolveStatus(context.Background(), alice, bob)
		if err != nil {
			t.Fatalf("ResolveStatus after remove: %v", err)
		}
		if status != RelationNeutral {
			t.Fatalf("pair should be neutral after removal, got %q", status)
		}
	}
}

func TestRemoveFriendNonexistentIsNoOp(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	svc, _ := newTestService(alice, bob)

	prior, err := svc.RemoveFriend(context.Background(), alice, bob)
	if err != nil {
		t.Fatalf("removing nonexistent relationship should be a no-op, got %v", err)
	}
	if prior != RelationNeutral {
		t.Fatalf("expected neutral prior status, got %q", prior)
	}
}

func TestRemoveFriendSelf(t *testing.T) {
	alice := uuid.New()
	svc, _ := newTestService(alice)

	_, err := svc.RemoveFriend(context.Background(), alice, alice)
	if !errors.Is(err, ErrSelfRelationship) {
		t.Fatalf("expected ErrSelfRelationship, got %v", err)
	}
}

func TestListRelationships(t *testing.T) {
	alice, bob, carol, dave := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	svc, _ := newTestService(alice, bob, carol, dave)

	ctx := context.Background()
	// alice -> bob approved, alice -> carol pending, dave -> alice pending
	if _, _, err := svc.AddFriend(ctx, alice, bob); err != nil {
		t.Fatalf("send to bob: %v", err)
	}
	if _, _, err := svc.AddFriend(ctx, bob, alice); err != nil {
		t.Fatalf("approve by bob: %v", err)
	}
	if _, _, err := svc.AddFriend(ctx, alice, carol); err != nil {
		t.Fatalf("send to carol: %v", err)
	}
	if _, _, err := svc.AddFriend(ctx, dave, alice); err != nil {
		t.Fatalf("send from dave: %v", err)
	}

	rels, err := svc.ListRelationships(ctx, alice)
	if err != nil {
		t.Fatalf("ListRelationships: %v", err)
	}
	if len(rels) != 3 {
		t.Fatalf("expected 3 relationships, got %d", len(rels))
	}

	byOther := make(map[uuid.UUID]RelationStatus)
	for _, rel := range rels {
		byOther[rel.Other.ID] = rel.Status
	}
	if byOther[bob] != RelationFriend {
		t.Fatalf("bob should be friend, got %q", byOther[bob])
	}
	if byOther[carol] != RelationPendingSent {
		t.Fatalf("carol should be pending-sent-request, got %q", byOther[carol])
	}
	if byOther[dave] != RelationPendingToApprove {
		t.Fatalf("dave should be pending-to-approve, got %q", byOther[dave])
	}

	// Restartable: calling again yields the same sequence
	again, err := svc.ListRelationships(ctx, alice)
	if err != nil {
		t.Fatalf("second ListRelationships: %v", err)
	}
	if len(again) != len(rels) {
		t.Fatalf("restarted list differs: %d vs %d", len(again), len(rels))
	}
	for i := range rels {
		if again[i].Other.ID != rels[i].Other.ID || again[i].Status != rels[i].Status {
			t.Fatalf("restarted list differs at %d", i)
		}
	}
}

func TestFullLifecycle(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	svc, _ := newTestService(alice, bob)
	ctx := context.Background()

	outcome, _, err := svc.AddFriend(ctx, alice, bob)
	if err != nil || outcome != OutcomeRequested {
		t.Fatalf("send: outcome=%q err=%v", outcome, err)
	}

	outcome, _, err = svc.AddFriend(ctx, bob, alice)
	if err != nil || outcome != OutcomeApproved {
		t.Fatalf("approve: outcome=%q err=%v", outcome, err)
	}

	prior, err := svc.RemoveFriend(ctx, alice, bob)
	if err != nil || prior != RelationFriend {
		t.Fatalf("remove: prior=%q err=%v", prior, err)
	}

	status, _, err := svc.ResolveStatus(ctx, alice, bob)
	if err != nil {
		t.Fatalf("final resolve: %v", err)
	}
	if status != RelationNeutral {
		t.Fatalf("lifecycle should end neutral, got %q", status)
	}
}
