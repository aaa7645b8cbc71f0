package note

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fitnest/fitnest-api/internal/domain/friendship"
	"github.com/fitnest/fitnest-api/internal/domain/user"
)

type fakeRepo struct {
	notes  map[uuid.UUID]*Note
	shares map[uuid.UUID]*Share
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		notes:  make(map[uuid.UUID]*Note),
		shares: make(map[uuid.UUID]*Share),
	}
}

func (f *fakeRepo) Create(_ context.Context, note *Note) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	f.notes[note.ID] = note
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Note, error) {
	return f.notes[id], nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*Note, error) {
	var out []*Note
	for _, n := range f.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeRepo) SearchByUser(_ context.Context, userID uuid.UUID, q string) ([]*Note, error) {
	var out []*Note
	for _, n := range f.notes {
		if n.UserID == userID && strings.Contains(strings.ToLower(n.Data), strings.ToLower(q)) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.notes[id]; !ok {
		return ErrNoteNotFound
	}
	delete(f.notes, id)
	return nil
}

func (f *fakeRepo) CreateShare(_ context.Context, share *Share) error {
	if share.ID == uuid.Nil {
		share.ID = uuid.New()
	}
	if share.SharedAt.IsZero() {
		share.SharedAt = time.Now()
	}
	f.shares[share.ID] = share
	return nil
}

func (f *fakeRepo) GetShareByID(_ context.Context, id uuid.UUID) (*Share, error) {
	return f.shares[id], nil
}

func (f *fakeRepo) GetShare(_ context.Context, noteID, targetUserID uuid.UUID) (*Share, error) {
	for _, s := range f.shares {
		if s.NoteID == noteID && s.TargetUserID == targetUserID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListSharesByUser(_ context.Context, userID uuid.UUID) ([]*Share, error) {
	var out []*Share
	for _, s := range f.shares {
		if s.Involves(userID) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteShare(_ context.Context, id uuid.UUID) error {
	if _, ok := f.shares[id]; !ok {
		return ErrShareNotFound
	}
	delete(f.shares, id)
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	f.users[u.ID] = u
	return nil
}
func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(context.Context, string) (*user.User, error)    { return nil, nil }
func (f *fakeUserRepo) GetByUsername(context.Context, string) (*user.User, error) { return nil, nil }
func (f *fakeUserRepo) UpdateAvatarKey(context.Context, uuid.UUID, string) error  { return nil }
func (f *fakeUserRepo) SearchByUsername(context.Context, string, uuid.UUID, int) ([]*user.User, error) {
	return nil, nil
}

// fakeFriends marks specific unordered pairs as friends
type fakeFriends struct {
	pairs map[[2]uuid.UUID]bool
}

func (f *fakeFriends) befriend(a, b uuid.UUID) {
	f.pairs[pairKey(a, b)] = true
}

func pairKey(a, b uuid.UUID) [2]uuid.UUID {
	if a.String() < b.String() {
		return [2]uuid.UUID{a, b}
	}
	return [2]uuid.UUID{b, a}
}

func (f *fakeFriends) ResolveStatus(_ context.Context, a, b uuid.UUID) (friendship.RelationStatus, *friendship.Friendship, error) {
	if f.pairs[pairKey(a, b)] {
		return friendship.RelationFriend, nil, nil
	}
	return friendship.RelationNeutral, nil, nil
}

func newTestService(userIDs ...uuid.UUID) (*Service, *fakeRepo, *fakeFriends) {
	repo := newFakeRepo()
	users := &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
	for i, id := range userIDs {
		users.users[id] = &user.User{ID: id, Username: "user" + string(rune('a'+i))}
	}
	friends := &fakeFriends{pairs: make(map[[2]uuid.UUID]bool)}
	return NewService(repo, users, friends), repo, friends
}

func TestImport(t *testing.T) {
	owner := uuid.New()
	svc, _, _ := newTestService(owner)

	note, err := svc.Import(context.Background(), owner, "workout-plan.md", []byte("# Plan"))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if note.Name != "workout-plan.md" {
		t.Fatalf("note should be named after the file, got %q", note.Name)
	}
	if note.UserID != owner {
		t.Fatalf("wrong owner")
	}
}

func TestImportRejectsUnsupportedFile(t *testing.T) {
	owner := uuid.New()
	svc, _, _ := newTestService(owner)

	for _, name := range []string{"notes.pdf", "image.png", ""} {
		_, err := svc.Import(context.Background(), owner, name, []byte("x"))
		if !errors.Is(err, ErrUnsupportedFile) {
			t.Fatalf("%q: expected ErrUnsupportedFile, got %v", name, err)
		}
	}
}

func TestGetRendersMarkdown(t *testing.T) {
	owner := uuid.New()
	svc, _, _ := newTestService(owner)

	note, err := svc.Import(context.Background(), owner, "plan.md", []byte("# Leg Day\n\nsquats"))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	rendered, err := svc.Get(context.Background(), owner, note.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !strings.Contains(rendered.HTML, "<h1") || !strings.Contains(rendered.HTML, "Leg Day") {
		t.Fatalf("expected rendered heading, got %q", rendered.HTML)
	}
}

func TestGetForeignNoteLooksMissing(t *testing.T) {
	owner, other := uuid.New(), uuid.New()
	svc, _, _ := newTestService(owner, other)

	note, err := svc.Import(context.Background(), owner, "secret.md", []byte("mine"))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	_, err = svc.Get(context.Background(), other, note.ID)
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestSearchOwnerScoped(t *testing.T) {
	owner, other := uuid.New(), uuid.New()
	svc, _, _ := newTestService(owner, other)
	ctx := context.Background()

	if _, err := svc.Import(ctx, owner, "a.md", []byte("protein shake recipe")); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if _, err := svc.Import(ctx, other, "b.md", []byte("protein bars")); err != nil {
		t.Fatalf("Import: %v", err)
	}

	found, err := svc.Search(ctx, owner, "protein")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("search must be owner-scoped, got %d hits", len(found))
	}
}

func TestExportPDF(t *testing.T) {
	owner := uuid.New()
	svc, _, _ := newTestService(owner)

	note, err := svc.Import(context.Background(), owner, "meal-plan.md", []byte("# Meals\n\noatmeal"))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	var buf bytes.Buffer
	filename, err := svc.ExportPDF(context.Background(), owner, note.ID, &buf)
	if err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if filename != "meal-plan.pdf" {
		t.Fatalf("expected meal-plan.pdf, got %q", filename)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestShareRequiresFriendship(t *testing.T) {
	owner, target := uuid.New(), uuid.New()
	svc, _, friends := newTestService(owner, target)
	ctx := context.Background()

	note, err := svc.Import(ctx, owner, "tips.md", []byte("tips"))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if _, err := svc.ShareNote(ctx, owner, note.ID, target); !errors.Is(err, ErrNotFriends) {
		t.Fatalf("expected ErrNotFriends, got %v", err)
	}

	friends.befriend(owner, target)
	share, err := svc.ShareNote(ctx, owner, note.ID, target)
	if err != nil {
		t.Fatalf("ShareNote after befriending: %v", err)
	}
	if share.OwnerUserID != owner || share.TargetUserID != target {
		t.Fatalf("share participants wrong: %+v", share)
	}

	// Re-sharing returns the existing share
	again, err := svc.ShareNote(ctx, owner, note.ID, target)
	if err != nil {
		t.Fatalf("re-share: %v", err)
	}
	if again.ID != share.ID {
		t.Fatalf("re-share should return the existing share")
	}
}

func TestCopySharedByEitherParticipant(t *testing.T) {
	for _, copier := range []string{"target", "owner"} {
		owner, target := uuid.New(), uuid.New()
		svc, repo, friends := newTestService(owner, target)
		ctx := context.Background()
		friends.befriend(owner, target)

		note, err := svc.Import(ctx, owner, "routine.md", []byte("pushups"))
		if err != nil {
			t.Fatalf("Import: %v", err)
		}
		share, err := svc.ShareNote(ctx, owner, note.ID, target)
		if err != nil {
			t.Fatalf("ShareNote: %v", err)
		}

		who := target
		if copier == "owner" {
			who = owner
		}

		copied, err := svc.CopyShared(ctx, who, share.ID)
		if err != nil {
			t.Fatalf("CopyShared by %s: %v", copier, err)
		}
		if copied.UserID != who {
			t.Fatalf("copy should belong to the copier")
		}
		if copied.ID == note.ID {
			t.Fatalf("copy must be a new note")
		}
		if copied.Name != note.Name || copied.Data != note.Data {
			t.Fatalf("copy should preserve name and data")
		}
		if len(repo.notes) != 2 {
			t.Fatalf("expected 2 notes after copy, got %d", len(repo.notes))
		}
	}
}

func TestCopySharedRejectsNonParticipant(t *testing.T) {
	owner, target, stranger := uuid.New(), uuid.New(), uuid.New()
	svc, _, friends := newTestService(owner, target, stranger)
	ctx := context.Background()
	friends.befriend(owner, target)

	note, err := svc.Import(ctx, owner, "n.md", []byte("x"))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	share, err := svc.ShareNote(ctx, owner, note.ID, target)
	if err != nil {
		t.Fatalf("ShareNote: %v", err)
	}

	if _, err := svc.CopyShared(ctx, stranger, share.ID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestCancelShare(t *testing.T) {
	owner, target := uuid.New(), uuid.New()
	svc, repo, friends := newTestService(owner, target)
	ctx := context.Background()
	friends.befriend(owner, target)

	note, err := svc.Import(ctx, owner, "n.md", []byte("x"))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	share, err := svc.ShareNote(ctx, owner, note.ID, target)
	if err != nil {
		t.Fatalf("ShareNote: %v", err)
	}

	if err := svc.CancelShare(ctx, target, share.ID); err != nil {
		t.Fatalf("CancelShare by target: %v", err)
	}
	if len(repo.shares) != 0 {
		t.Fatalf("share should be gone")
	}

	if err := svc.CancelShare(ctx, target, share.ID); !errors.Is(err, ErrShareNotFound) {
		t.Fatalf("expected ErrShareNotFound, got %v", err)
	}
}

func TestListSharesBothDirections(t *testing.T) {
	owner, target := uuid.New(), uuid.New()
	svc, _, friends := newTestService(owner, target)
	ctx := context.Background()
	friends.befriend(owner, target)

	note, err := svc.Import(ctx, owner, "visible.md", []byte("x"))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if _, err := svc.ShareNote(ctx, owner, note.ID, target); err != nil {
		t.Fatalf("ShareNote: %v", err)
	}

	for _, viewer := range []uuid.UUID{owner, target} {
		views, err := svc.ListShares(ctx, viewer)
		if err != nil {
			t.Fatalf("ListShares: %v", err)
		}
		if len(views) != 1 {
			t.Fatalf("both participants should see the share, got %d", len(views))
		}
		if views[0].NoteName != "visible.md" {
			t.Fatalf("share view should carry the note name, got %q", views[0].NoteName)
		}
		if views[0].OwnerUsername == "" || views[0].TargetUsername == "" {
			t.Fatalf("share view should carry both usernames")
		}
	}
}
