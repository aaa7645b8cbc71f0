package note

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/fitnest/fitnest-api/internal/domain/friendship"
	"github.com/fitnest/fitnest-api/internal/domain/user"
	"github.com/fitnest/fitnest-api/internal/pkg/markdown"
	"github.com/fitnest/fitnest-api/internal/pkg/pdf"
)

// FriendResolver reports the relationship between two users.
// Satisfied by the friendship service.
type FriendResolver interface {
	ResolveStatus(ctx context.Context, userA, userB uuid.UUID) (friendship.RelationStatus, *friendship.Friendship, error)
}

// RenderedNote is a note plus its markdown rendered to HTML
type RenderedNote struct {
	*Note
	HTML string `json:"html"`
}

// ShareView is a share annotated with the note name and both usernames
type ShareView struct {
	*Share
	NoteName       string `json:"note_name"`
	OwnerUsername  string `json:"owner_username"`
	TargetUsername string `json:"target_username"`
}

// Service implements note business logic: markdown import, rendering,
// PDF export, and sharing between friends.
type Service struct {
	repo    Repository
	users   user.Repository
	friends FriendResolver
}

// NewService creates note service
func NewService(repo Repository, users user.Repository, friends FriendResolver) *Service {
	return &Service{repo: repo, users: users, friends: friends}
}

// Import creates a note from an uploaded markdown or text file.
// The note is named after the file.
func (s *Service) Import(ctx context.Context, userID uuid.UUID, filename string, data []byte) (*Note, error) {
	name := strings.TrimSpace(filename)
	lower := strings.ToLower(name)
	if name == "" || (!strings.HasSuffix(lower, ".md") && !strings.HasSuffix(lower, ".txt")) {
		return nil, ErrUnsupportedFile
	}

	note := &Note{
		UserID: userID,
		Name:   name,
		Data:   string(data),
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// List returns the user's own notes
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Note, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns an owned note with its markdown rendered to HTML
func (s *Service) Get(ctx context.Context, userID, noteID uuid.UUID) (*RenderedNote, error) {
	note, err := s.getOwned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	html, err := markdown.ToHTML(note.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to render note: %w", err)
	}
	return &RenderedNote{Note: note, HTML: html}, nil
}

// Search returns the user's notes whose content contains q
func (s *Service) Search(ctx context.Context, userID uuid.UUID, q string) ([]*Note, error) {
	return s.repo.SearchByUser(ctx, userID, q)
}

// Delete removes an owned note
func (s *Service) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, noteID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, noteID)
}

// ExportPDF renders an owned note to PDF and writes it to w.
// Returns the download filename (x.md -> x.pdf).
func (s *Service) ExportPDF(ctx context.Context, userID, noteID uuid.UUID, w io.Writer) (string, error) {
	note, err := s.getOwned(ctx, userID, noteID)
	if err != nil {
		return "", err
	}

	html, err := markdown.ToHTML(note.Data)
	if err != nil {
		return "", fmt.Errorf("failed to render note: %w", err)
	}
	if err := pdf.FromHTML(w, note.Name, html); err != nil {
		return "", err
	}
	return note.PDFName(), nil
}

// ShareNote shares an owned note with a confirmed friend. Sharing the same
// note with the same friend again returns the existing share.
func (s *Service) ShareNote(ctx context.Context, ownerID, noteID, targetID uuid.UUID) (*Share, error) {
	note, err := s.getOwned(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}

	status, _, err := s.friends.ResolveStatus(ctx, ownerID, targetID)
	if err != nil {
		return nil, err
	}
	if status != friendship.RelationFriend {
		return nil, ErrNotFriends
	}

	if existing, err := s.repo.GetShare(ctx, noteID, targetID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	share := &Share{
		NoteID:       note.ID,
		OwnerUserID:  ownerID,
		TargetUserID: targetID,
	}
	if err := s.repo.CreateShare(ctx, share); err != nil {
		return nil, err
	}
	return share, nil
}

// ListShares returns every share the user participates in, annotated with
// the note name and both usernames (shares given and received).
func (s *Service) ListShares(ctx context.Context, userID uuid.UUID) ([]*ShareView, error) {
	shares, err := s.repo.ListSharesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*ShareView, 0, len(shares))
	for _, share := range shares {
		view := &ShareView{Share: share}

		if note, err := s.repo.GetByID(ctx, share.NoteID); err != nil {
			return nil, err
		} else if note != nil {
			view.NoteName = note.Name
		}

		if owner, err := s.users.GetByID(ctx, share.OwnerUserID); err != nil {
			return nil, err
		} else if owner != nil {
			view.OwnerUsername = owner.Username
		}
		if target, err := s.users.GetByID(ctx, share.TargetUserID); err != nil {
			return nil, err
		} else if target != nil {
			view.TargetUsername = target.Username
		}

		views = append(views, view)
	}
	return views, nil
}

// CopyShared copies a shared note into the caller's own notes. Either
// participant may copy; the copy is a brand new note owned by the caller.
func (s *Service) CopyShared(ctx context.Context, userID, shareID uuid.UUID) (*Note, error) {
	share, err := s.getParticipantShare(ctx, userID, shareID)
	if err != nil {
		return nil, err
	}

	original, err := s.repo.GetByID(ctx, share.NoteID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, ErrNoteNotFound
	}

	copied := &Note{
		UserID: userID,
		Name:   original.Name,
		Data:   original.Data,
	}
	if err := s.repo.Create(ctx, copied); err != nil {
		return nil, err
	}
	return copied, nil
}

// CancelShare removes a share. Either participant may cancel.
func (s *Service) CancelShare(ctx context.Context, userID, shareID uuid.UUID) error {
	share, err := s.getParticipantShare(ctx, userID, shareID)
	if err != nil {
		return err
	}
	return s.repo.DeleteShare(ctx, share.ID)
}

func (s *Service) getOwned(ctx context.Context, userID, noteID uuid.UUID) (*Note, error) {
	note, err := s.repo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil || note.UserID != userID {
		// Foreign notes are indistinguishable from missing ones
		return nil, ErrNoteNotFound
	}
	return note, nil
}

func (s *Service) getParticipantShare(ctx context.Context, userID, shareID uuid.UUID) (*Share, error) {
	share, err := s.repo.GetShareByID(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if share == nil {
		return nil, ErrShareNotFound
	}
	if !share.Involves(userID) {
		return nil, ErrNotParticipant
	}
	return share, nil
}
