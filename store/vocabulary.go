package store

import (
	"context"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// Vocabulary is the minimal record of a vocabulary item the scheduler needs.
// Item content (writing, reading, meaning) is owned by the content
// collaborator; the core only references the identifier and creation time.
type Vocabulary struct {
	ID        int32
	UID       string
	CreatedTs int64
}

// FindVocabulary is the find condition for vocabulary items.
type FindVocabulary struct {
	ID  *int32
	UID *string

	// Pagination
	Limit  *int
	Offset *int
}

// DeleteVocabulary is the delete request for a vocabulary item. Deleting an
// item cascades to its review state and study log entries.
type DeleteVocabulary struct {
	ID int32
}

// CreateVocabulary creates a vocabulary item and seeds its default review
// state (interval 0, ease 2.5, reps 0, due immediately) in one transaction.
func (s *Store) CreateVocabulary(ctx context.Context, create *Vocabulary) (*Vocabulary, error) {
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}
	return s.driver.CreateVocabulary(ctx, create)
}

// ListVocabulary lists vocabulary items with filter.
func (s *Store) ListVocabulary(ctx context.Context, find *FindVocabulary) ([]*Vocabulary, error) {
	return s.driver.ListVocabulary(ctx, find)
}

// GetVocabulary gets a single vocabulary item, or nil if none matches.
func (s *Store) GetVocabulary(ctx context.Context, find *FindVocabulary) (*Vocabulary, error) {
	list, err := s.driver.ListVocabulary(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// CountVocabulary returns the total number of vocabulary items.
func (s *Store) CountVocabulary(ctx context.Context) (int, error) {
	return s.driver.CountVocabulary(ctx)
}

// DeleteVocabulary deletes a vocabulary item and, by cascade, its review
// state and study log entries.
func (s *Store) DeleteVocabulary(ctx context.Context, delete *DeleteVocabulary) error {
	vocab, err := s.GetVocabulary(ctx, &FindVocabulary{ID: &delete.ID})
	if err != nil {
		return err
	}
	if err := s.driver.DeleteVocabulary(ctx, delete); err != nil {
		return err
	}
	if vocab != nil {
		s.reviewStateCache.Delete(ctx, vocab.UID)
	}
	return nil
}
