package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apierrors "github.com/kioku-app/kioku/server/internal/errors"
	"github.com/kioku-app/kioku/store"
)

// VocabularyItem is the minimal item record owned by the content
// collaborator; the scheduler exposes it only so items can be registered
// and removed.
type VocabularyItem struct {
	VocabID   string `json:"vocab_id"`
	CreatedAt string `json:"created_at"`
}

// ListVocabularyResponse is the item listing.
type ListVocabularyResponse struct {
	Items []*VocabularyItem `json:"items"`
	Total int               `json:"total"`
}

func (s *APIV1Service) toVocabularyItem(vocab *store.Vocabulary) *VocabularyItem {
	return &VocabularyItem{
		VocabID:   vocab.UID,
		CreatedAt: s.formatTime(vocab.CreatedTs),
	}
}

// CreateVocabulary handles POST /api/v1/vocab. The created item gets a
// default review state (due immediately) in the same transaction.
func (s *APIV1Service) CreateVocabulary(c echo.Context) error {
	vocab, err := s.Store.CreateVocabulary(c.Request().Context(), &store.Vocabulary{})
	if err != nil {
		return respondError(c, apierrors.StorageFailure("failed to create vocabulary item", err))
	}
	return c.JSON(http.StatusOK, s.toVocabularyItem(vocab))
}

// ListVocabulary handles GET /api/v1/vocab.
func (s *APIV1Service) ListVocabulary(c echo.Context) error {
	find := &store.FindVocabulary{}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return respondError(c, apierrors.InvalidArgument("limit must be a positive integer"))
		}
		find.Limit = &limit
	}

	list, err := s.Store.ListVocabulary(c.Request().Context(), find)
	if err != nil {
		return respondError(c, apierrors.StorageFailure("failed to list vocabulary items", err))
	}

	total, err := s.Store.CountVocabulary(c.Request().Context())
	if err != nil {
		return respondError(c, apierrors.StorageFailure("failed to count vocabulary items", err))
	}

	items := make([]*VocabularyItem, 0, len(list))
	for _, vocab := range list {
		items = append(items, s.toVocabularyItem(vocab))
	}
	return c.JSON(http.StatusOK, &ListVocabularyResponse{Items: items, Total: total})
}

// DeleteVocabulary handles DELETE /api/v1/vocab/:uid. The delete cascades
// to the item's review state and study log entries.
func (s *APIV1Service) DeleteVocabulary(c echo.Context) error {
	uid := c.Param("uid")

	vocab, err := s.Store.GetVocabulary(c.Request().Context(), &store.FindVocabulary{UID: &uid})
	if err != nil {
		return respondError(c, apierrors.StorageFailure("failed to load vocabulary item", err))
	}
	if vocab == nil {
		return respondError(c, apierrors.NotFound("vocabulary item not found"))
	}

	if err := s.Store.DeleteVocabulary(c.Request().Context(), &store.DeleteVocabulary{ID: vocab.ID}); err != nil {
		return respondError(c, apierrors.StorageFailure("failed to delete vocabulary item", err))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "vocabulary item deleted", "vocab_id": uid})
}
