package api

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quillhq/blog-backend/models"
)

// In-memory store fakes backing the handler tests. They mirror the database
// repos' observable behavior, including the gorm sentinels the error mapper
// keys on.

type fakePostStore struct {
	mu    sync.Mutex
	posts []models.BlogPost
}

func newFakePostStore(posts ...models.BlogPost) *fakePostStore {
	return &fakePostStore{posts: posts}
}

func matchesStatus(post models.BlogPost, status models.PostStatus) bool {
	switch status {
	case models.StatusPublished:
		return !post.IsDraft
	case models.StatusDraft:
		return post.IsDraft
	default:
		return true
	}
}

func (s *fakePostStore) filtered(status models.PostStatus) []models.BlogPost {
	var out []models.BlogPost
	for _, post := range s.posts {
		if matchesStatus(post, status) {
			out = append(out, post)
		}
	}
	return out
}

func (s *fakePostStore) FindPage(status models.PostStatus, page, pageSize int) ([]models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matching := s.filtered(status)
	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].UpdatedAt.After(matching[j].UpdatedAt)
	})

	start := (page - 1) * pageSize
	if start >= len(matching) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(matching) {
		end = len(matching)
	}
	return matching[start:end], nil
}

func (s *fakePostStore) Count(status models.PostStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.filtered(status))), nil
}

func (s *fakePostStore) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			post := s.posts[i]
			return &post, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakePostStore) FindBySlug(slug string) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].Slug == slug {
			post := s.posts[i]
			return &post, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakePostStore) FindByTag(tag string) ([]models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.BlogPost
	for _, post := range s.posts {
		if post.IsDraft {
			continue
		}
		for _, t := range post.Tags {
			if t == tag {
				out = append(out, post)
				break
			}
		}
	}
	return out, nil
}

func (s *fakePostStore) Search(query string) ([]models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	var out []models.BlogPost
	for _, post := range s.posts {
		if post.IsDraft {
			continue
		}
		if strings.Contains(strings.ToLower(post.Title), q) ||
			strings.Contains(strings.ToLower(post.Content), q) {
			out = append(out, post)
		}
	}
	return out, nil
}

func (s *fakePostStore) FindTrending(limit int) ([]models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	published := s.filtered(models.StatusPublished)
	sort.SliceStable(published, func(i, j int) bool {
		if published[i].Likes != published[j].Likes {
			return published[i].Likes > published[j].Likes
		}
		return published[i].Views > published[j].Views
	})
	if len(published) > limit {
		published = published[:limit]
	}
	return published, nil
}

func (s *fakePostStore) FindTopByViews(limit int) ([]models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	published := s.filtered(models.StatusPublished)
	sort.SliceStable(published, func(i, j int) bool {
		if published[i].Views != published[j].Views {
			return published[i].Views > published[j].Views
		}
		return published[i].Likes > published[j].Likes
	})
	if len(published) > limit {
		published = published[:limit]
	}
	return published, nil
}

func (s *fakePostStore) Add(post *models.BlogPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.posts {
		if existing.Slug == post.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	s.posts = append(s.posts, *post)
	return nil
}

func (s *fakePostStore) Update(post *models.BlogPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == post.ID {
			s.posts[i] = *post
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *fakePostStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakePostStore) IncrementViews(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i].Views++
		}
	}
	return nil
}

func (s *fakePostStore) IncrementLikes(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i].Likes++
		}
	}
	return nil
}

func (s *fakePostStore) CountGeneratedByAI() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, post := range s.posts {
		if post.GeneratedByAI {
			count++
		}
	}
	return count, nil
}

func (s *fakePostStore) SumViews() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, post := range s.posts {
		total += int64(post.Views)
	}
	return total, nil
}

func (s *fakePostStore) SumLikes() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, post := range s.posts {
		total += int64(post.Likes)
	}
	return total, nil
}

func (s *fakePostStore) ListTagSets() ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tagSets := make([][]string, 0, len(s.posts))
	for _, post := range s.posts {
		tagSets = append(tagSets, post.Tags)
	}
	return tagSets, nil
}

type fakeCommentStore struct {
	mu       sync.Mutex
	comments []models.Comment
}

func newFakeCommentStore(comments ...models.Comment) *fakeCommentStore {
	return &fakeCommentStore{comments: comments}
}

func (s *fakeCommentStore) Add(comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = append(s.comments, *comment)
	return nil
}

func (s *fakeCommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comments {
		if s.comments[i].ID == id {
			comment := s.comments[i]
			return &comment, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeCommentStore) sortedDesc() []models.Comment {
	out := make([]models.Comment, len(s.comments))
	copy(out, s.comments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *fakeCommentStore) FindAll() ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedDesc(), nil
}

func (s *fakeCommentStore) FindByPost(postID uuid.UUID) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Comment
	for _, comment := range s.sortedDesc() {
		if comment.PostID == postID {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (s *fakeCommentStore) FindRecent(limit int) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.sortedDesc()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeCommentStore) Count() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.comments)), nil
}

func (s *fakeCommentStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comments {
		if s.comments[i].ID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakeCommentStore) DeleteByParent(parentID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []models.Comment
	for _, comment := range s.comments {
		if comment.ParentCommentID != nil && *comment.ParentCommentID == parentID {
			continue
		}
		kept = append(kept, comment)
	}
	s.comments = kept
	return nil
}

func (s *fakeCommentStore) DeleteByPost(postID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []models.Comment
	for _, comment := range s.comments {
		if comment.PostID == postID {
			continue
		}
		kept = append(kept, comment)
	}
	s.comments = kept
	return nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users []models.User
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	return &fakeUserStore{users: users}
}

func (s *fakeUserStore) Add(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	s.users = append(s.users, *user)
	return nil
}

func (s *fakeUserStore) FindByID(id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) FindByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Email == email {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var (
	_ blogPostStore = (*fakePostStore)(nil)
	_ commentStore  = (*fakeCommentStore)(nil)
	_ userStore     = (*fakeUserStore)(nil)
)
