package services

import (
	"github.com/google/uuid"

	"github.com/quillhq/blog-backend/models"
)

// ThreadedComment is a comment node carrying its direct replies, plus the
// author and post references the store populated.
type ThreadedComment struct {
	models.Comment
	Author  *models.UserSummary `json:"author,omitempty"`
	Post    *models.PostSummary `json:"post,omitempty"`
	Replies []*ThreadedComment  `json:"replies"`
}

// ThreadComments reassembles a flat, newest-first comment list into a
// two-level reply tree. Two passes over the input: the first builds a node
// per comment, the second attaches each node either to its parent's reply
// list or to the top level. Input order is preserved at both levels and the
// input is not mutated.
//
// Each node materializes exactly one level of replies under itself. A reply
// attaches to its immediate parent's node when that parent is present in the
// input; a reply whose parent is absent (already deleted) is promoted to the
// top level rather than dropped. Deeper chains surface one level below the
// nearest ancestor present in the result set.
func ThreadComments(comments []models.Comment) []*ThreadedComment {
	nodes := make(map[uuid.UUID]*ThreadedComment, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = newCommentNode(comments[i])
	}

	threaded := make([]*ThreadedComment, 0, len(comments))
	for i := range comments {
		node := nodes[comments[i].ID]
		if parentID := comments[i].ParentCommentID; parentID != nil {
			if parent, ok := nodes[*parentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		threaded = append(threaded, node)
	}
	return threaded
}

// EnrichComments carries author and post summaries onto each comment without
// assembling a reply tree. Every input comment stays a top-level entry, so a
// capped window (recent comments) keeps its full size even when a reply and
// its parent both land in it.
func EnrichComments(comments []models.Comment) []*ThreadedComment {
	enriched := make([]*ThreadedComment, 0, len(comments))
	for i := range comments {
		enriched = append(enriched, newCommentNode(comments[i]))
	}
	return enriched
}

func newCommentNode(comment models.Comment) *ThreadedComment {
	node := &ThreadedComment{
		Comment: comment,
		Replies: []*ThreadedComment{},
	}
	if comment.Author != nil {
		summary := comment.Author.Summary()
		node.Author = &summary
	}
	if comment.Post != nil {
		summary := comment.Post.Summary()
		summary.Views = 0
		summary.Likes = 0
		node.Post = &summary
	}
	return node
}
