package models

import "time"

const (
	MsgAlreadyLiked   = "You have already liked this post"
	MsgAlreadyUnliked = "You have already unliked this post"
)

// Post is a text post with embedded likes and comments.
// Name and Avatar are copied from the author when the post is created.
type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	UserID    string    `gorm:"index;not null;type:varchar(36)" bson:"user" json:"user"`
	Text      string    `gorm:"type:text;not null" bson:"text" json:"text"`
	Name      string    `bson:"name" json:"name"`
	Avatar    string    `bson:"avatar" json:"avatar"`
	Likes     []Like    `gorm:"type:text;serializer:json" bson:"likes" json:"likes"`
	Comments  []Comment `gorm:"type:text;serializer:json" bson:"comments" json:"comments"`
	CreatedAt time.Time `gorm:"index" bson:"date" json:"date"`
}

type Like struct {
	ID     string `bson:"_id" json:"id"`
	UserID string `bson:"user" json:"user"`
}

// Comment keeps its own author snapshot.
type Comment struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user" json:"user"`
	Text      string    `bson:"text" json:"text"`
	Name      string    `bson:"name" json:"name"`
	Avatar    string    `bson:"avatar" json:"avatar"`
	CreatedAt time.Time `bson:"date" json:"date"`
}

// NewPost builds a post authored by author.
func NewPost(author *User, text string) *Post {
	return &Post{
		ID:       NewID(),
		UserID:   author.ID,
		Text:     text,
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    []Like{},
		Comments: []Comment{},
	}
}

// LikedBy reports whether userID already likes the post.
func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// Like prepends a like by userID. A user can like a post once.
func (p *Post) Like(userID string) error {
	if p.LikedBy(userID) {
		return NewValidationError(MsgAlreadyLiked)
	}
	p.Likes = append([]Like{{ID: NewID(), UserID: userID}}, p.Likes...)
	return nil
}

// Unlike removes the like by userID.
func (p *Post) Unlike(userID string) error {
	var ok bool
	p.Likes, ok = removeByID(p.Likes, userID, func(l Like) string { return l.UserID })
	if !ok {
		return NewValidationError(MsgAlreadyUnliked)
	}
	return nil
}

// AddComment prepends a comment written by author.
func (p *Post) AddComment(author *User, text string) Comment {
	c := Comment{
		ID:        NewID(),
		UserID:    author.ID,
		Text:      text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: time.Now().UTC(),
	}
	p.Comments = append([]Comment{c}, p.Comments...)
	return c
}

// FindComment returns the comment with the given id, or nil.
func (p *Post) FindComment(id string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}

// RemoveComment drops the comment with the given id.
func (p *Post) RemoveComment(id string) bool {
	var ok bool
	p.Comments, ok = removeByID(p.Comments, id, func(c Comment) string { return c.ID })
	return ok
}
