package handler

import "time"

// messageResponse is the envelope for errors and plain acknowledgements.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Identity ---

type createUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Age      *int   `json:"age"      validate:"omitempty,gte=0,lte=150"`
	Password string `json:"password" validate:"required"`
}

type createUserResponse struct {
	UserID string `json:"userId"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       *int      `json:"age,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type profileResponse struct {
	User userResponse `json:"user"`
}

// --- Bulletins ---

type listPostsQuery struct {
	Type  string `query:"type"`
	Limit int    `query:"limit" validate:"gte=0"`
}

type createPostRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
	Type    string `json:"type"    validate:"required"`
}

type editPostRequest struct {
	PostID  string `json:"postId"  validate:"required"`
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
	Type    string `json:"type"    validate:"required"`
}

// deletePostRequest accepts the id from either the JSON body or ?postId=.
type deletePostRequest struct {
	PostID string `json:"postId" query:"postId" validate:"required"`
}

type postIDResponse struct {
	PostID string `json:"postId"`
}

type postResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	ContentHTML string     `json:"contentHtml,omitempty"`
	Type        string     `json:"type"`
	CreatedBy   string     `json:"createdBy"`
	CreatorName string     `json:"creatorName"`
	CreatedAt   time.Time  `json:"createdAt"`
	EditedAt    *time.Time `json:"editedAt,omitempty"`
}

type listPostsResponse struct {
	Posts []postResponse `json:"posts"`
}

type getPostResponse struct {
	Post postResponse `json:"post"`
}

// --- Activity ---

type activityQuery struct {
	Limit int `query:"limit" validate:"gte=0"`
}

type activityResponse struct {
	BulletinID string    `json:"postId"`
	Action     string    `json:"action"`
	ActorID    string    `json:"actorId"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
}

type listActivityResponse struct {
	Activity []activityResponse `json:"activity"`
}
