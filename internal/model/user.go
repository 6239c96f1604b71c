package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Blog is a single post embedded in its owner's document. Name is the author
// display name as entered on the form; it is free text and is not required to
// match the owning account.
type Blog struct {
	Title   string `bson:"title" json:"title"`
	Content string `bson:"content" json:"content"`
	Name    string `bson:"name" json:"name"`
}

// User is an account document in the users collection. Blogs keeps insertion
// order; duplicates are allowed.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	// TODO: hash passwords before storing (bcrypt); needs a migration for
	// existing records and a fallback compare during login.
	Password string `bson:"password" json:"-"`
	Blogs    []Blog `bson:"blogs" json:"blogs"`
}
