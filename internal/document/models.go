package document

import "time"

// Document is the stored record. Title, Content and Created are pointers so
// that an absent field is distinguishable from its zero value; ID and Created
// never change after the first save.
type Document struct {
	ID      string     `json:"id" bson:"_id,omitempty"`
	Title   *string    `json:"title,omitempty" bson:"title,omitempty"`
	Content *string    `json:"content,omitempty" bson:"content,omitempty"`
	Author  Author     `json:"author" bson:"author"`
	Created *time.Time `json:"created,omitempty" bson:"created,omitempty"`
}

// Author identifies a document's creator. It is embedded by value in
// Document and has no lifecycle of its own.
type Author struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// SearchRequest describes a multi-criterion query. Every field is optional.
// Each populated field is an independent criterion; a document matches the
// request when any one of them matches (OR, not AND).
type SearchRequest struct {
	TitlePrefixes    []string   `json:"titlePrefixes,omitempty"`
	ContainsContents []string   `json:"containsContents,omitempty"`
	AuthorIDs        []string   `json:"authorIds,omitempty"`
	CreatedFrom      *time.Time `json:"createdFrom,omitempty"`
	CreatedTo        *time.Time `json:"createdTo,omitempty"`
}
