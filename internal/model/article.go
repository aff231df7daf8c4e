package model

import "time"

// Article is the normalized record built from one article's detail and media payloads.
type Article struct {
	ID               string    `json:"id" yaml:"id"`
	OriginalLanguage string    `json:"original_language" yaml:"original_language"`
	URL              string    `json:"url" yaml:"url"`
	Thumbnail        string    `json:"thumbnail" yaml:"thumbnail"`
	Categories       []string  `json:"categories" yaml:"categories"`
	Tags             []string  `json:"tags" yaml:"tags"`
	Author           string    `json:"author" yaml:"author"`
	PublicationDate  time.Time `json:"publication_date" yaml:"publication_date"`
	ModificationDate time.Time `json:"modification_date" yaml:"modification_date"`
	Sections         []Section `json:"sections" yaml:"sections"`
}
