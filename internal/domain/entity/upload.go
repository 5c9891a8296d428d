package entity

import "io"

// Upload is one file taken from a multipart request, not yet stored.
type Upload struct {
	Field    string
	Filename string
	Size     int64
	Content  io.Reader
}
