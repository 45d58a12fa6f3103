package model

// Media is an uploaded file in the media library. ObjectKey locates the
// file in object storage; URL is a presigned link filled on read.
type Media struct {
	Base
	Name        string `db:"name" json:"name"`
	ObjectKey   string `db:"object_key" json:"objectKey"`
	ContentType string `db:"content_type" json:"contentType"`
	Size        int64  `db:"size" json:"size"`
	UploadedBy  int64  `db:"uploaded_by" json:"uploadedBy"`

	URL string `db:"-" json:"url,omitempty"`
}
