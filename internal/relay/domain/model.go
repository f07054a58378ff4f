package domain

import "time"

const (
	// DefaultLabel is used when a request carries no usable script text.
	DefaultLabel = "project"

	// ImagesURLPrefix is the public URL prefix of the images root.
	ImagesURLPrefix = "/images"

	// FolderTimeLayout renders the project timestamp (second resolution).
	FolderTimeLayout = "20060102_150405"
)

// Project is the on-disk namespace created for one POST relay request.
type Project struct {
	CreatedAt  time.Time
	Label      string
	FolderName string
	Dir        string
}

// Path is the URL prefix under which the project's images are served.
func (p Project) Path() string {
	return ImagesURLPrefix + "/" + p.FolderName
}

// ImageURL is the public reference for a file stored in the project.
func (p Project) ImageURL(filename string) string {
	return p.Path() + "/" + filename
}

// ImageRef is an image found in the webhook response.
type ImageRef struct {
	URL      string
	Title    string
	HasTitle bool
}

// DownloadedImage is one entry of the normalized result.
type DownloadedImage struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// RelayResult is the normalized payload returned for image-bearing responses.
type RelayResult struct {
	Images      []DownloadedImage `json:"images"`
	ProjectID   string            `json:"projectId"`
	ProjectPath string            `json:"projectPath"`
}
