// Package drive turns Google Drive share links into direct download URLs.
package drive

import (
	"fmt"
	"regexp"
	"strings"
)

const downloadURLFormat = "https://drive.google.com/uc?id=%s&export=download"

var (
	pathID  = regexp.MustCompile(`/d/([^/]+)`)
	queryID = regexp.MustCompile(`id=([^&]+)`)
)

// FileID extracts a Drive file identifier from either the "/d/<id>/" path
// form or an "id=<id>" query parameter.
func FileID(rawURL string) (string, bool) {
	if strings.Contains(rawURL, "/d/") {
		if m := pathID.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	if strings.Contains(rawURL, "id=") {
		if m := queryID.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// Resolve returns a URL that downloads the referenced bytes directly. URLs
// without a recognizable file id are returned unchanged. The id is not
// checked against Drive.
func Resolve(rawURL string) string {
	id, ok := FileID(rawURL)
	if !ok {
		return rawURL
	}
	return fmt.Sprintf(downloadURLFormat, id)
}
